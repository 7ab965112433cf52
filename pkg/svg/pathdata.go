package svg

import (
	"strconv"
	"strings"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// SegOp is the operation of one absolute path segment.
type SegOp uint8

const (
	SegMove SegOp = iota
	SegLine
	SegCubic
	SegQuad
	SegArc
	SegClose
)

// Segment is one absolute path command. Argument layout by op:
//
//	SegMove, SegLine: X, Y
//	SegCubic:         X1, Y1, X2, Y2, X, Y (controls then endpoint)
//	SegQuad:          X1, Y1, X, Y
//	SegArc:           Rx, Ry (in X1, Y1), XRot (X2), LargeArc/Sweep flags, X, Y
//	SegClose:         no arguments
type Segment struct {
	Op             SegOp
	X1, Y1, X2, Y2 float64
	X, Y           float64
	LargeArc       bool
	Sweep          bool
}

// pathScanner tokenizes SVG path data: command letters and numbers separated
// by commas or whitespace, with the usual shorthand packing.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.pos++
			continue
		}
		break
	}
}

func (s *pathScanner) peekCommand() (byte, bool) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return 0, false
	}
	c := s.data[s.pos]
	if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
		return c, true
	}
	return 0, false
}

func (s *pathScanner) nextCommand() (byte, bool) {
	c, ok := s.peekCommand()
	if ok {
		s.pos++
	}
	return c, ok
}

func (s *pathScanner) hasMoreNumbers() bool {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return false
	}
	c := s.data[s.pos]
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
		s.pos++
	}
	seenDot := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			s.pos++
			continue
		}
		if c == 'e' || c == 'E' {
			s.pos++
			if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
				s.pos++
			}
			continue
		}
		break
	}
	if start == s.pos {
		return 0, errors.New(errors.ErrCodeParse, "expected number at offset %d in path data", s.pos)
	}
	return strconv.ParseFloat(s.data[start:s.pos], 64)
}

// flag parses an arc flag, which may be packed against the next number.
func (s *pathScanner) flag() (bool, error) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return false, errors.New(errors.ErrCodeParse, "expected arc flag at end of path data")
	}
	switch s.data[s.pos] {
	case '0':
		s.pos++
		return false, nil
	case '1':
		s.pos++
		return true, nil
	}
	return false, errors.New(errors.ErrCodeParse, "expected arc flag at offset %d in path data", s.pos)
}

// ParsePathData parses an SVG d attribute into absolute segments. Relative
// commands, H/V shorthands and the smooth S/T reflections are resolved here,
// so the result contains only Move, Line, Cubic, Quad, Arc and Close.
func ParsePathData(d string) ([]Segment, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, nil
	}
	s := &pathScanner{data: d}

	var (
		segs             []Segment
		cx, cy           float64 // current point
		sx, sy           float64 // subpath start
		prevCtrlX        float64
		prevCtrlY        float64
		prevOp           byte
	)

	abs := func(rel bool, x, y float64) (float64, float64) {
		if rel {
			return cx + x, cy + y
		}
		return x, y
	}

	for {
		cmd, ok := s.nextCommand()
		if !ok {
			if s.hasMoreNumbers() {
				return nil, errors.New(errors.ErrCodeParse, "path data has numbers without a command")
			}
			break
		}
		rel := cmd >= 'a'
		upper := cmd
		if rel {
			upper = cmd - 'a' + 'A'
		}

		// The path grammar requires an initial moveto.
		if len(segs) == 0 && upper != 'M' {
			return nil, errors.New(errors.ErrCodeParse,
				"path data must start with a moveto, got %q", string(cmd))
		}

		switch upper {
		case 'M':
			first := true
			for first || s.hasMoreNumbers() {
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				x, y = abs(rel, x, y)
				if first {
					segs = append(segs, Segment{Op: SegMove, X: x, Y: y})
					sx, sy = x, y
				} else {
					// Extra coordinate pairs are implicit line-tos.
					segs = append(segs, Segment{Op: SegLine, X: x, Y: y})
				}
				cx, cy = x, y
				first = false
			}
		case 'L':
			for {
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				x, y = abs(rel, x, y)
				segs = append(segs, Segment{Op: SegLine, X: x, Y: y})
				cx, cy = x, y
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'H':
			for {
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				if rel {
					x += cx
				}
				segs = append(segs, Segment{Op: SegLine, X: x, Y: cy})
				cx = x
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'V':
			for {
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				if rel {
					y += cy
				}
				segs = append(segs, Segment{Op: SegLine, X: cx, Y: y})
				cy = y
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'C', 'S':
			for {
				var x1, y1 float64
				var err error
				if upper == 'C' {
					x1, err = s.number()
					if err != nil {
						return nil, err
					}
					y1, err = s.number()
					if err != nil {
						return nil, err
					}
					x1, y1 = abs(rel, x1, y1)
				} else if prevOp == 'C' || prevOp == 'S' {
					x1, y1 = 2*cx-prevCtrlX, 2*cy-prevCtrlY
				} else {
					x1, y1 = cx, cy
				}
				x2, err := s.number()
				if err != nil {
					return nil, err
				}
				y2, err := s.number()
				if err != nil {
					return nil, err
				}
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				x2, y2 = abs(rel, x2, y2)
				x, y = abs(rel, x, y)
				segs = append(segs, Segment{Op: SegCubic, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
				prevCtrlX, prevCtrlY = x2, y2
				cx, cy = x, y
				prevOp = 'C'
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'Q', 'T':
			for {
				var x1, y1 float64
				var err error
				if upper == 'Q' {
					x1, err = s.number()
					if err != nil {
						return nil, err
					}
					y1, err = s.number()
					if err != nil {
						return nil, err
					}
					x1, y1 = abs(rel, x1, y1)
				} else if prevOp == 'Q' || prevOp == 'T' {
					x1, y1 = 2*cx-prevCtrlX, 2*cy-prevCtrlY
				} else {
					x1, y1 = cx, cy
				}
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				x, y = abs(rel, x, y)
				segs = append(segs, Segment{Op: SegQuad, X1: x1, Y1: y1, X: x, Y: y})
				prevCtrlX, prevCtrlY = x1, y1
				cx, cy = x, y
				prevOp = 'Q'
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'A':
			for {
				rx, err := s.number()
				if err != nil {
					return nil, err
				}
				ry, err := s.number()
				if err != nil {
					return nil, err
				}
				rot, err := s.number()
				if err != nil {
					return nil, err
				}
				largeArc, err := s.flag()
				if err != nil {
					return nil, err
				}
				sweep, err := s.flag()
				if err != nil {
					return nil, err
				}
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				x, y = abs(rel, x, y)
				segs = append(segs, Segment{
					Op: SegArc,
					X1: rx, Y1: ry, X2: rot,
					LargeArc: largeArc, Sweep: sweep,
					X: x, Y: y,
				})
				cx, cy = x, y
				if !s.hasMoreNumbers() {
					break
				}
			}
		case 'Z':
			segs = append(segs, Segment{Op: SegClose})
			cx, cy = sx, sy
		default:
			return nil, errors.New(errors.ErrCodeParse, "unknown path command %q", string(cmd))
		}
		if upper != 'C' && upper != 'S' && upper != 'Q' && upper != 'T' {
			prevOp = upper
		}
	}
	return segs, nil
}

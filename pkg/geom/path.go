// Package geom implements the geometry half of the conversion pipeline:
// normalizing any drawable element into a flat path of absolute move, line,
// cubic-bezier and close commands, and recovering circle parameters from
// sampled curve points.
package geom

import "math"

// Op is a normalized path operation. After normalization a path contains
// only these four kinds.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// Command is one normalized path command in absolute user-unit coordinates.
// X, Y is the endpoint; X1..Y2 are the cubic control points and are zero for
// the other operations.
type Command struct {
	Op             Op
	X1, Y1, X2, Y2 float64
	X, Y           float64
}

// Path is an ordered command sequence. It is produced once per element and
// treated as immutable afterwards.
type Path []Command

// Point is a 2D point in user units.
type Point struct {
	X, Y float64
}

// kappa is the control-point offset factor for approximating a quarter
// circle with one cubic bezier.
const kappa = 0.5522847498307936

// transform applies an affine matrix (a, b, c, d, e, f in SVG order) to
// every coordinate of the path, control points included.
func (p Path) transform(a, b, c, d, e, f float64) {
	ap := func(x, y float64) (float64, float64) {
		return a*x + c*y + e, b*x + d*y + f
	}
	for i := range p {
		cmd := &p[i]
		if cmd.Op == OpCubic {
			cmd.X1, cmd.Y1 = ap(cmd.X1, cmd.Y1)
			cmd.X2, cmd.Y2 = ap(cmd.X2, cmd.Y2)
		}
		cmd.X, cmd.Y = ap(cmd.X, cmd.Y)
	}
}

// scale uniformly scales every coordinate of the path.
func (p Path) scale(s float64) {
	p.transform(s, 0, 0, s, 0, 0)
}

// Bounds returns the bounding box of the command endpoints and control
// points. It is a cheap over-approximation used only in tests.
func (p Path) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	for _, cmd := range p {
		switch cmd.Op {
		case OpClose:
		case OpCubic:
			grow(cmd.X1, cmd.Y1)
			grow(cmd.X2, cmd.Y2)
			grow(cmd.X, cmd.Y)
		default:
			grow(cmd.X, cmd.Y)
		}
	}
	return minX, minY, maxX, maxY
}

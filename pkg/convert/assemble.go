package convert

import (
	"strings"

	"github.com/phoscity/svg2cetz/pkg/geom"
)

// groupKind tags a segment group as a line chain or a single cubic bezier.
type groupKind string

const (
	groupLine   groupKind = "line"
	groupBezier groupKind = "bezier"
)

// segmentGroup is one sub-shape assembled from a normalized path: either a
// chain of line points or the four points of a bezier (start, end, control
// 1, control 2). Points are already mapped into output coordinates.
type segmentGroup struct {
	kind   groupKind
	points []geom.Point
}

// render emits the group's point list as CeTZ coordinate tuples.
func (g *segmentGroup) render() string {
	parts := make([]string, len(g.points))
	for i, p := range g.points {
		parts[i] = point(p.X, p.Y)
	}
	return strings.Join(parts, ", ")
}

// assemble walks a normalized path and groups its commands into sub-shapes.
// Consecutive line commands extend one chain; every cubic is its own
// bezier group; a close either finishes a line chain or adds a closing
// segment. Coordinates are mapped into the output system before storage, so
// the start-equality check on close compares rounded output points.
func assemble(path geom.Path, cfg *Config) []*segmentGroup {
	var (
		collection []*segmentGroup
		current    geom.Point
		start      geom.Point
		prev       geom.Op = geom.OpClose // sentinel, no command yet
		seen       bool
	)

	for _, cmd := range path {
		switch cmd.Op {
		case geom.OpMove:
			x, y := cfg.MapPoint(cmd.X, cmd.Y)
			current = geom.Point{X: x, Y: y}
			start = current
			collection = append(collection, &segmentGroup{})

		case geom.OpLine:
			x, y := cfg.MapPoint(cmd.X, cmd.Y)
			next := geom.Point{X: x, Y: y}
			last := collection[len(collection)-1]
			switch {
			case prev == geom.OpMove:
				last.kind = groupLine
				last.points = append(last.points, current, next)
			case prev == geom.OpLine:
				last.points = append(last.points, next)
			default:
				collection = append(collection, &segmentGroup{
					kind:   groupLine,
					points: []geom.Point{current, next},
				})
			}
			current = next

		case geom.OpCubic:
			c1x, c1y := cfg.MapPoint(cmd.X1, cmd.Y1)
			c2x, c2y := cfg.MapPoint(cmd.X2, cmd.Y2)
			ex, ey := cfg.MapPoint(cmd.X, cmd.Y)
			bezier := []geom.Point{
				current,
				{X: ex, Y: ey},
				{X: c1x, Y: c1y},
				{X: c2x, Y: c2y},
			}
			if prev == geom.OpMove {
				last := collection[len(collection)-1]
				last.kind = groupBezier
				last.points = bezier
			} else {
				collection = append(collection, &segmentGroup{kind: groupBezier, points: bezier})
			}
			current = geom.Point{X: ex, Y: ey}

		case geom.OpClose:
			if !seen {
				continue
			}
			switch {
			case current == start:
				// Already closed.
			case prev == geom.OpLine:
				last := collection[len(collection)-1]
				last.points = append(last.points, start)
			default:
				collection = append(collection, &segmentGroup{
					kind:   groupLine,
					points: []geom.Point{current, start},
				})
			}
		}
		prev = cmd.Op
		seen = true
	}
	return collection
}

package geom

import (
	"math"

	"github.com/phoscity/svg2cetz/pkg/errors"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

// Normalize flattens a drawable element into a Path containing only
// absolute Move/Line/Cubic/Close commands:
//
//  1. shape-specific geometry (rect, circle, ellipse, line, polyline,
//     polygon) is synthesized into path segments; path elements parse their
//     d attribute;
//  2. arc and quadratic segments are rewritten as cubics;
//  3. the element's cumulative transform is baked into the coordinates
//     (cubics are affine-invariant, so rewriting before transforming is
//     exact);
//  4. the viewbox scale is applied uniformly when it is not 1.
func Normalize(el *svg.Element, viewBoxScale float64) (Path, error) {
	segs, err := shapeSegments(el)
	if err != nil {
		return nil, err
	}
	p := lower(segs)

	m := el.CumulativeTransform()
	p.transform(m.A, m.B, m.C, m.D, m.E, m.F)

	if viewBoxScale != 1 {
		p.scale(viewBoxScale)
	}
	return p, nil
}

// shapeSegments converts an element's geometry into absolute svg segments.
func shapeSegments(el *svg.Element) ([]svg.Segment, error) {
	switch el.Kind {
	case svg.KindPath:
		return svg.ParsePathData(el.Attr("d"))

	case svg.KindRect:
		x := el.FloatAttr("x", 0)
		y := el.FloatAttr("y", 0)
		w := el.FloatAttr("width", 0)
		h := el.FloatAttr("height", 0)
		rx, ry := el.RectRadii()
		return rectSegments(x, y, w, h, rx, ry), nil

	case svg.KindCircle:
		cx := el.FloatAttr("cx", 0)
		cy := el.FloatAttr("cy", 0)
		r := el.FloatAttr("r", 0)
		return ellipseSegments(cx, cy, r, r), nil

	case svg.KindEllipse:
		cx := el.FloatAttr("cx", 0)
		cy := el.FloatAttr("cy", 0)
		rx := el.FloatAttr("rx", 0)
		ry := el.FloatAttr("ry", rx)
		return ellipseSegments(cx, cy, rx, ry), nil

	case svg.KindLine:
		return []svg.Segment{
			{Op: svg.SegMove, X: el.FloatAttr("x1", 0), Y: el.FloatAttr("y1", 0)},
			{Op: svg.SegLine, X: el.FloatAttr("x2", 0), Y: el.FloatAttr("y2", 0)},
		}, nil

	case svg.KindPolyline, svg.KindPolygon:
		pts, err := el.PointsAttr()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed points attribute on <%s>", el.Tag)
		}
		if len(pts) < 4 || len(pts)%2 != 0 {
			return nil, errors.New(errors.ErrCodeParse, "points attribute on <%s> has %d values", el.Tag, len(pts))
		}
		segs := []svg.Segment{{Op: svg.SegMove, X: pts[0], Y: pts[1]}}
		for i := 2; i < len(pts); i += 2 {
			segs = append(segs, svg.Segment{Op: svg.SegLine, X: pts[i], Y: pts[i+1]})
		}
		if el.Kind == svg.KindPolygon {
			segs = append(segs, svg.Segment{Op: svg.SegClose})
		}
		return segs, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "element <%s> has no path geometry", el.Tag)
}

// rectSegments emits the corner order the rectangle converter relies on:
// M(x,y) L(x+w,y) L(x+w,y+h) L(x,y+h) Z for sharp corners, so commands 0
// and 2 carry opposite corners. Rounded corners insert one quarter-circle
// cubic per corner.
func rectSegments(x, y, w, h, rx, ry float64) []svg.Segment {
	if rx <= 0 || ry <= 0 {
		return []svg.Segment{
			{Op: svg.SegMove, X: x, Y: y},
			{Op: svg.SegLine, X: x + w, Y: y},
			{Op: svg.SegLine, X: x + w, Y: y + h},
			{Op: svg.SegLine, X: x, Y: y + h},
			{Op: svg.SegClose},
		}
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	kx, ky := rx*kappa, ry*kappa
	return []svg.Segment{
		{Op: svg.SegMove, X: x + rx, Y: y},
		{Op: svg.SegLine, X: x + w - rx, Y: y},
		{Op: svg.SegCubic, X1: x + w - rx + kx, Y1: y, X2: x + w, Y2: y + ry - ky, X: x + w, Y: y + ry},
		{Op: svg.SegLine, X: x + w, Y: y + h - ry},
		{Op: svg.SegCubic, X1: x + w, Y1: y + h - ry + ky, X2: x + w - rx + kx, Y2: y + h, X: x + w - rx, Y: y + h},
		{Op: svg.SegLine, X: x + rx, Y: y + h},
		{Op: svg.SegCubic, X1: x + rx - kx, Y1: y + h, X2: x, Y2: y + h - ry + ky, X: x, Y: y + h - ry},
		{Op: svg.SegLine, X: x, Y: y + ry},
		{Op: svg.SegCubic, X1: x, Y1: y + ry - ky, X2: x + rx - kx, Y2: y, X: x + rx, Y: y},
		{Op: svg.SegClose},
	}
}

// ellipseSegments approximates an axis-aligned ellipse with four cubic
// quadrant arcs starting at (cx+rx, cy). The endpoints of the first three
// cubics are the anchor points sampled by the circle fit.
func ellipseSegments(cx, cy, rx, ry float64) []svg.Segment {
	kx, ky := rx*kappa, ry*kappa
	return []svg.Segment{
		{Op: svg.SegMove, X: cx + rx, Y: cy},
		{Op: svg.SegCubic, X1: cx + rx, Y1: cy + ky, X2: cx + kx, Y2: cy + ry, X: cx, Y: cy + ry},
		{Op: svg.SegCubic, X1: cx - kx, Y1: cy + ry, X2: cx - rx, Y2: cy + ky, X: cx - rx, Y: cy},
		{Op: svg.SegCubic, X1: cx - rx, Y1: cy - ky, X2: cx - kx, Y2: cy - ry, X: cx, Y: cy - ry},
		{Op: svg.SegCubic, X1: cx + kx, Y1: cy - ry, X2: cx + rx, Y2: cy - ky, X: cx + rx, Y: cy},
		{Op: svg.SegClose},
	}
}

// lower rewrites absolute svg segments into the four normalized operations,
// converting quadratics by degree elevation and arcs via center
// parameterization.
func lower(segs []svg.Segment) Path {
	var (
		p      Path
		cx, cy float64
		sx, sy float64
	)
	for _, s := range segs {
		switch s.Op {
		case svg.SegMove:
			p = append(p, Command{Op: OpMove, X: s.X, Y: s.Y})
			cx, cy = s.X, s.Y
			sx, sy = s.X, s.Y
		case svg.SegLine:
			p = append(p, Command{Op: OpLine, X: s.X, Y: s.Y})
			cx, cy = s.X, s.Y
		case svg.SegCubic:
			p = append(p, Command{Op: OpCubic, X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2, X: s.X, Y: s.Y})
			cx, cy = s.X, s.Y
		case svg.SegQuad:
			// Degree elevation: each cubic control point sits 2/3 of the
			// way from an endpoint to the quadratic control point.
			c1x, c1y := cx+2.0/3.0*(s.X1-cx), cy+2.0/3.0*(s.Y1-cy)
			c2x, c2y := s.X+2.0/3.0*(s.X1-s.X), s.Y+2.0/3.0*(s.Y1-s.Y)
			p = append(p, Command{Op: OpCubic, X1: c1x, Y1: c1y, X2: c2x, Y2: c2y, X: s.X, Y: s.Y})
			cx, cy = s.X, s.Y
		case svg.SegArc:
			p = append(p, arcToCubics(cx, cy, s)...)
			cx, cy = s.X, s.Y
		case svg.SegClose:
			p = append(p, Command{Op: OpClose})
			cx, cy = sx, sy
		}
	}
	return p
}

// arcToCubics converts an endpoint-parameterized elliptical arc into cubic
// beziers, one per sweep of at most a quarter turn, following the W3C
// endpoint-to-center conversion (SVG 1.1 appendix F.6.5).
func arcToCubics(x0, y0 float64, s svg.Segment) Path {
	rx, ry := math.Abs(s.X1), math.Abs(s.Y1)
	if rx == 0 || ry == 0 || (x0 == s.X && y0 == s.Y) {
		return Path{{Op: OpLine, X: s.X, Y: s.Y}}
	}
	phi := s.X2 * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	// Step 1: midpoint-relative coordinates in the ellipse frame.
	dx2, dy2 := (x0-s.X)/2, (y0-s.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Correct out-of-range radii.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	// Step 2: center in the ellipse frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := math.Sqrt(math.Max(0, num/den))
	if s.LargeArc == s.Sweep {
		co = -co
	}
	cxp := co * rx * y1p / ry
	cyp := -co * ry * x1p / rx

	// Step 3: center in user space.
	cx := cosPhi*cxp - sinPhi*cyp + (x0+s.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+s.Y)/2

	// Step 4: start angle and sweep extent.
	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if !s.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if s.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	nSegs := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if nSegs == 0 {
		nSegs = 1
	}
	step := delta / float64(nSegs)
	// Tangent length factor for one cubic spanning the step angle.
	t := 4.0 / 3.0 * math.Tan(step/4)

	pointAt := func(theta float64) (px, py, dxp, dyp float64) {
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		px = cx + rx*cosT*cosPhi - ry*sinT*sinPhi
		py = cy + rx*cosT*sinPhi + ry*sinT*cosPhi
		dxp = -rx*sinT*cosPhi - ry*cosT*sinPhi
		dyp = -rx*sinT*sinPhi + ry*cosT*cosPhi
		return
	}

	var out Path
	px, py, pdx, pdy := pointAt(theta1)
	for i := 1; i <= nSegs; i++ {
		theta := theta1 + step*float64(i)
		nx, ny, ndx, ndy := pointAt(theta)
		if i == nSegs {
			// Land exactly on the endpoint to avoid accumulated error.
			nx, ny = s.X, s.Y
		}
		out = append(out, Command{
			Op: OpCubic,
			X1: px + t*pdx, Y1: py + t*pdy,
			X2: nx - t*ndx, Y2: ny - t*ndy,
			X: nx, Y: ny,
		})
		px, py, pdx, pdy = nx, ny, ndx, ndy
	}
	return out
}

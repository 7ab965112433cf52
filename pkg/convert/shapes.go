package convert

import (
	"fmt"
	"strings"

	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/errors"
	"github.com/phoscity/svg2cetz/pkg/geom"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

// shearTol is the transform tolerance below which a rect or ellipse still
// counts as axis-aligned.
const shearTol = 1e-5

// gridLabel marks a rect that should be emitted as a CeTZ grid.
const gridLabel = "grid"

// convertRect emits rect(...) or grid(...) from an axis-aligned rectangle.
// Rotated or skewed rectangles fall back to the generic path conversion.
func convertRect(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	if el.CumulativeTransform().HasShear(shearTol) {
		return convertPath(el, cfg, box)
	}

	// Corner radii bend the normalized outline, so the corners are read off
	// a radius-free copy.
	sharp := el.Clone()
	sharp.SetAttr("rx", "0")
	sharp.SetAttr("ry", "0")
	path, err := geom.Normalize(sharp, cfg.Scale)
	if err != nil {
		return "", err
	}
	if len(path) != 5 {
		return "", errors.New(errors.ErrCodeMalformedRect,
			"error processing a rectangle element: outline has %d commands", len(path))
	}

	// Commands 0 and 2 are the top-left and bottom-right corners of the
	// outline. After the axis flip the emitted pair is bottom-left then
	// top-right.
	left, topOut := cfg.MapPoint(path[0].X, path[0].Y)
	right, bottomOut := cfg.MapPoint(path[2].X, path[2].Y)

	clauses, err := serializeStyle(el, cfg, box, false, false)
	if err != nil {
		return "", err
	}
	style := strings.Join(clauses, ", ")

	name := "rect"
	if el.Label == gridLabel {
		name = "grid"
	}

	rx, ry := el.RectRadii()
	if rx > shearTol || ry > shearTol {
		w := el.FloatAttr("width", 0)
		h := el.FloatAttr("height", 0)
		rxPct, ryPct := 0, 0
		if w != 0 {
			rxPct = roundInt(rx / w * 100)
		}
		if h != 0 {
			ryPct = roundInt(ry / h * 100)
		}
		return fmt.Sprintf("%s(%s, %s, radius: (rest: (%d%%, %d%%)), %s)",
			name, point(left, bottomOut), point(right, topOut), rxPct, ryPct, style), nil
	}
	return fmt.Sprintf("%s(%s, %s, %s)", name, point(left, bottomOut), point(right, topOut), style), nil
}

// circleAnchors samples the endpoints of the first three cubics of a
// normalized circle outline, the three points the fit runs on.
func circleAnchors(path geom.Path) ([3]geom.Point, error) {
	var pts [3]geom.Point
	if len(path) < 4 {
		return pts, errors.New(errors.ErrCodeDegenerateGeometry,
			"circle outline has only %d commands", len(path))
	}
	for i := 0; i < 3; i++ {
		pts[i] = geom.Point{X: path[i+1].X, Y: path[i+1].Y}
	}
	return pts, nil
}

// convertCircle recovers center and radius from three points on the
// normalized outline and emits circle(...).
func convertCircle(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	path, err := geom.Normalize(el, cfg.Scale)
	if err != nil {
		return "", err
	}
	pts, err := circleAnchors(path)
	if err != nil {
		return "", err
	}
	center, radius, err := geom.CircleThrough(pts[0], pts[1], pts[2])
	if err != nil {
		return "", err
	}

	cx, cy := cfg.MapPoint(center.X, center.Y)
	r := cfg.MapLength(radius)

	clauses, err := serializeStyle(el, cfg, box, false, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("circle(%s, radius: %s, %s)",
		point(cx, cy), FormatNumber(r), strings.Join(clauses, ", ")), nil
}

// convertEllipse handles an axis-aligned ellipse by squashing it into a
// circle, fitting that, and restoring the second radius from the original
// radius ratio. Rotated or skewed ellipses go through the path conversion.
func convertEllipse(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	m := el.CumulativeTransform()
	if !m.IsUniformScaleTranslate(shearTol) {
		return convertPath(el, cfg, box)
	}

	rx := el.FloatAttr("rx", 0)
	ry := el.FloatAttr("ry", rx)
	if rx == 0 || ry == 0 {
		return "", errors.New(errors.ErrCodeDegenerateGeometry,
			"ellipse has a zero radius")
	}

	squashed := el.Clone()
	squashed.SetAttr("ry", FormatNumber(rx))
	path, err := geom.Normalize(squashed, cfg.Scale)
	if err != nil {
		return "", err
	}
	pts, err := circleAnchors(path)
	if err != nil {
		return "", err
	}
	center, radiusX, err := geom.CircleThrough(pts[0], pts[1], pts[2])
	if err != nil {
		return "", err
	}

	cx, cy := cfg.MapPoint(center.X, center.Y)
	radiusY := radiusX * (ry / rx)

	clauses, err := serializeStyle(el, cfg, box, false, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("circle(%s, radius: (%s, %s), %s)",
		point(cx, cy),
		FormatNumber(cfg.MapLength(radiusX)),
		FormatNumber(cfg.MapLength(radiusY)),
		strings.Join(clauses, ", ")), nil
}

// convertPath emits a single line(...)/bezier(...) call, or a merge-path
// composite when the element breaks into several sub-shapes. Markers only
// apply to the single-shape form.
func convertPath(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	path, err := geom.Normalize(el, cfg.Scale)
	if err != nil {
		return "", err
	}
	groups := assemble(path, cfg)
	if len(groups) == 0 {
		return "", errors.New(errors.ErrCodeDegenerateGeometry,
			"path <%s> produced no drawable segments", el.Tag)
	}

	if len(groups) == 1 {
		clauses, err := serializeStyle(el, cfg, box, true, false)
		if err != nil {
			return "", err
		}
		g := groups[0]
		return fmt.Sprintf("%s(%s, %s)", g.kind, g.render(), strings.Join(clauses, ", ")), nil
	}

	clauses, err := serializeStyle(el, cfg, box, false, false)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = fmt.Sprintf("%s(%s)", g.kind, g.render())
	}
	return fmt.Sprintf("merge-path(%s, {\n        %s\n})",
		strings.Join(clauses, ", "), strings.Join(lines, "\n")), nil
}

// convertText places the element's text at the center of its rendered
// bounding box. Blank lines split paragraphs, which become explicit
// linebreaks; newlines within a paragraph are joined away.
func convertText(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	var paragraphs []string
	for _, para := range strings.Split(el.TextContent(), "\n\n") {
		paragraphs = append(paragraphs, strings.ReplaceAll(para, "\n", ""))
	}
	body := strings.Join(paragraphs, "#linebreak()")

	clauses, err := serializeStyle(el, cfg, box, false, true)
	if err != nil {
		return "", err
	}
	style := strings.Join(clauses, ", ")

	x, y := cfg.MapPoint(box.CenterX(), box.CenterY())

	m := el.CumulativeTransform()
	angle := (360 - roundInt(m.RotationDeg())) % 360
	if angle < 0 {
		angle += 360
	}
	if angle != 0 {
		return fmt.Sprintf("content(%s, angle: %ddeg, text(%s)[%s])",
			point(x, y), angle, style, body), nil
	}
	return fmt.Sprintf("content(%s, text(%s)[%s])", point(x, y), style, body), nil
}

package convert

import (
	"fmt"
	"math"
	"strings"

	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/errors"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

// genericFontFamilies are the CSS generic family keywords that get replaced
// by the configured default font.
var genericFontFamilies = map[string]bool{
	"serif":         true,
	"sans-serif":    true,
	"monospace":     true,
	"cursive":       true,
	"fantasy":       true,
	"system-ui":     true,
	"ui-serif":      true,
	"ui-sans-serif": true,
	"ui-monospace":  true,
	"ui-rounded":    true,
	"math":          true,
	"emoji":         true,
	"fangsong":      true,
}

// fontWeightNames maps CSS font-weight values to Typst weight names.
var fontWeightNames = map[string]string{
	"normal": "regular",
	"bold":   "bold",
	"100":    "thin",
	"200":    "extralight",
	"300":    "light",
	"400":    "regular",
	"500":    "medium",
	"600":    "semibold",
	"700":    "bold",
	"800":    "extrabold",
	"900":    "black",
}

// serializeStyle renders an element's resolved style into ordered CeTZ style
// clauses: fill, stroke, then optionally mark and text attributes. box is
// the element's own bounding box, needed to place radial gradients.
func serializeStyle(el *svg.Element, cfg *Config, box bbox.Box, includeMarkers, includeText bool) ([]string, error) {
	style := svg.ComputedStyle(el)
	var res []string

	opacity := style.Float("opacity")

	fill := style.FillPaint(cfg.Doc)
	if fill.Kind != svg.PaintNone {
		c, err := paintValue(fill, style, opacity, box)
		if err != nil {
			return nil, err
		}
		res = append(res, "fill: "+c)
	}

	stroke := style.StrokePaint(cfg.Doc)
	widthUU := strokeWidthUserUnits(style)
	if stroke.Kind != svg.PaintNone && widthUU > 0 {
		clause, err := strokeClause(stroke, style, opacity, widthUU, box)
		if err != nil {
			return nil, err
		}
		res = append(res, clause)
	} else {
		res = append(res, "stroke: none")
	}

	if includeMarkers {
		var marks []string
		if m := markerClause(style, cfg, "start"); m != "" {
			marks = append(marks, m)
		}
		if m := markerClause(style, cfg, "end"); m != "" {
			marks = append(marks, m)
		}
		if len(marks) > 0 {
			res = append(res, "mark: ("+strings.Join(marks, ", ")+")")
		}
	}

	if includeText {
		res = append(res, textClauses(style, cfg)...)
	}
	return res, nil
}

// paintValue renders a resolved paint as a CeTZ color or gradient
// expression. The whole-element opacity multiplies into every alpha byte.
// Solid colors also pick up fill-opacity, for strokes too, matching how the
// Inkscape extension has always behaved.
func paintValue(p svg.Paint, style *svg.Style, opacity float64, box bbox.Box) (string, error) {
	switch p.Kind {
	case svg.PaintColor:
		alpha := alphaByte(opacity * style.Float("fill-opacity"))
		return fmt.Sprintf("rgb(\"%s%02X\")", p.Color.Hex(), alpha), nil

	case svg.PaintLinearGradient:
		args := gradientStops(p.Linear.Stops, opacity)
		args = append(args, fmt.Sprintf("angle: %ddeg", roundInt(p.Linear.AngleDeg())))
		return "gradient.linear(" + strings.Join(args, ", ") + ")", nil

	case svg.PaintRadialGradient:
		g := p.Radial
		args := gradientStops(g.Stops, opacity)
		cx := boxPercent(g.Cx, box.Left, box.Width)
		cy := boxPercent(g.Cy, box.Top, box.Height)
		fx := boxPercent(g.Fx, box.Left, box.Width)
		fy := boxPercent(g.Fy, box.Top, box.Height)
		radius := 0
		if box.Height != 0 {
			radius = roundInt(g.R / box.Height * 100)
		}
		args = append(args, fmt.Sprintf(
			"center: (%d%%, %d%%), radius: %d%%, focal-center: (%d%%, %d%%)",
			cx, cy, radius, fx, fy))
		return "gradient.radial(" + strings.Join(args, ", ") + ")", nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedPaint,
		"unsupported paint type (mesh gradients are not supported)")
}

// gradientStops renders each stop as a (rgb("RRGGBBAA"), offset%) pair.
func gradientStops(stops []svg.GradientStop, opacity float64) []string {
	out := make([]string, 0, len(stops))
	for _, stop := range stops {
		out = append(out, fmt.Sprintf("(rgb(\"%s%02X\"), %d%%)",
			stop.Color.Hex(),
			alphaByte(opacity*stop.Opacity),
			roundInt(stop.Offset*100)))
	}
	return out
}

// boxPercent expresses a coordinate as a percentage position within one box
// dimension.
func boxPercent(v, edge, size float64) int {
	if size == 0 {
		return 0
	}
	return roundInt(math.Abs(v-edge) / size * 100)
}

// alphaByte converts a 0..1 opacity into a clamped alpha byte.
func alphaByte(opacity float64) int {
	a := roundInt(opacity * 255)
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return a
}

// strokeWidthUserUnits resolves the stroke-width property to user units.
func strokeWidthUserUnits(style *svg.Style) float64 {
	v, err := svg.LengthToUserUnit(style.Get("stroke-width"), 0)
	if err != nil {
		return 0
	}
	return v
}

// strokeClause assembles the stroke: (...) style clause. Thickness is only
// emitted when it differs from the CeTZ default of 1pt, halved when
// paint-order draws the stroke under the fill; cap, join and miter-limit
// are skipped at their defaults.
func strokeClause(stroke svg.Paint, style *svg.Style, opacity, widthUU float64, box bbox.Box) (string, error) {
	var parts []string

	c, err := paintValue(stroke, style, opacity, box)
	if err != nil {
		return "", err
	}
	parts = append(parts, "paint: "+c)

	widthPt := svg.ToDimensional(widthUU, "pt")
	if widthPt-1 > 1e-5 {
		if strokeBeforeFill(style.Get("paint-order")) {
			widthPt /= 2
		}
		parts = append(parts, "thickness: "+FormatNumber(Round(widthPt, 2))+"pt")
	}

	if lineCap := style.Get("stroke-linecap"); lineCap != "butt" {
		parts = append(parts, fmt.Sprintf("cap: %q", lineCap))
	}
	if join := style.Get("stroke-linejoin"); join != "miter" {
		parts = append(parts, fmt.Sprintf("join: %q", join))
	}
	if ml := style.Get("stroke-miterlimit"); ml != "4" {
		parts = append(parts, "miter-limit: "+ml)
	}

	if dash := style.Dash(); len(dash) > 0 {
		lengths := make([]string, len(dash))
		for i, d := range dash {
			lengths[i] = FormatNumber(Round(svg.ToDimensional(d, "pt"), 2)) + "pt"
		}
		offset := Round(svg.ToDimensional(style.Float("stroke-dashoffset"), "pt"), 2)
		if offset == 0 {
			parts = append(parts, "dash: ("+strings.Join(lengths, ", ")+")")
		} else {
			parts = append(parts, fmt.Sprintf("dash: (array: (%s), phase: %spt)",
				strings.Join(lengths, ", "), FormatNumber(offset)))
		}
	}

	return "stroke: (" + strings.Join(parts, ", ") + ")", nil
}

// strokeBeforeFill reports whether the paint-order property draws the stroke
// under the fill. Layers missing from the property follow in their default
// order.
func strokeBeforeFill(order string) bool {
	if order == "" || order == "normal" {
		return false
	}
	layers := strings.Fields(order)
	for _, def := range []string{"fill", "stroke", "markers"} {
		found := false
		for _, l := range layers {
			if l == def {
				found = true
				break
			}
		}
		if !found {
			layers = append(layers, def)
		}
	}
	for _, l := range layers {
		switch l {
		case "stroke":
			return true
		case "fill":
			return false
		}
	}
	return false
}

// textClauses renders the font attributes of a text element.
func textClauses(style *svg.Style, cfg *Config) []string {
	var res []string

	if !cfg.IgnoreFont {
		family := style.Get("font-family")
		if genericFontFamilies[family] {
			family = cfg.DefaultFont
		}
		res = append(res, "font: "+family)
	}

	sizePt := Round(svg.ToDimensional(style.FontSizeUserUnits(), "pt"), 0)
	res = append(res, "size: "+FormatNumber(sizePt)+"pt")

	weight := style.Get("font-weight")
	if name, ok := fontWeightNames[weight]; ok {
		if name != "regular" {
			res = append(res, fmt.Sprintf("weight: %q", name))
		}
	} else {
		res = append(res, fmt.Sprintf("weight: %q", weight))
	}

	if fs := style.Get("font-style"); fs != "normal" {
		res = append(res, fmt.Sprintf("style: %q", fs))
	}
	return res
}

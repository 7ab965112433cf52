package svg

import (
	"strconv"
	"strings"
)

// Kind is the closed taxonomy of element kinds the converter understands.
// Anything outside it parses as KindUnsupported and is rejected only if it
// ends up in the selection.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindGroup
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindPath
	KindText
)

// kindForTag maps an SVG tag name to its element kind.
func kindForTag(tag string) Kind {
	switch tag {
	case "g", "a":
		return KindGroup
	case "rect":
		return KindRect
	case "circle":
		return KindCircle
	case "ellipse":
		return KindEllipse
	case "line":
		return KindLine
	case "polyline":
		return KindPolyline
	case "polygon":
		return KindPolygon
	case "path":
		return KindPath
	case "text":
		return KindText
	}
	return KindUnsupported
}

// Drawable reports whether the kind converts to a drawing primitive.
// Groups are not drawable themselves; they expand to their children.
func (k Kind) Drawable() bool {
	return k != KindUnsupported && k != KindGroup
}

// Attr is a single XML attribute. Prefixed names keep their prefix
// ("inkscape:label", "xlink:href") so lookups read like the source document.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the parsed scene graph.
type Element struct {
	Kind      Kind
	Tag       string  // original tag name
	ID        string  // id attribute, generated when the source had none
	Label     string  // inkscape:label
	Transform Matrix  // local transform attribute (Identity when absent)
	Attrs     []Attr  // attributes in document order
	Parent    *Element
	Children  []*Element
	Text      string // accumulated character data (text and tspan elements)
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttr replaces or appends an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// FloatAttr returns the named attribute parsed as a float, stripping a unit
// suffix if one is present. Missing or malformed values yield def.
func (e *Element) FloatAttr(name string, def float64) float64 {
	v := e.Attr(name)
	if v == "" {
		return def
	}
	f, unit, err := ParseLength(v)
	if err != nil {
		return def
	}
	if unit == "%" {
		return def
	}
	return ToUserUnit(f, unit)
}

// Clone returns a shallow copy of the element with its own attribute slice.
// The copy shares parent and children with the original; it exists so a
// converter can locally override geometry attributes (zeroing rect corner
// radii, squashing an ellipse into a circle) without touching the document.
func (e *Element) Clone() *Element {
	c := *e
	c.Attrs = make([]Attr, len(e.Attrs))
	copy(c.Attrs, e.Attrs)
	return &c
}

// CumulativeTransform composes all ancestor transforms with the element's
// own, outermost first.
func (e *Element) CumulativeTransform() Matrix {
	if e.Parent == nil {
		return e.Transform
	}
	return e.Parent.CumulativeTransform().Mul(e.Transform)
}

// RectRadii returns the effective corner radii of a rect element, applying
// the SVG defaulting rules (a missing radius mirrors the other one).
func (e *Element) RectRadii() (rx, ry float64) {
	hasRx, hasRy := e.HasAttr("rx"), e.HasAttr("ry")
	rx = e.FloatAttr("rx", 0)
	ry = e.FloatAttr("ry", 0)
	if !hasRx && hasRy {
		rx = ry
	}
	if !hasRy && hasRx {
		ry = rx
	}
	return rx, ry
}

// TextContent returns the element's text with one line per nested tspan,
// matching how multi-line text is authored in Inkscape. Empty tspans keep
// their line; a blank line between two tspans marks a paragraph break.
func (e *Element) TextContent() string {
	var lines []string
	if t := strings.TrimSpace(e.Text); t != "" {
		lines = append(lines, t)
	}
	for _, child := range e.Children {
		t := child.TextContent()
		if t != "" || child.Tag == "tspan" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

// PointsAttr parses the points attribute of a polyline or polygon.
func (e *Element) PointsAttr() ([]float64, error) {
	return parseNumberList(e.Attr("points"))
}

// styleOwn collects the element's own style declarations: presentation
// attributes first, then the style attribute (which wins on conflict).
func (e *Element) styleOwn() []Attr {
	var pairs []Attr
	for _, a := range e.Attrs {
		if _, ok := styleProperties[a.Name]; ok {
			pairs = append(pairs, a)
		}
	}
	if inline := e.Attr("style"); inline != "" {
		for _, decl := range strings.Split(inline, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			pairs = append(pairs, Attr{
				Name:  strings.ToLower(strings.TrimSpace(k)),
				Value: strings.TrimSpace(v),
			})
		}
	}
	return pairs
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

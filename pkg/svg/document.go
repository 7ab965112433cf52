package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// Namespace URIs that keep their conventional prefix when the document is
// re-serialized for the external bounding-box query.
var nsPrefixes = map[string]string{
	"http://www.w3.org/2000/svg":                  "",
	"http://www.w3.org/1999/xlink":                "xlink",
	"http://www.w3.org/XML/1998/namespace":        "xml",
	"http://www.inkscape.org/namespaces/inkscape": "inkscape",
	"http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd": "sodipodi",
}

// Document is a parsed SVG document.
type Document struct {
	Root *Element

	// Width and Height are the nominal page size in user units (px).
	Width, Height float64

	// ViewBox is minX, minY, width, height; HasViewBox reports presence.
	ViewBox    [4]float64
	HasViewBox bool

	// Gradients and Markers index the defs relevant to style resolution.
	// Markers maps a marker element id to its Inkscape stock id.
	Gradients map[string]*Gradient
	Markers   map[string]string

	// Marshaled is the document as handed to the external query: the exact
	// input bytes, or a re-serialization when ids had to be generated.
	Marshaled []byte

	byID map[string]*Element
}

// Scale returns the viewbox scale factor: the ratio of the nominal page
// width to the viewBox width, 1 when either is absent.
func (d *Document) Scale() float64 {
	if !d.HasViewBox || d.ViewBox[2] == 0 || d.Width == 0 {
		return 1
	}
	return d.Width / d.ViewBox[2]
}

// ElementByID returns the element with the given id, or nil.
func (d *Document) ElementByID(id string) *Element {
	return d.byID[id]
}

// RenderingOrder returns the elements with the given ids sorted bottom to
// top, which for SVG is document order. Unknown ids are an error.
func (d *Document) RenderingOrder(ids []string) ([]*Element, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if d.byID[id] == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no element with id %q in the document", id)
		}
		want[id] = true
	}
	var out []*Element
	var walk func(e *Element)
	walk = func(e *Element) {
		if want[e.ID] {
			out = append(out, e)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	if d.Root != nil {
		walk(d.Root)
	}
	return out, nil
}

// Parse reads an SVG document. The decoder is charset-aware so documents
// with non-UTF-8 encoding declarations still load.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "reading svg input")
	}

	doc := &Document{
		Gradients: make(map[string]*Gradient),
		Markers:   make(map[string]string),
		byID:      make(map[string]*Element),
	}

	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		stack       []*Element
		curGradient *Gradient
		injected    int
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "decoding svg input")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := elementFromToken(t)
			if len(stack) > 0 {
				el.Parent = stack[len(stack)-1]
				el.Parent.Children = append(el.Parent.Children, el)
			} else {
				if el.Tag != "svg" {
					return nil, errors.New(errors.ErrCodeParse, "root element is <%s>, expected <svg>", el.Tag)
				}
				doc.Root = el
				doc.readRootAttrs(el)
			}
			if el.ID == "" && (el.Kind.Drawable() || el.Kind == KindGroup) {
				el.ID = generatedID(injected)
				el.SetAttr("id", el.ID)
				injected++
			}
			if el.ID != "" {
				doc.byID[el.ID] = el
			}
			switch el.Tag {
			case "linearGradient", "radialGradient", "meshgradient", "meshGradient":
				curGradient = gradientFromElement(el)
				if curGradient.ID != "" {
					doc.Gradients[curGradient.ID] = curGradient
				}
			case "stop":
				if curGradient != nil {
					curGradient.Stops = append(curGradient.Stops, stopFromElement(el))
				}
			case "marker":
				if stock := el.Attr("inkscape:stockid"); el.ID != "" && stock != "" {
					doc.Markers[el.ID] = stock
				}
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New(errors.ErrCodeParse, "unbalanced end element </%s>", t.Name.Local)
			}
			top := stack[len(stack)-1]
			if top.Tag == "linearGradient" || top.Tag == "radialGradient" ||
				top.Tag == "meshgradient" || top.Tag == "meshGradient" {
				curGradient = nil
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if top.Kind == KindText || top.Tag == "tspan" {
				top.Text += string(t)
			}
		}
	}
	if doc.Root == nil {
		return nil, errors.New(errors.ErrCodeParse, "no <svg> root element found")
	}

	resolveGradientRefs(doc.Gradients)

	if injected > 0 {
		var buf bytes.Buffer
		buf.WriteString(xml.Header)
		writeElement(&buf, doc.Root, 0)
		doc.Marshaled = buf.Bytes()
	} else {
		doc.Marshaled = raw
	}
	return doc, nil
}

// idNamespace seeds the name-based ids generated for elements that have none.
var idNamespace = uuid.MustParse("a9c0d9a4-1b3f-4c87-9e6a-0f2d5b8e41c3")

// generatedID derives an element id from its injection order, so reparsing
// the same document yields the same ids and downstream caching of the
// re-serialized document stays stable.
func generatedID(n int) string {
	return "svg2cetz-" + uuid.NewSHA1(idNamespace, []byte(strconv.Itoa(n))).String()
}

// readRootAttrs picks the page size and viewBox off the svg root.
func (d *Document) readRootAttrs(root *Element) {
	if w := root.Attr("width"); w != "" {
		if v, unit, err := ParseLength(w); err == nil && unit != "%" {
			d.Width = ToUserUnit(v, unit)
		}
	}
	if h := root.Attr("height"); h != "" {
		if v, unit, err := ParseLength(h); err == nil && unit != "%" {
			d.Height = ToUserUnit(v, unit)
		}
	}
	if vb := root.Attr("viewBox"); vb != "" {
		nums, err := parseNumberList(vb)
		if err == nil && len(nums) == 4 {
			copy(d.ViewBox[:], nums)
			d.HasViewBox = true
		}
	}
}

// elementFromToken builds an Element from a start tag, normalizing
// namespaced attribute names back to their prefixed form.
func elementFromToken(t xml.StartElement) *Element {
	el := &Element{
		Tag:       t.Name.Local,
		Kind:      kindForTag(t.Name.Local),
		Transform: Identity,
	}
	for _, a := range t.Attr {
		name := attrName(a.Name)
		el.Attrs = append(el.Attrs, Attr{Name: name, Value: a.Value})
		switch name {
		case "id":
			el.ID = a.Value
		case "inkscape:label":
			el.Label = a.Value
		case "transform":
			if m, err := ParseTransform(a.Value); err == nil {
				el.Transform = m
			}
		}
	}
	return el
}

// attrName reconstructs the prefixed attribute name from a decoded xml.Name.
func attrName(n xml.Name) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == "xmlns":
		return "xmlns:" + n.Local
	}
	if prefix, ok := nsPrefixes[n.Space]; ok {
		if prefix == "" {
			return n.Local
		}
		return prefix + ":" + n.Local
	}
	if n.Local == "xmlns" {
		return "xmlns"
	}
	return n.Local
}

func gradientFromElement(el *Element) *Gradient {
	g := &Gradient{
		ID:        el.ID,
		Radial:    el.Tag == "radialGradient",
		Mesh:      el.Tag == "meshgradient" || el.Tag == "meshGradient",
		Transform: Identity,
	}
	if href := el.Attr("href"); href != "" {
		g.Href = strings.TrimPrefix(href, "#")
	} else if href := el.Attr("xlink:href"); href != "" {
		g.Href = strings.TrimPrefix(href, "#")
	}
	if tr := el.Attr("gradientTransform"); tr != "" {
		if m, err := ParseTransform(tr); err == nil {
			g.Transform = m
		}
	}
	g.X1 = el.FloatAttr("x1", 0)
	g.Y1 = el.FloatAttr("y1", 0)
	g.X2 = el.FloatAttr("x2", 1)
	g.Y2 = el.FloatAttr("y2", 0)
	g.Cx = el.FloatAttr("cx", 0)
	g.Cy = el.FloatAttr("cy", 0)
	g.R = el.FloatAttr("r", 0)
	if el.HasAttr("fx") || el.HasAttr("fy") {
		g.hasFocal = true
		g.Fx = el.FloatAttr("fx", g.Cx)
		g.Fy = el.FloatAttr("fy", g.Cy)
	}
	return g
}

func stopFromElement(el *Element) GradientStop {
	style := ComputedStyle(el)
	stop := GradientStop{Opacity: 1}
	if c, ok := ParseColor(style.Get("stop-color")); ok {
		stop.Color = c
	}
	stop.Opacity = parseFloatDefault(style.Get("stop-opacity"), 1)
	offset := strings.TrimSpace(el.Attr("offset"))
	if strings.HasSuffix(offset, "%") {
		stop.Offset = parseFloatDefault(strings.TrimSuffix(offset, "%"), 0) / 100
	} else {
		stop.Offset = parseFloatDefault(offset, 0)
	}
	return stop
}

// writeElement serializes the element tree. Used only when ids were
// generated during parsing, since the external query addresses elements by
// id and the ids must exist in the queried file.
func writeElement(buf *bytes.Buffer, el *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(buf, "%s<%s", indent, el.Tag)
	for _, a := range el.Attrs {
		fmt.Fprintf(buf, " %s=\"%s\"", a.Name, escapeAttr(a.Value))
	}
	if len(el.Children) == 0 && el.Text == "" {
		buf.WriteString(" />\n")
		return
	}
	buf.WriteString(">")
	if el.Text != "" {
		xml.EscapeText(buf, []byte(el.Text))
	}
	if len(el.Children) > 0 {
		buf.WriteString("\n")
		for _, c := range el.Children {
			writeElement(buf, c, depth+1)
		}
		buf.WriteString(indent)
	}
	fmt.Fprintf(buf, "</%s>\n", el.Tag)
}

func escapeAttr(v string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(v))
	return buf.String()
}

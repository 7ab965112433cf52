// Package bbox obtains element bounding boxes from an external Inkscape
// process. Rendered extents depend on stroke widths, markers and fonts, so
// they are queried from a real renderer instead of being estimated from
// geometry. Query results are cacheable; a whole selection is resolved in
// one process invocation.
package bbox

import (
	"context"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// Box is an element's rendered extent in user units, y growing downwards.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FromXYWH builds a Box from the four values Inkscape reports per element.
func FromXYWH(x, y, w, h float64) Box {
	return Box{Left: x, Top: y, Width: w, Height: h}
}

// Right returns the right edge.
func (b Box) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge (the larger y, since y grows downwards).
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 {
	return b.Left + b.Width/2
}

// CenterY returns the vertical center.
func (b Box) CenterY() float64 {
	return b.Top + b.Height/2
}

// Querier resolves the rendered bounding boxes of the identified elements
// within an SVG document.
type Querier interface {
	Query(ctx context.Context, doc []byte, ids []string) (map[string]Box, error)
}

// Global returns the union of the given boxes: the smallest box containing
// every one of them. It is the drawing extent the coordinate mapping is
// anchored to.
func Global(boxes map[string]Box) (Box, error) {
	if len(boxes) == 0 {
		return Box{}, errors.New(errors.ErrCodeBoundingBox, "no bounding boxes to combine")
	}
	first := true
	var left, top, right, bottom float64
	for _, b := range boxes {
		if first {
			left, top, right, bottom = b.Left, b.Top, b.Right(), b.Bottom()
			first = false
			continue
		}
		if b.Left < left {
			left = b.Left
		}
		if b.Top < top {
			top = b.Top
		}
		if b.Right() > right {
			right = b.Right()
		}
		if b.Bottom() > bottom {
			bottom = b.Bottom()
		}
	}
	return Box{Left: left, Top: top, Width: right - left, Height: bottom - top}, nil
}

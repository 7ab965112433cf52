// Package convert turns parsed SVG elements into CeTZ drawing calls. Each
// element becomes one expression: rect, grid, circle, line, bezier,
// merge-path or content, with the cascade-resolved style serialized into the
// call's style arguments.
package convert

import (
	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/errors"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

// MarkerPolicy decides what happens when a marker's stock id has no CeTZ
// equivalent.
type MarkerPolicy string

const (
	// MarkerSkipUnknown drops unknown markers from the output.
	MarkerSkipUnknown MarkerPolicy = "no_unknown_marker"
	// MarkerFallback substitutes a plain triangle arrow.
	MarkerFallback MarkerPolicy = "default_marker"
)

// Config carries the run-wide conversion settings. It is built once per run
// and read-only afterwards.
type Config struct {
	// Doc is the parsed document; gradient and marker lookups go through it.
	Doc *svg.Document

	// Extent is the union bounding box of every selected element. The
	// output origin sits at its bottom-left corner.
	Extent bbox.Box

	// Scale is the document's viewbox scale factor.
	Scale float64

	// Precision is the number of decimal digits kept when emitting
	// coordinates and dimensions.
	Precision int

	// IgnoreFont suppresses font-family clauses on text elements.
	IgnoreFont bool

	// DefaultFont substitutes generic CSS family keywords.
	DefaultFont string

	// Markers is the unknown-marker policy.
	Markers MarkerPolicy
}

// Convert produces the CeTZ expression for one element. box is the
// element's own rendered bounding box; gradients and text placement are
// computed relative to it. The returned string may span multiple lines for
// merge-path composites.
func Convert(el *svg.Element, cfg *Config, box bbox.Box) (string, error) {
	switch el.Kind {
	case svg.KindRect:
		return convertRect(el, cfg, box)
	case svg.KindCircle:
		return convertCircle(el, cfg, box)
	case svg.KindEllipse:
		return convertEllipse(el, cfg, box)
	case svg.KindText:
		return convertText(el, cfg, box)
	case svg.KindPath, svg.KindLine, svg.KindPolyline, svg.KindPolygon:
		return convertPath(el, cfg, box)
	}
	return "", errors.New(errors.ErrCodeUnsupportedElement,
		"unsupported object selected: <%s>", el.Tag)
}

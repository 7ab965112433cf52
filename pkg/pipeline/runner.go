package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/convert"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

// Runner executes conversion runs against a bounding-box querier.
//
// The Runner is stateless except for the querier and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Querier bbox.Querier
	Logger  *log.Logger
}

// NewRunner creates a runner with the given querier.
// If querier is nil, the Inkscape binary on PATH is used.
func NewRunner(q bbox.Querier, logger *log.Logger) *Runner {
	if q == nil {
		q = &bbox.Inkscape{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Querier: q, Logger: logger}
}

// Run converts the SVG document read from r into a wrapped block of CeTZ
// code.
func (r *Runner) Run(ctx context.Context, in io.Reader, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	doc, err := svg.Parse(in)
	if err != nil {
		return nil, err
	}

	elements, err := r.selection(doc, opts.IDs)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		logger.Info("nothing to convert", "ids", len(opts.IDs))
		return &Result{Empty: true}, nil
	}

	result := &Result{}
	result.Stats.Elements = len(elements)

	ids := make([]string, len(elements))
	for i, el := range elements {
		ids[i] = el.ID
	}

	queryStart := time.Now()
	boxes, err := r.Querier.Query(ctx, doc.Marshaled, ids)
	if err != nil {
		return nil, err
	}
	result.Stats.QueryTime = time.Since(queryStart)
	if cached, ok := r.Querier.(*bbox.Cached); ok {
		result.CacheHit = cached.Hit
	}

	extent, err := bbox.Global(boxes)
	if err != nil {
		return nil, err
	}

	logger.Info("measured selection",
		"elements", len(elements),
		"cached", result.CacheHit,
		"duration", result.Stats.QueryTime)

	cfg := &convert.Config{
		Doc:         doc,
		Extent:      extent,
		Scale:       doc.Scale(),
		Precision:   *opts.Precision,
		IgnoreFont:  opts.IgnoreFont,
		DefaultFont: opts.DefaultFont,
		Markers:     opts.Marker,
	}

	convertStart := time.Now()
	shapes := make([]string, len(elements))
	for i, el := range elements {
		shape, err := convert.Convert(el, cfg, boxes[el.ID])
		if err != nil {
			return nil, err
		}
		shapes[i] = shape
	}
	result.Stats.ConvertTime = time.Since(convertStart)

	logger.Info("converted selection",
		"elements", len(elements),
		"duration", result.Stats.ConvertTime)

	result.Lines = wrapBlock(shapes, opts.Wrap)
	return result, nil
}

// selection resolves the requested ids (or the whole document) into the
// drawable elements of the run, bottom to top. Groups expand recursively
// into their drawable leaves; an explicitly selected non-group element is
// kept as is, so selecting something unsupported still fails loudly during
// conversion.
func (r *Runner) selection(doc *svg.Document, ids []string) ([]*svg.Element, error) {
	var roots []*svg.Element
	if len(ids) > 0 {
		ordered, err := doc.RenderingOrder(ids)
		if err != nil {
			return nil, err
		}
		roots = ordered
	} else if doc.Root != nil {
		roots = doc.Root.Children
	}

	var out []*svg.Element
	for _, el := range roots {
		out = append(out, expand(el, len(ids) > 0)...)
	}
	return out, nil
}

// expand flattens an element into drawable leaves. Outside an explicit
// selection, unsupported elements (defs, metadata, markers) are silently
// skipped rather than failing the run.
func expand(el *svg.Element, explicit bool) []*svg.Element {
	if el.Kind == svg.KindGroup {
		var out []*svg.Element
		for _, child := range el.Children {
			out = append(out, expand(child, false)...)
		}
		return out
	}
	if el.Kind.Drawable() || explicit {
		return []*svg.Element{el}
	}
	return nil
}

// wrapBlock assembles the final output lines: the requested wrapper, the
// canvas opener, the import line, one line per shape, and matching closers.
// The canvas body indents four spaces per nesting level.
func wrapBlock(shapes []string, wrap string) []string {
	var lines []string
	indent := 4
	switch wrap {
	case WrapFigure:
		lines = append(lines, "#figure(", "    cetz.canvas({")
		indent = 8
	case WrapAlign:
		lines = append(lines, "#align(", "    center,", "    cetz.canvas({")
		indent = 8
	default:
		lines = append(lines, "#cetz.canvas({")
	}

	pad := strings.Repeat(" ", indent)
	lines = append(lines, pad+"import cetz.draw: *")
	for _, s := range shapes {
		lines = append(lines, pad+s)
	}
	lines = append(lines, strings.Repeat(" ", indent-4)+"})")

	if wrap == WrapFigure || wrap == WrapAlign {
		lines = append(lines, ")")
	}
	return lines
}

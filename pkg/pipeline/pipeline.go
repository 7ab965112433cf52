// Package pipeline drives a complete conversion run: parse the document,
// measure the selection, convert every element, and wrap the output block.
//
// The pipeline consists of three stages:
//
//  1. Select: resolve the requested ids (or the whole document) into drawable
//     elements in rendering order, expanding groups recursively
//  2. Measure: one batched bounding-box query for the whole selection, from
//     which the per-element and global extents are derived
//  3. Convert: dispatch each element through pkg/convert and assemble the
//     wrapped CeTZ block
//
// Centralizing this logic keeps the CLI a thin flag-parsing shell and makes
// the whole run testable with a fake bounding-box querier.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(querier, logger)
//	opts := pipeline.Options{Wrap: pipeline.WrapFigure}
//	result, err := runner.Run(ctx, file, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range result.Lines {
//	    fmt.Println(line)
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phoscity/svg2cetz/pkg/convert"
)

const (
	// DefaultPrecision is the number of decimal digits kept when emitting
	// coordinates and dimensions.
	DefaultPrecision = 2

	// DefaultFontName substitutes generic CSS font families in text output.
	DefaultFontName = "Linux Libertine"
)

// Wrap styles for the emitted block.
const (
	WrapNone   = "none"
	WrapFigure = "figure"
	WrapAlign  = "align"
)

// DefaultWrap is the wrap style used when none is requested.
const DefaultWrap = WrapNone

// DefaultMarkerPolicy is how unknown marker stock ids are handled.
const DefaultMarkerPolicy = convert.MarkerFallback

// ValidWraps is the set of supported wrap styles.
var ValidWraps = map[string]bool{
	WrapNone:   true,
	WrapFigure: true,
	WrapAlign:  true,
}

// ValidMarkerPolicies is the set of supported unknown-marker policies.
var ValidMarkerPolicies = map[convert.MarkerPolicy]bool{
	convert.MarkerSkipUnknown: true,
	convert.MarkerFallback:    true,
}

// Options contains all configuration for a conversion run.
type Options struct {
	// Precision is the number of decimal digits for emitted numbers. Nil
	// means DefaultPrecision; zero is a valid request and rounds to whole
	// numbers.
	Precision *int `json:"precision,omitempty"`

	// Wrap selects the outer block form: none, figure, or align.
	Wrap string `json:"wrap,omitempty"`

	// IgnoreFont suppresses font clauses in text output.
	IgnoreFont bool `json:"ignore_font,omitempty"`

	// DefaultFont replaces generic CSS font families.
	DefaultFont string `json:"default_font,omitempty"`

	// Marker is the policy for unknown marker stock ids.
	Marker convert.MarkerPolicy `json:"marker,omitempty"`

	// IDs restricts the run to the listed element ids. Empty means the
	// whole document.
	IDs []string `json:"ids,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Lines is the emitted block, one output line per entry.
	Lines []string

	// Empty reports that the selection contained nothing drawable. The
	// caller decides how to surface this; it is not an error.
	Empty bool

	// CacheHit reports whether the bounding-box query was served from
	// cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements    int
	QueryTime   time.Duration
	ConvertTime time.Duration
}

// ValidateWrap checks that a wrap style is valid.
func ValidateWrap(wrap string) error {
	if !ValidWraps[wrap] {
		return fmt.Errorf("invalid wrap: %q (must be one of: none, figure, align)", wrap)
	}
	return nil
}

// ValidateMarkerPolicy checks that an unknown-marker policy is valid.
func ValidateMarkerPolicy(policy convert.MarkerPolicy) error {
	if !ValidMarkerPolicies[policy] {
		return fmt.Errorf("invalid marker policy: %q (must be one of: %s, %s)",
			policy, convert.MarkerSkipUnknown, convert.MarkerFallback)
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults. This method is
// idempotent - calling it multiple times has the same effect as calling it
// once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Precision == nil {
		p := DefaultPrecision
		o.Precision = &p
	}
	if *o.Precision < 0 {
		return fmt.Errorf("invalid precision: %d (must be >= 0)", *o.Precision)
	}
	if o.Wrap == "" {
		o.Wrap = DefaultWrap
	}
	if err := ValidateWrap(o.Wrap); err != nil {
		return err
	}
	if o.DefaultFont == "" {
		o.DefaultFont = DefaultFontName
	}
	if o.Marker == "" {
		o.Marker = DefaultMarkerPolicy
	}
	if err := ValidateMarkerPolicy(o.Marker); err != nil {
		return err
	}
	o.validated = true
	return nil
}

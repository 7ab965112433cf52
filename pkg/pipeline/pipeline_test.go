package pipeline

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/cache"
	"github.com/phoscity/svg2cetz/pkg/convert"
	"github.com/phoscity/svg2cetz/pkg/errors"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

type fakeQuerier struct {
	boxes  map[string]bbox.Box
	calls  int
	gotIDs []string
}

func (f *fakeQuerier) Query(_ context.Context, _ []byte, ids []string) (map[string]bbox.Box, error) {
	f.calls++
	f.gotIDs = append([]string(nil), ids...)
	out := make(map[string]bbox.Box, len(ids))
	for _, id := range ids {
		b, ok := f.boxes[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeBoundingBox, "no box for %q", id)
		}
		out[id] = b
	}
	return out, nil
}

func cm(v float64) float64 { return svg.ToUserUnit(v, "cm") }

func quietRunner(q bbox.Querier) *Runner {
	return NewRunner(q, log.New(io.Discard))
}

// rectDoc is a document holding a single unfilled black-stroked rectangle
// of 3cm by 2cm at the origin.
func rectDoc() (string, bbox.Box) {
	doc := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%f" height="%f">
  <rect id="r1" x="0" y="0" width="%f" height="%f" style="fill:none;stroke:#000000"/>
</svg>`, cm(4), cm(3), cm(3), cm(2))
	return doc, bbox.FromXYWH(0, 0, cm(3), cm(2))
}

func TestRunSingleRect(t *testing.T) {
	doc, box := rectDoc()
	q := &fakeQuerier{boxes: map[string]bbox.Box{"r1": box}}

	result, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{
		"#cetz.canvas({",
		"    import cetz.draw: *",
		`    rect((0, 0), (3, 2), stroke: (paint: rgb("000000FF")))`,
		"})",
	}
	if !reflect.DeepEqual(result.Lines, want) {
		t.Errorf("Run() lines = %q, want %q", result.Lines, want)
	}
	if result.Empty {
		t.Error("Empty = true, want false")
	}
	if result.Stats.Elements != 1 {
		t.Errorf("Stats.Elements = %d, want 1", result.Stats.Elements)
	}
	if q.calls != 1 {
		t.Errorf("querier calls = %d, want 1", q.calls)
	}
}

func TestRunWrapStyles(t *testing.T) {
	doc, box := rectDoc()

	tests := []struct {
		wrap  string
		head  []string
		tail  []string
		inner string
	}{
		{
			wrap:  WrapNone,
			head:  []string{"#cetz.canvas({"},
			tail:  []string{"})"},
			inner: "    ",
		},
		{
			wrap:  WrapFigure,
			head:  []string{"#figure(", "    cetz.canvas({"},
			tail:  []string{"    })", ")"},
			inner: "        ",
		},
		{
			wrap:  WrapAlign,
			head:  []string{"#align(", "    center,", "    cetz.canvas({"},
			tail:  []string{"    })", ")"},
			inner: "        ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.wrap, func(t *testing.T) {
			q := &fakeQuerier{boxes: map[string]bbox.Box{"r1": box}}
			result, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc), Options{Wrap: tt.wrap})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			lines := result.Lines
			wantLen := len(tt.head) + 2 + len(tt.tail)
			if len(lines) != wantLen {
				t.Fatalf("len(lines) = %d, want %d (%q)", len(lines), wantLen, lines)
			}
			for i, h := range tt.head {
				if lines[i] != h {
					t.Errorf("lines[%d] = %q, want %q", i, lines[i], h)
				}
			}
			if got := lines[len(tt.head)]; got != tt.inner+"import cetz.draw: *" {
				t.Errorf("import line = %q, want indent %d", got, len(tt.inner))
			}
			if got := lines[len(tt.head)+1]; !strings.HasPrefix(got, tt.inner+"rect(") {
				t.Errorf("shape line = %q, want %q prefix", got, tt.inner+"rect(")
			}
			for i, w := range tt.tail {
				if got := lines[len(lines)-len(tt.tail)+i]; got != w {
					t.Errorf("closing line = %q, want %q", got, w)
				}
			}
		})
	}
}

func TestRunGroupExpansion(t *testing.T) {
	// The rect sits inside a translated layer group; the conversion must
	// reach the leaf and apply the group transform.
	doc := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%f" height="%f">
  <g id="layer1" transform="translate(%f, 0)">
    <rect id="inner" x="0" y="0" width="%f" height="%f" style="fill:none;stroke:#000000"/>
  </g>
</svg>`, cm(4), cm(2), cm(1), cm(3), cm(2))

	q := &fakeQuerier{boxes: map[string]bbox.Box{
		"inner": bbox.FromXYWH(cm(1), 0, cm(3), cm(2)),
	}}

	result, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(q.gotIDs, []string{"inner"}) {
		t.Errorf("queried ids = %q, want [inner]", q.gotIDs)
	}
	want := `    rect((0, 0), (3, 2), stroke: (paint: rgb("000000FF")))`
	if result.Lines[2] != want {
		t.Errorf("shape line = %q, want %q", result.Lines[2], want)
	}
}

func TestRunSelectionOrder(t *testing.T) {
	// Explicit ids come back in document order regardless of how they were
	// requested.
	doc := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%f" height="%f">
  <rect id="a" x="0" y="0" width="%f" height="%f" style="fill:none;stroke:#000000"/>
  <rect id="b" x="0" y="0" width="%f" height="%f" style="fill:none;stroke:#ff0000"/>
  <rect id="c" x="0" y="0" width="%f" height="%f" style="fill:none;stroke:#0000ff"/>
</svg>`, cm(4), cm(3), cm(1), cm(1), cm(2), cm(2), cm(3), cm(3))

	box := bbox.FromXYWH(0, 0, cm(3), cm(3))
	q := &fakeQuerier{boxes: map[string]bbox.Box{"a": box, "b": box, "c": box}}

	result, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc),
		Options{IDs: []string{"c", "a"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(q.gotIDs, []string{"a", "c"}) {
		t.Errorf("queried ids = %q, want [a c]", q.gotIDs)
	}
	if result.Stats.Elements != 2 {
		t.Errorf("Stats.Elements = %d, want 2", result.Stats.Elements)
	}
	if !strings.Contains(result.Lines[2], `rgb("000000FF")`) {
		t.Errorf("first shape = %q, want the black rect first", result.Lines[2])
	}
	if !strings.Contains(result.Lines[3], `rgb("0000FFFF")`) {
		t.Errorf("second shape = %q, want the blue rect second", result.Lines[3])
	}
}

func TestRunUnknownID(t *testing.T) {
	doc, box := rectDoc()
	q := &fakeQuerier{boxes: map[string]bbox.Box{"r1": box}}

	_, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc),
		Options{IDs: []string{"missing"}})
	if err == nil {
		t.Fatal("Run() error = nil, want INVALID_INPUT")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if q.calls != 0 {
		t.Errorf("querier calls = %d, want 0", q.calls)
	}
}

func TestRunEmptySelection(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <defs>
    <linearGradient id="g"><stop offset="0" stop-color="#000"/></linearGradient>
  </defs>
  <metadata>nothing drawable here</metadata>
</svg>`

	q := &fakeQuerier{}
	result, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Empty {
		t.Error("Empty = false, want true")
	}
	if len(result.Lines) != 0 {
		t.Errorf("Lines = %q, want none", result.Lines)
	}
	if q.calls != 0 {
		t.Errorf("querier calls = %d, want 0", q.calls)
	}
}

func TestRunCacheHit(t *testing.T) {
	doc, box := rectDoc()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	inner := &fakeQuerier{boxes: map[string]bbox.Box{"r1": box}}
	runner := quietRunner(bbox.NewCached(inner, c))

	result, err := runner.Run(context.Background(), strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.CacheHit {
		t.Error("CacheHit = true on first run, want false")
	}

	result, err = runner.Run(context.Background(), strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.CacheHit {
		t.Error("CacheHit = false on second run, want true")
	}
	if inner.calls != 1 {
		t.Errorf("inner querier calls = %d, want 1", inner.calls)
	}
}

func TestRunConversionFailureAborts(t *testing.T) {
	// Selecting something unsupported fails the whole run, no partial
	// output.
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <image id="img" href="photo.png" width="10" height="10"/>
</svg>`

	q := &fakeQuerier{boxes: map[string]bbox.Box{"img": bbox.FromXYWH(0, 0, 10, 10)}}
	_, err := quietRunner(q).Run(context.Background(), strings.NewReader(doc),
		Options{IDs: []string{"img"}})
	if err == nil {
		t.Fatal("Run() error = nil, want UNSUPPORTED_ELEMENT")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedElement) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnsupportedElement)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Precision == nil || *opts.Precision != DefaultPrecision {
		t.Errorf("Precision = %v, want %d", opts.Precision, DefaultPrecision)
	}
	if opts.Wrap != WrapNone {
		t.Errorf("Wrap = %q, want %q", opts.Wrap, WrapNone)
	}
	if opts.DefaultFont != DefaultFontName {
		t.Errorf("DefaultFont = %q, want %q", opts.DefaultFont, DefaultFontName)
	}
	if opts.Marker != convert.MarkerFallback {
		t.Errorf("Marker = %q, want %q", opts.Marker, convert.MarkerFallback)
	}

	bad := Options{Wrap: "sideways"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() error = nil for invalid wrap")
	}
	bad = Options{Marker: "ignore"}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() error = nil for invalid marker policy")
	}
	neg := -1
	bad = Options{Precision: &neg}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("ValidateAndSetDefaults() error = nil for negative precision")
	}

	// An explicit zero is a valid request, not a missing value.
	zero := 0
	opts = Options{Precision: &zero}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if *opts.Precision != 0 {
		t.Errorf("Precision = %d, want 0", *opts.Precision)
	}
}

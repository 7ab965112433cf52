package convert

import (
	"testing"

	"github.com/phoscity/svg2cetz/pkg/bbox"
	"github.com/phoscity/svg2cetz/pkg/svg"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      float64
	}{
		{1.005, 0, 1},
		{1.5, 0, 2},
		{2.5, 0, 2}, // half to even
		{3.14159, 2, 3.14},
		{3.14159, 4, 3.1416},
		{-1.25, 1, -1.2},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.precision, got, tt.want)
		}
	}
}

func TestRoundIdempotent(t *testing.T) {
	for _, v := range []float64{3.14159, -2.71828, 0.125, 1e6 + 0.333} {
		for p := 0; p <= 4; p++ {
			once := Round(v, p)
			if twice := Round(once, p); twice != once {
				t.Errorf("Round(Round(%v, %d)) = %v, want %v", v, p, twice, once)
			}
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-2, "-2"},
		{3.5, "3.5"},
		{0.25, "0.25"},
		{-0.75, "-0.75"},
		{100, "100"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestMapPoint(t *testing.T) {
	cm := func(v float64) float64 { return svg.ToUserUnit(v, "cm") }

	cfg := &Config{
		Extent:    bbox.FromXYWH(cm(1), cm(1), cm(4), cm(3)),
		Scale:     1,
		Precision: 2,
	}

	// The extent's bottom-left corner is the output origin.
	x, y := cfg.MapPoint(cm(1), cm(4))
	if x != 0 || y != 0 {
		t.Errorf("origin maps to (%v, %v), want (0, 0)", x, y)
	}

	// The top-right corner maps to (width, height) with y flipped.
	x, y = cfg.MapPoint(cm(5), cm(1))
	if x != 4 || y != 3 {
		t.Errorf("top right maps to (%v, %v), want (4, 3)", x, y)
	}
}

func TestMapPointRoundTrip(t *testing.T) {
	cfg := &Config{
		Extent:    bbox.FromXYWH(10, 20, 500, 400),
		Scale:     1,
		Precision: 2,
	}

	xs := []float64{10, 137.5, 301.25, 510}
	ys := []float64{20, 99.9, 420}
	for _, x := range xs {
		for _, y := range ys {
			mx, my := cfg.MapPoint(x, y)
			// Invert: back to user units.
			bx := svg.ToUserUnit(mx, "cm") + cfg.Extent.Left
			by := cfg.Extent.Bottom() - svg.ToUserUnit(my, "cm")
			tol := svg.ToUserUnit(0.005, "cm")
			if diff := bx - x; diff > tol || diff < -tol {
				t.Errorf("x round trip of %v drifted by %v", x, diff)
			}
			if diff := by - y; diff > tol || diff < -tol {
				t.Errorf("y round trip of %v drifted by %v", y, diff)
			}
		}
	}
}

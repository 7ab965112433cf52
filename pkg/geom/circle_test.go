package geom

import (
	"math"
	"testing"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

func TestCircleThrough(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 Point
		center     Point
		radius     float64
	}{
		{
			name: "unit circle",
			p1:   Point{1, 0}, p2: Point{0, 1}, p3: Point{-1, 0},
			center: Point{0, 0},
			radius: 1,
		},
		{
			name: "translated circle",
			p1:   Point{8, 3}, p2: Point{3, 8}, p3: Point{-2, 3},
			center: Point{3, 3},
			radius: 5,
		},
		{
			name: "small radius",
			p1:   Point{0.01, 0}, p2: Point{0, 0.01}, p3: Point{-0.01, 0},
			center: Point{0, 0},
			radius: 0.01,
		},
		{
			name: "clockwise samples",
			p1:   Point{-1, 0}, p2: Point{0, 1}, p3: Point{1, 0},
			center: Point{0, 0},
			radius: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, radius, err := CircleThrough(tt.p1, tt.p2, tt.p3)
			if err != nil {
				t.Fatalf("CircleThrough() error = %v", err)
			}

			const tol = 1e-9
			if math.Abs(center.X-tt.center.X) > tol || math.Abs(center.Y-tt.center.Y) > tol {
				t.Errorf("center = (%v, %v), want (%v, %v)", center.X, center.Y, tt.center.X, tt.center.Y)
			}
			if math.Abs(radius-tt.radius) > tol {
				t.Errorf("radius = %v, want %v", radius, tt.radius)
			}
		})
	}
}

func TestCircleThroughDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 Point
	}{
		{name: "collinear", p1: Point{0, 0}, p2: Point{1, 1}, p3: Point{2, 2}},
		{name: "coincident first two", p1: Point{1, 1}, p2: Point{1, 1}, p3: Point{2, 2}},
		{name: "all coincident", p1: Point{1, 1}, p2: Point{1, 1}, p3: Point{1, 1}},
		{name: "nearly collinear", p1: Point{0, 0}, p2: Point{1, 1e-14}, p3: Point{2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CircleThrough(tt.p1, tt.p2, tt.p3)
			if err == nil {
				t.Fatal("CircleThrough() error = nil, want DEGENERATE_GEOMETRY")
			}
			if !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDegenerateGeometry)
			}
		})
	}
}

// The fit must recover the parameters of any circle from three distinct
// points on it, regardless of where on the circle they sit.
func TestCircleThroughRecoversArbitrarySamples(t *testing.T) {
	center := Point{X: -4.25, Y: 17.5}
	radius := 3.75
	angles := []float64{0.3, 1.9, 4.4}

	var pts [3]Point
	for i, a := range angles {
		pts[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}

	got, r, err := CircleThrough(pts[0], pts[1], pts[2])
	if err != nil {
		t.Fatalf("CircleThrough() error = %v", err)
	}
	if math.Abs(got.X-center.X) > 1e-9 || math.Abs(got.Y-center.Y) > 1e-9 {
		t.Errorf("center = (%v, %v), want (%v, %v)", got.X, got.Y, center.X, center.Y)
	}
	if math.Abs(r-radius) > 1e-9 {
		t.Errorf("radius = %v, want %v", r, radius)
	}
}

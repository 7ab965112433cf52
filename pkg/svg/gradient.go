package svg

import "math"

// GradientStop is one color stop of a gradient, offset in [0, 1].
type GradientStop struct {
	Color   Color
	Opacity float64
	Offset  float64
}

// LinearGradient is a resolved linear gradient in user-space coordinates.
type LinearGradient struct {
	X1, Y1, X2, Y2 float64
	Stops          []GradientStop
}

// AngleDeg returns the gradient axis angle in degrees.
func (g *LinearGradient) AngleDeg() float64 {
	return math.Atan2(g.Y2-g.Y1, g.X2-g.X1) * 180 / math.Pi
}

// RadialGradient is a resolved radial gradient in user-space coordinates,
// with its gradientTransform already applied.
type RadialGradient struct {
	Cx, Cy, R, Fx, Fy float64
	Stops             []GradientStop
}

// Gradient is the parse-time representation before href resolution. Mesh
// gradients parse into a Gradient with Mesh set so that referencing them
// yields an unsupported paint.
type Gradient struct {
	ID        string
	Radial    bool
	Mesh      bool
	Href      string // referenced gradient id, "" when self-contained
	Transform Matrix
	// Raw coordinates as authored; linear uses X1..Y2, radial Cx/Cy/R/Fx/Fy.
	X1, Y1, X2, Y2    float64
	Cx, Cy, R, Fx, Fy float64
	hasFocal          bool
	Stops             []GradientStop
}

// paint materializes the gradient as a Paint, applying the radial
// gradientTransform to its center and focal point. The radius scales by the
// root of the transform's determinant, which is exact for uniform scaling.
func (g *Gradient) paint() Paint {
	if g.Mesh {
		return Paint{Kind: PaintUnsupported}
	}
	if !g.Radial {
		return Paint{Kind: PaintLinearGradient, Linear: &LinearGradient{
			X1: g.X1, Y1: g.Y1, X2: g.X2, Y2: g.Y2,
			Stops: g.Stops,
		}}
	}
	fx, fy := g.Fx, g.Fy
	if !g.hasFocal {
		fx, fy = g.Cx, g.Cy
	}
	m := g.Transform
	cx, cy := m.Apply(g.Cx, g.Cy)
	fx, fy = m.Apply(fx, fy)
	r := g.R * math.Sqrt(math.Abs(m.A*m.D-m.B*m.C))
	return Paint{Kind: PaintRadialGradient, Radial: &RadialGradient{
		Cx: cx, Cy: cy, R: r, Fx: fx, Fy: fy,
		Stops: g.Stops,
	}}
}

// resolveGradientRefs copies stops (and missing geometry) along href chains.
// Inkscape routinely splits a gradient into a stop holder plus one or more
// positioned gradients referencing it.
func resolveGradientRefs(grads map[string]*Gradient) {
	for _, g := range grads {
		seen := map[string]bool{g.ID: true}
		cur := g
		for len(cur.Stops) == 0 && cur.Href != "" && !seen[cur.Href] {
			seen[cur.Href] = true
			next, ok := grads[cur.Href]
			if !ok {
				break
			}
			cur = next
		}
		if cur != g {
			g.Stops = cur.Stops
		}
	}
}

package svg

import (
	"math"
	"strconv"
	"strings"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// Matrix is a 2D affine transform using the SVG parameter order:
//
//	| A C E |
//	| B D F |
//
// A point (x, y) maps to (A·x + C·y + E, B·x + D·y + F).
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mul returns m × n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Translate returns m composed with a translation.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{1, 0, 0, 1, x, y})
}

// Scale returns m composed with a scale.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{x, 0, 0, y, 0, 0})
}

// Rotate returns m composed with a rotation by rad radians.
func (m Matrix) Rotate(rad float64) Matrix {
	sin, cos := math.Sin(rad), math.Cos(rad)
	return m.Mul(Matrix{cos, sin, -sin, cos, 0, 0})
}

// SkewX returns m composed with a skew along the x axis.
func (m Matrix) SkewX(rad float64) Matrix {
	return m.Mul(Matrix{1, 0, math.Tan(rad), 1, 0, 0})
}

// SkewY returns m composed with a skew along the y axis.
func (m Matrix) SkewY(rad float64) Matrix {
	return m.Mul(Matrix{1, math.Tan(rad), 0, 1, 0, 0})
}

// HasShear reports whether the transform rotates or skews, within tol.
// Rectangles under such a transform can no longer be described by two
// corners and fall back to the generic path conversion.
func (m Matrix) HasShear(tol float64) bool {
	return math.Abs(m.B) >= tol || math.Abs(m.C) >= tol
}

// IsUniformScaleTranslate reports whether the transform is a uniform scale
// plus translation. Ellipses keep their axis-aligned parameterization only
// under such transforms.
func (m Matrix) IsUniformScaleTranslate(tol float64) bool {
	if m.HasShear(tol) {
		return false
	}
	return math.Abs(math.Abs(m.A)-math.Abs(m.D)) < tol
}

// RotationDeg returns the rotation component of the transform in degrees.
func (m Matrix) RotationDeg() float64 {
	return math.Atan2(m.B, m.A) * 180 / math.Pi
}

// ParseTransform parses an SVG transform attribute: a whitespace or comma
// separated list of matrix/translate/scale/rotate/skewX/skewY operations,
// composed left to right.
func ParseTransform(v string) (Matrix, error) {
	m := Identity
	v = strings.TrimSpace(v)
	for v != "" {
		open := strings.IndexByte(v, '(')
		closing := strings.IndexByte(v, ')')
		if open < 0 || closing < open {
			return Identity, errors.New(errors.ErrCodeParse, "malformed transform attribute %q", v)
		}
		name := strings.TrimSpace(strings.Trim(v[:open], ", "))
		args, err := parseNumberList(v[open+1 : closing])
		if err != nil {
			return Identity, errors.Wrap(errors.ErrCodeParse, err, "malformed transform arguments in %q", name)
		}
		op, err := transformOp(name, args)
		if err != nil {
			return Identity, err
		}
		m = m.Mul(op)
		v = strings.TrimSpace(v[closing+1:])
	}
	return m, nil
}

func transformOp(name string, args []float64) (Matrix, error) {
	n := len(args)
	switch name {
	case "matrix":
		if n != 6 {
			return Identity, errParamCount(name, n)
		}
		return Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
	case "translate":
		switch n {
		case 1:
			return Identity.Translate(args[0], 0), nil
		case 2:
			return Identity.Translate(args[0], args[1]), nil
		}
		return Identity, errParamCount(name, n)
	case "scale":
		switch n {
		case 1:
			return Identity.Scale(args[0], args[0]), nil
		case 2:
			return Identity.Scale(args[0], args[1]), nil
		}
		return Identity, errParamCount(name, n)
	case "rotate":
		switch n {
		case 1:
			return Identity.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			return Identity.Translate(args[1], args[2]).
				Rotate(args[0] * math.Pi / 180).
				Translate(-args[1], -args[2]), nil
		}
		return Identity, errParamCount(name, n)
	case "skewX":
		if n != 1 {
			return Identity, errParamCount(name, n)
		}
		return Identity.SkewX(args[0] * math.Pi / 180), nil
	case "skewY":
		if n != 1 {
			return Identity, errParamCount(name, n)
		}
		return Identity.SkewY(args[0] * math.Pi / 180), nil
	}
	return Identity, errors.New(errors.ErrCodeParse, "unknown transform operation %q", name)
}

func errParamCount(name string, n int) error {
	return errors.New(errors.ErrCodeParse, "transform %q: unexpected parameter count %d", name, n)
}

// parseNumberList splits a comma or whitespace separated list of numbers.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

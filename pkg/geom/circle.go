package geom

import (
	"math"
	"math/cmplx"

	"github.com/phoscity/svg2cetz/pkg/errors"
)

// collinearTol bounds how close to collinear the three sample points may be
// before the fit is rejected instead of producing an absurd circle.
const collinearTol = 1e-12

// CircleThrough returns the center and radius of the circle passing through
// three points, using the complex-plane closed form: with the points as
// complex numbers x, y, z and w = (z-x)/(y-x),
//
//	c = (x-y)·(w-|w|²) / (2i·Im(w)) - x
//
// the center is -c and the radius |c + x|. Near-collinear inputs (Im(w)
// close to zero) return a DEGENERATE_GEOMETRY error.
func CircleThrough(p1, p2, p3 Point) (center Point, radius float64, err error) {
	x := complex(p1.X, p1.Y)
	y := complex(p2.X, p2.Y)
	z := complex(p3.X, p3.Y)

	if y == x {
		return Point{}, 0, errors.New(errors.ErrCodeDegenerateGeometry,
			"circle fit: coincident sample points")
	}
	w := (z - x) / (y - x)
	if math.Abs(imag(w)) < collinearTol {
		return Point{}, 0, errors.New(errors.ErrCodeDegenerateGeometry,
			"circle fit: collinear sample points")
	}

	aw := cmplx.Abs(w)
	c := (x-y)*(w-complex(aw*aw, 0))/complex(0, 2*imag(w)) - x

	return Point{X: -real(c), Y: -imag(c)}, cmplx.Abs(c + x), nil
}

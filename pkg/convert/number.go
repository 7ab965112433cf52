package convert

import (
	"math"
	"strconv"

	"github.com/phoscity/svg2cetz/pkg/svg"
)

// Round rounds to the given number of decimal digits using round-half-even.
func Round(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.RoundToEven(v*scale) / scale
}

// roundInt rounds to the nearest integer, half to even.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}

// FormatNumber renders a number the way every emitted literal is rendered:
// without a trailing ".0" when the fractional part is zero, otherwise with
// the shortest exact decimal form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// point renders a coordinate pair as a CeTZ tuple.
func point(x, y float64) string {
	return "(" + FormatNumber(x) + ", " + FormatNumber(y) + ")"
}

// MapPoint projects a user-unit point into the output coordinate system:
// origin at the bottom-left of the selection extent, y growing upward,
// centimeters, rounded to the configured precision.
func (cfg *Config) MapPoint(x, y float64) (float64, float64) {
	return Round(svg.ToDimensional(x-cfg.Extent.Left, "cm"), cfg.Precision),
		Round(svg.ToDimensional(cfg.Extent.Bottom()-y, "cm"), cfg.Precision)
}

// MapLength converts a user-unit length to rounded centimeters.
func (cfg *Config) MapLength(v float64) float64 {
	return Round(svg.ToDimensional(v, "cm"), cfg.Precision)
}

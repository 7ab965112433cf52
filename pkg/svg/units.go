package svg

import (
	"strconv"
	"strings"
)

// User units are CSS pixels at 96 dpi. unitFactors maps a unit name to the
// number of user units per one of that unit.
var unitFactors = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"mm": 96.0 / 25.4,
	"cm": 96.0 / 2.54,
	"in": 96,
}

// ToDimensional converts a value in user units into the given unit.
func ToDimensional(v float64, unit string) float64 {
	f, ok := unitFactors[unit]
	if !ok {
		return v
	}
	return v / f
}

// ToUserUnit converts a value in the given unit into user units.
func ToUserUnit(v float64, unit string) float64 {
	f, ok := unitFactors[unit]
	if !ok {
		return v
	}
	return v * f
}

// ParseLength parses a CSS length such as "3cm", "12pt" or "16" into its
// numeric value and unit. A missing unit yields "px". Percentages are
// returned with unit "%" and left for the caller to resolve.
func ParseLength(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	num, unit := s[:i], strings.TrimSpace(s[i:])
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", err
	}
	if unit == "" {
		unit = "px"
	}
	return v, unit, nil
}

// LengthToUserUnit parses a CSS length and converts it to user units.
// Percentages resolve against ref.
func LengthToUserUnit(s string, ref float64) (float64, error) {
	v, unit, err := ParseLength(s)
	if err != nil {
		return 0, err
	}
	if unit == "%" {
		return v / 100 * ref, nil
	}
	return ToUserUnit(v, unit), nil
}

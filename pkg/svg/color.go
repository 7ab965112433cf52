package svg

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an opaque RGB color. Opacity is carried separately by the style
// cascade (opacity, fill-opacity, stop-opacity).
type Color struct {
	R, G, B uint8
}

// Hex returns the upper-case RRGGBB form used in rgb("...") emissions.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor parses an SVG color value: #rgb, #rrggbb, rgb(r, g, b) with
// integers or percentages, or an SVG 1.1 color keyword.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[4 : len(s)-1])
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{c.R, c.G, c.B}, true
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	switch len(hex) {
	case 3:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(string(hex[i]), 16, 8)
			if err != nil {
				return Color{}, false
			}
			out[i] = uint8(v*16 + v)
		}
		return Color{out[0], out[1], out[2]}, true
	case 6:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return Color{}, false
			}
			out[i] = uint8(v)
		}
		return Color{out[0], out[1], out[2]}, true
	}
	return Color{}, false
}

func parseRGBFunc(args string) (Color, bool) {
	fields := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) != 3 {
		return Color{}, false
	}
	var out [3]uint8
	for i, f := range fields {
		f = strings.TrimSpace(f)
		percent := strings.HasSuffix(f, "%")
		f = strings.TrimSuffix(f, "%")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Color{}, false
		}
		if percent {
			v = v / 100 * 255
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out[i] = uint8(v + 0.5)
	}
	return Color{out[0], out[1], out[2]}, true
}

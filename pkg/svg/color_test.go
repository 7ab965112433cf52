package svg

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
		ok    bool
	}{
		{"#000000", Color{0, 0, 0}, true},
		{"#FF0000", Color{255, 0, 0}, true},
		{"#ff0000", Color{255, 0, 0}, true},
		{"#f00", Color{255, 0, 0}, true},
		{"#abc", Color{0xAA, 0xBB, 0xCC}, true},
		{"rgb(255, 128, 0)", Color{255, 128, 0}, true},
		{"rgb(100%, 0%, 50%)", Color{255, 0, 128}, true},
		{"black", Color{0, 0, 0}, true},
		{"Teal", Color{0, 128, 128}, true},
		{"steelblue", Color{0x46, 0x82, 0xB4}, true},
		{"", Color{}, false},
		{"#12345", Color{}, false},
		{"#gghhii", Color{}, false},
		{"notacolor", Color{}, false},
		{"rgb(1, 2)", Color{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{0, 0, 0}, "000000"},
		{Color{255, 255, 255}, "FFFFFF"},
		{Color{0x66, 0x33, 0x99}, "663399"},
		{Color{1, 2, 3}, "010203"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex() = %q, want %q", got, tt.want)
		}
	}
}

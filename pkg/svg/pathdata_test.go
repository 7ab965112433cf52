package svg

import (
	"testing"
)

func TestParsePathDataBasic(t *testing.T) {
	segs, err := ParsePathData("M 10 20 L 30 40 Z")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}

	want := []Segment{
		{Op: SegMove, X: 10, Y: 20},
		{Op: SegLine, X: 30, Y: 40},
		{Op: SegClose},
	}
	if len(segs) != len(want) {
		t.Fatalf("len(segs) = %d, want %d", len(segs), len(want))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segs[%d] = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestParsePathDataRelative(t *testing.T) {
	segs, err := ParsePathData("m 10 20 l 5 5 h 10 v -10")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}

	want := []Segment{
		{Op: SegMove, X: 10, Y: 20},
		{Op: SegLine, X: 15, Y: 25},
		{Op: SegLine, X: 25, Y: 25},
		{Op: SegLine, X: 25, Y: 15},
	}
	if len(segs) != len(want) {
		t.Fatalf("len(segs) = %d, want %d", len(segs), len(want))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segs[%d] = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestParsePathDataImplicitLineto(t *testing.T) {
	segs, err := ParsePathData("M 0 0 10 10 20 0")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}
	if segs[1].Op != SegLine || segs[2].Op != SegLine {
		t.Errorf("trailing move pairs parsed as %v, %v, want implicit line-tos", segs[1].Op, segs[2].Op)
	}
	// Relative form: each implicit lineto advances from the previous point.
	segs, err = ParsePathData("m 0 0 10 10 10 10")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if segs[2].X != 20 || segs[2].Y != 20 {
		t.Errorf("segs[2] = (%v, %v), want (20, 20)", segs[2].X, segs[2].Y)
	}
}

func TestParsePathDataSmoothCubic(t *testing.T) {
	segs, err := ParsePathData("M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}

	s := segs[2]
	if s.Op != SegCubic {
		t.Fatalf("segs[2].Op = %v, want cubic", s.Op)
	}
	// First control point reflects the previous second control (10, 10)
	// about the current point (10, 0).
	if s.X1 != 10 || s.Y1 != -10 {
		t.Errorf("reflected control = (%v, %v), want (10, -10)", s.X1, s.Y1)
	}
}

func TestParsePathDataSmoothCubicWithoutPredecessor(t *testing.T) {
	segs, err := ParsePathData("M 5 5 S 20 0 20 10")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	s := segs[1]
	// No preceding cubic: the first control coincides with the current point.
	if s.X1 != 5 || s.Y1 != 5 {
		t.Errorf("control = (%v, %v), want (5, 5)", s.X1, s.Y1)
	}
}

func TestParsePathDataQuadratic(t *testing.T) {
	segs, err := ParsePathData("M 0 0 Q 5 10 10 0 T 20 0")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}
	if segs[1].Op != SegQuad || segs[2].Op != SegQuad {
		t.Fatalf("ops = %v, %v, want quadratics", segs[1].Op, segs[2].Op)
	}
	// T reflects the previous control (5, 10) about (10, 0).
	if segs[2].X1 != 15 || segs[2].Y1 != -10 {
		t.Errorf("reflected control = (%v, %v), want (15, -10)", segs[2].X1, segs[2].Y1)
	}
}

func TestParsePathDataArcFlags(t *testing.T) {
	// Inkscape packs arc flags against the following number.
	segs, err := ParsePathData("M 0 0 A 5 5 0 0110 0")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}

	a := segs[1]
	if a.Op != SegArc {
		t.Fatalf("segs[1].Op = %v, want arc", a.Op)
	}
	if a.LargeArc || !a.Sweep {
		t.Errorf("flags = (%v, %v), want (false, true)", a.LargeArc, a.Sweep)
	}
	if a.X1 != 5 || a.Y1 != 5 || a.X != 10 || a.Y != 0 {
		t.Errorf("arc = %+v, want rx=ry=5 ending at (10, 0)", a)
	}
}

func TestParsePathDataScientificNotation(t *testing.T) {
	segs, err := ParsePathData("M 1e2 -2.5e-1 L 3E1 4")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if segs[0].X != 100 || segs[0].Y != -0.25 {
		t.Errorf("segs[0] = (%v, %v), want (100, -0.25)", segs[0].X, segs[0].Y)
	}
	if segs[1].X != 30 || segs[1].Y != 4 {
		t.Errorf("segs[1] = (%v, %v), want (30, 4)", segs[1].X, segs[1].Y)
	}
}

func TestParsePathDataCommaSeparators(t *testing.T) {
	segs, err := ParsePathData("M10,20L30,40")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if len(segs) != 2 || segs[1].X != 30 || segs[1].Y != 40 {
		t.Errorf("segs = %+v, want move then line to (30, 40)", segs)
	}
}

func TestParsePathDataCloseResetsCurrentPoint(t *testing.T) {
	segs, err := ParsePathData("M 10 10 l 5 0 z l 0 5")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	last := segs[len(segs)-1]
	// After z the current point is back at the subpath start.
	if last.X != 10 || last.Y != 15 {
		t.Errorf("post-close lineto = (%v, %v), want (10, 15)", last.X, last.Y)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	for _, d := range []string{
		"M 10",                  // missing y
		"M 10 20 L",             // command without arguments
		"M 0 0 X 1 2",           // unknown command
		"10 20",                 // numbers before any command
		"L 1 2",                 // first command is not a moveto
		"l 1 2 m 3 4",           // relative start is not a moveto either
		"M 0 0 A 1 1 0 2 0 5 5", // invalid arc flag
	} {
		if _, err := ParsePathData(d); err == nil {
			t.Errorf("ParsePathData(%q) error = nil, want parse error", d)
		}
	}
}

func TestParsePathDataEmpty(t *testing.T) {
	segs, err := ParsePathData("   ")
	if err != nil {
		t.Fatalf("ParsePathData() error = %v", err)
	}
	if segs != nil {
		t.Errorf("segs = %+v, want nil", segs)
	}
}

package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	assertNear(t, name+".X", got.X, want.X)
	assertNear(t, name+".Y", got.Y, want.Y)
	assertNear(t, name+".Width", got.Width, want.Width)
	assertNear(t, name+".Height", got.Height, want.Height)
}

func TestSnapMultiples(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{11.999, 0},
		{12, 24}, // half rounds away from zero
		{13, 24},
		{24, 24},
		{35, 24},
		{36, 48},
		{100, 96},
		{-11.999, 0},
		{-12, -24}, // away from zero on the negative side too
		{-13, -24},
		{-100, -96},
	}
	for _, c := range cases {
		got := Snap(c.in)
		if got != c.want {
			t.Errorf("Snap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSnapIdempotent(t *testing.T) {
	for v := -300.0; v <= 300.0; v += 7.3 {
		once := Snap(v)
		twice := Snap(once)
		if once != twice {
			t.Errorf("Snap not idempotent at %v: %v then %v", v, once, twice)
		}
		if math.Mod(once, GridUnit) != 0 {
			t.Errorf("Snap(%v) = %v is not a multiple of %d", v, once, GridUnit)
		}
	}
}

func TestMoveBy(t *testing.T) {
	start := Rect{X: 96, Y: 120, Width: 240, Height: 144}
	got := MoveBy(start, 30, -10)
	assertRect(t, "move", got, Rect{X: 120, Y: 120, Width: 240, Height: 144})
}

func TestMoveByInverseReturnsToSnappedOrigin(t *testing.T) {
	// Snapping is lossy: the round trip lands on the snapped start
	// position, not the unsnapped one.
	start := Rect{X: 100, Y: 100, Width: 240, Height: 144}
	moved := MoveBy(start, 55, 55)
	back := MoveBy(moved, -55, -55)
	assertRect(t, "roundtrip", back, Rect{X: Snap(100), Y: Snap(100), Width: 240, Height: 144})
}

func TestResizeFromCornerSE(t *testing.T) {
	start := Rect{X: 48, Y: 48, Width: 120, Height: 120}
	got := ResizeFromCorner(start, CornerSE, 50, 26)
	// Position untouched for the bottom-right corner.
	assertRect(t, "se", got, Rect{X: 48, Y: 48, Width: 168, Height: 144})
}

func TestResizeFromCornerNW(t *testing.T) {
	start := Rect{X: 96, Y: 96, Width: 240, Height: 240}
	got := ResizeFromCorner(start, CornerNW, 24, 48)
	assertRect(t, "nw", got, Rect{X: 120, Y: 144, Width: 216, Height: 192})
}

func TestResizeFromCornerNE(t *testing.T) {
	start := Rect{X: 96, Y: 96, Width: 240, Height: 240}
	got := ResizeFromCorner(start, CornerNE, 24, 48)
	// x stays, y shifts; width grows, height shrinks.
	assertRect(t, "ne", got, Rect{X: 96, Y: 144, Width: 264, Height: 192})
}

func TestResizeFromCornerSW(t *testing.T) {
	start := Rect{X: 96, Y: 96, Width: 240, Height: 240}
	got := ResizeFromCorner(start, CornerSW, 24, 48)
	assertRect(t, "sw", got, Rect{X: 120, Y: 96, Width: 216, Height: 288})
}

func TestResizeNeverBelowMinimum(t *testing.T) {
	start := Rect{X: 0, Y: 0, Width: 240, Height: 240}
	deltas := []float64{-100, -240, -1000, -1e6}
	for _, c := range Corners {
		for _, d := range deltas {
			got := ResizeFromCorner(start, c, d, d)
			if got.Width < MinSize {
				t.Errorf("corner %s delta %v: width %v below minimum", c, d, got.Width)
			}
			if got.Height < MinSize {
				t.Errorf("corner %s delta %v: height %v below minimum", c, d, got.Height)
			}
		}
	}
}

func TestResizeClampsBeforeSnapping(t *testing.T) {
	// A collapse to sub-minimum size clamps to 60 first, then snaps.
	// Snap(60) rounds up to 72, never back below the minimum.
	start := Rect{X: 0, Y: 0, Width: 240, Height: 240}
	got := ResizeFromCorner(start, CornerSE, -500, -500)
	assertNear(t, "width", got.Width, 72)
	assertNear(t, "height", got.Height, 72)
}

func TestResizeIsAnchoredOnStartGeometry(t *testing.T) {
	// Recomputing from the same start with the same cumulative delta
	// must give the same result every frame.
	start := Rect{X: 48, Y: 48, Width: 120, Height: 120}
	a := ResizeFromCorner(start, CornerSE, 37, 19)
	b := ResizeFromCorner(start, CornerSE, 37, 19)
	assertRect(t, "replay", b, a)
}

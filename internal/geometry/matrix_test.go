package geometry

import (
	"math"
	"testing"
)

func assertMatrix(t *testing.T, name string, got, want Matrix2D) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMultiplyIdentity(t *testing.T) {
	id := Identity()
	m := Matrix2D{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", id.Multiply(m), m)
	assertMatrix(t, "m*id", m.Multiply(id), m)
}

func TestRotateAroundKeepsCenterFixed(t *testing.T) {
	m := RotateAround(90, 50, 50)
	x, y := m.TransformPoint(50, 50)
	assertNear(t, "cx", x, 50)
	assertNear(t, "cy", y, 50)
}

func TestRotateAround90(t *testing.T) {
	// A point to the right of the center moves below it.
	m := RotateAround(90, 0, 0)
	x, y := m.TransformPoint(10, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)
}

func TestInvertUndoesRotation(t *testing.T) {
	m := RotateAround(33, 120, 80)
	inv := m.Invert()
	assertMatrix(t, "m*inv", m.Multiply(inv), Identity())

	px, py := m.TransformPoint(200, 40)
	bx, by := inv.TransformPoint(px, py)
	assertNear(t, "bx", bx, 200)
	assertNear(t, "by", by, 40)
}

func TestTransformRectBoundingBox(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	m := RotateAround(90, 50, 25)
	got := m.TransformRect(r)
	assertRect(t, "rot90 bbox", got, Rect{X: 25, Y: -25, Width: 50, Height: 100})
}

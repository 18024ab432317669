package geometry

import "math"

const (
	// GridUnit is the snap grid spacing. Every position and dimension
	// written during a move or resize gesture is rounded to a multiple
	// of it. Rotation is never snapped.
	GridUnit = 24

	// MinSize is the smallest width or height an element may have.
	// Mutations that would go below it clamp rather than fail.
	MinSize = 60
)

// Snap rounds v to the nearest multiple of GridUnit, half away from
// zero. Idempotent: Snap(Snap(v)) == Snap(v).
func Snap(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}

// ClampSize raises v to MinSize if it is below it.
func ClampSize(v float64) float64 {
	if v < MinSize {
		return MinSize
	}
	return v
}

// MoveBy translates the start-of-gesture rect by the cumulative pointer
// delta and snaps both resulting coordinates. Size is untouched.
func MoveBy(start Rect, dx, dy float64) Rect {
	return Rect{
		X:      Snap(start.X + dx),
		Y:      Snap(start.Y + dy),
		Width:  start.Width,
		Height: start.Height,
	}
}

// ResizeFromCorner resizes the start-of-gesture rect by dragging one
// corner by the cumulative pointer delta. The opposite corner stays
// anchored: left-side corners shift x, top-side corners shift y,
// right/bottom corners only change size.
//
// Dimensions are clamped to MinSize before snapping; snapping first
// could round a clamped value back below the minimum. Positions are
// computed from the un-clamped delta and snapped independently.
func ResizeFromCorner(start Rect, corner Corner, dx, dy float64) Rect {
	x, y := start.X, start.Y
	w, h := start.Width, start.Height

	switch corner {
	case CornerNW:
		x += dx
		y += dy
		w -= dx
		h -= dy
	case CornerNE:
		y += dy
		w += dx
		h -= dy
	case CornerSW:
		x += dx
		w -= dx
		h += dy
	case CornerSE:
		w += dx
		h += dy
	}

	return Rect{
		X:      Snap(x),
		Y:      Snap(y),
		Width:  Snap(ClampSize(w)),
		Height: Snap(ClampSize(h)),
	}
}

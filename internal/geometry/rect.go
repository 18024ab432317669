package geometry

// Point is a position in board-local pixel units.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle: top-left corner plus size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Corner identifies one of the four resize handles of an element.
type Corner string

const (
	CornerNW Corner = "nw"
	CornerNE Corner = "ne"
	CornerSW Corner = "sw"
	CornerSE Corner = "se"
)

// Corners lists all four corners in a fixed order.
var Corners = []Corner{CornerNW, CornerNE, CornerSW, CornerSE}

// Valid reports whether c is one of the four known corners.
func (c Corner) Valid() bool {
	switch c {
	case CornerNW, CornerNE, CornerSW, CornerSE:
		return true
	}
	return false
}

// Corner returns the position of corner c on the rect.
func (r Rect) Corner(c Corner) Point {
	switch c {
	case CornerNW:
		return Point{r.X, r.Y}
	case CornerNE:
		return Point{r.X + r.Width, r.Y}
	case CornerSW:
		return Point{r.X, r.Y + r.Height}
	default:
		return Point{r.X + r.Width, r.Y + r.Height}
	}
}

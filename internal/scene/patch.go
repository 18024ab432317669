package scene

import (
	"github.com/slateboard/slateboard/internal/geometry"
)

// Patch is a partial-attribute update for exactly one element. Nil
// fields are left untouched. Fields that do not apply to the target's
// variant are ignored rather than failing: a swatch receiving a Text
// change keeps its state for that field.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"zIndex,omitempty"`

	// Text variant
	Text       *string     `json:"text,omitempty"`
	FontFamily *FontFamily `json:"fontFamily,omitempty"`
	FontSize   *float64    `json:"fontSize,omitempty"`

	// Text and swatch variants
	Fill *string `json:"fill,omitempty"`

	// Image variant
	Source *string `json:"source,omitempty"`
}

// GeometryPatch builds a patch writing a full rect, the shape the
// interaction controller emits on every pointer-move frame.
func GeometryPatch(r geometry.Rect) Patch {
	return Patch{X: &r.X, Y: &r.Y, Width: &r.Width, Height: &r.Height}
}

// apply writes the patch into the element. Width and height clamp
// defensively even though gesture callers pre-clamp.
func apply(el Element, p Patch) {
	a := el.Common()
	if p.X != nil {
		a.X = *p.X
	}
	if p.Y != nil {
		a.Y = *p.Y
	}
	if p.Width != nil {
		a.Width = geometry.ClampSize(*p.Width)
	}
	if p.Height != nil {
		a.Height = geometry.ClampSize(*p.Height)
	}
	if p.Rotation != nil {
		a.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		a.ZIndex = *p.ZIndex
	}

	switch e := el.(type) {
	case *ImageElement:
		if p.Source != nil {
			e.Source = *p.Source
		}
	case *TextElement:
		if p.Text != nil {
			e.Text = *p.Text
		}
		if p.FontFamily != nil && p.FontFamily.Valid() {
			e.FontFamily = *p.FontFamily
		}
		if p.FontSize != nil {
			e.FontSize = *p.FontSize
		}
		if p.Fill != nil {
			e.Fill = *p.Fill
		}
	case *SwatchElement:
		if p.Fill != nil {
			e.Fill = *p.Fill
		}
	}
}

package scene

import (
	"github.com/slateboard/slateboard/internal/geometry"
)

// Kind discriminates the three element variants.
type Kind string

const (
	KindImage  Kind = "image"
	KindText   Kind = "text"
	KindSwatch Kind = "swatch"
)

// Valid reports whether k names a known element kind.
func (k Kind) Valid() bool {
	switch k {
	case KindImage, KindText, KindSwatch:
		return true
	}
	return false
}

// FontFamily is one of the fixed set of families a text element may use.
type FontFamily string

const (
	FontSans      FontFamily = "sans"
	FontMono      FontFamily = "mono"
	FontSmallCaps FontFamily = "smallcaps"
	FontItalic    FontFamily = "italic"
)

// DefaultFontFamily is applied when a document omits the family.
const DefaultFontFamily = FontSans

// FontFamilies lists the selectable families in presentation order.
var FontFamilies = []FontFamily{FontSans, FontMono, FontSmallCaps, FontItalic}

// Valid reports whether f is one of the known families.
func (f FontFamily) Valid() bool {
	switch f {
	case FontSans, FontMono, FontSmallCaps, FontItalic:
		return true
	}
	return false
}

// Default attribute values for freshly added elements.
const (
	DefaultX        = 120.0
	DefaultY        = 120.0
	DefaultWidth    = 240.0
	DefaultHeight   = 144.0
	DefaultFontSize = 18.0
	DefaultFill     = "#1f2933"
	DefaultSwatch   = "#f59e0b"

	// DuplicateOffset is added to both axes of a duplicated element.
	DuplicateOffset = 24.0
)

// Attrs holds the attributes common to every element variant.
type Attrs struct {
	ID       string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64 // degrees, about the element's own center
	ZIndex   int     // paint order only; not necessarily unique
}

// Common returns the shared attributes; embedding Attrs gives each
// variant this accessor for free.
func (a *Attrs) Common() *Attrs {
	return a
}

// Bounds returns the element's unrotated rect.
func (a *Attrs) Bounds() geometry.Rect {
	return geometry.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// SetBounds writes a rect back into position and size, clamping the
// dimensions to the minimum.
func (a *Attrs) SetBounds(r geometry.Rect) {
	a.X = r.X
	a.Y = r.Y
	a.Width = geometry.ClampSize(r.Width)
	a.Height = geometry.ClampSize(r.Height)
}

// Element is the tagged union over the three variants. The concrete
// types are *ImageElement, *TextElement and *SwatchElement; every
// consumption site switches exhaustively over them.
type Element interface {
	Kind() Kind
	Common() *Attrs
	Clone() Element
}

// ImageElement embeds a self-contained image payload (a data URI, not
// a filesystem path), so a serialized scene has no external file
// dependency.
type ImageElement struct {
	Attrs
	Source string
}

func (e *ImageElement) Kind() Kind { return KindImage }

func (e *ImageElement) Clone() Element {
	c := *e
	return &c
}

// TextElement is a plain-text label.
type TextElement struct {
	Attrs
	Text       string
	FontFamily FontFamily
	FontSize   float64
	Fill       string
}

func (e *TextElement) Kind() Kind { return KindText }

func (e *TextElement) Clone() Element {
	c := *e
	return &c
}

// SwatchElement is a solid color block.
type SwatchElement struct {
	Attrs
	Fill string
}

func (e *SwatchElement) Kind() Kind { return KindSwatch }

func (e *SwatchElement) Clone() Element {
	c := *e
	return &c
}

func defaultAttrs() Attrs {
	return Attrs{
		X:      DefaultX,
		Y:      DefaultY,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// NewImage builds an image element with default geometry. The source
// is the opaque embeddable payload produced by the ingestion boundary.
func NewImage(source string) *ImageElement {
	return &ImageElement{Attrs: defaultAttrs(), Source: source}
}

// NewText builds a text element with default styling.
func NewText(text string) *TextElement {
	return &TextElement{
		Attrs:      defaultAttrs(),
		Text:       text,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		Fill:       DefaultFill,
	}
}

// NewSwatch builds a solid color swatch.
func NewSwatch(fill string) *SwatchElement {
	if fill == "" {
		fill = DefaultSwatch
	}
	return &SwatchElement{Attrs: defaultAttrs(), Fill: fill}
}

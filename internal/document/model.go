package document

// Theme is the canvas background style. Purely a rendering concern
// with no effect on geometry.
type Theme string

const (
	ThemeGrid  Theme = "grid"
	ThemeDots  Theme = "dots"
	ThemePaper Theme = "paper"
	ThemePlain Theme = "plain"
)

// DefaultTheme is applied when a document omits the theme.
const DefaultTheme = ThemeGrid

// Valid reports whether t names a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeGrid, ThemeDots, ThemePaper, ThemePlain:
		return true
	}
	return false
}

// Document is the persisted project shape. There is no versioning
// field: any structurally valid document is treated as current-version
// and missing optional fields get defaults on load.
type Document struct {
	Elements    []ElementRecord `json:"elements"`
	CanvasTheme Theme           `json:"canvasTheme"`
}

// ElementRecord is one element, flattened and tagged by kind.
// Variant-specific fields are omitted when empty for the other kinds.
type ElementRecord struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`

	// Image variant: the self-contained embedded payload.
	Source string `json:"source,omitempty"`

	// Text variant. FontSize is a pointer so an absent field (gets the
	// default on load) stays distinguishable from a stored zero or
	// negative size, which round-trips as-is.
	Text       string   `json:"text,omitempty"`
	FontFamily string   `json:"fontFamily,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`

	// Text and swatch variants.
	Fill string `json:"fill,omitempty"`
}

// NewEmptyDocument is the snapshot seeded into a freshly created project.
func NewEmptyDocument() Document {
	return Document{
		Elements:    []ElementRecord{},
		CanvasTheme: DefaultTheme,
	}
}

package document

// tinyPNG is a 1x1 transparent PNG, base64-encoded the same way the
// ingestion boundary embeds uploaded images.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func fontSize(v float64) *float64 {
	return &v
}

// NewSampleDocument builds a small demo scene with one element of each
// kind. Used by the wasm playground and as seed data in tests.
func NewSampleDocument() Document {
	return Document{
		CanvasTheme: ThemeGrid,
		Elements: []ElementRecord{
			{
				ID:     "el_sample_swatch",
				Kind:   "swatch",
				X:      96,
				Y:      96,
				Width:  264,
				Height: 192,
				ZIndex: 1,
				Fill:   "#f59e0b",
			},
			{
				ID:         "el_sample_text",
				Kind:       "text",
				X:          144,
				Y:          144,
				Width:      240,
				Height:     72,
				Rotation:   -4,
				ZIndex:     2,
				Text:       "Welcome to Slateboard",
				FontFamily: "sans",
				FontSize:   fontSize(22),
				Fill:       "#1f2933",
			},
			{
				ID:     "el_sample_image",
				Kind:   "image",
				X:      432,
				Y:      120,
				Width:  168,
				Height: 168,
				ZIndex: 3,
				Source: tinyPNG,
			},
		},
	}
}

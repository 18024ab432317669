// Package document is the persistence codec: it serializes the scene
// plus the global display configuration to a JSON document and back.
// The round-trip is lossless field for field, including identifiers
// and zIndex values.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slateboard/slateboard/internal/geometry"
	"github.com/slateboard/slateboard/internal/scene"
)

// ErrMalformedProject marks input that cannot be loaded. A failed load
// is all-or-nothing: callers keep their prior scene untouched.
var ErrMalformedProject = errors.New("malformed project document")

// Serialize produces the project document for the scene and theme.
// Elements are written in insertion order.
func Serialize(s *scene.Scene, theme Theme) ([]byte, error) {
	doc := Snapshot(s, theme)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return data, nil
}

// Snapshot builds the document value without encoding it. The session
// transport syncs this shape to clients directly.
func Snapshot(s *scene.Scene, theme Theme) Document {
	elements := s.Elements()
	records := make([]ElementRecord, 0, len(elements))
	for _, el := range elements {
		records = append(records, toRecord(el))
	}
	if !theme.Valid() {
		theme = DefaultTheme
	}
	return Document{Elements: records, CanvasTheme: theme}
}

// Deserialize parses a project document and reconstructs the scene and
// theme. Returns ErrMalformedProject if the input is not a JSON object
// or an element cannot be given a variant; missing optional fields get
// defensive defaults instead.
func Deserialize(data []byte) (*scene.Scene, Theme, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, "", fmt.Errorf("top-level value is not an object: %w", ErrMalformedProject)
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, "", fmt.Errorf("parse project: %w", ErrMalformedProject)
	}

	return FromDocument(doc)
}

// FromDocument reconstructs a scene from an already-parsed document.
// Identifiers are kept exactly as given, never regenerated.
func FromDocument(doc Document) (*scene.Scene, Theme, error) {
	elements := make([]scene.Element, 0, len(doc.Elements))
	for i, rec := range doc.Elements {
		el, err := fromRecord(rec)
		if err != nil {
			return nil, "", fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, el)
	}

	theme := doc.CanvasTheme
	if !theme.Valid() {
		theme = DefaultTheme
	}

	return scene.Restore(elements), theme, nil
}

func toRecord(el scene.Element) ElementRecord {
	a := el.Common()
	rec := ElementRecord{
		ID:       a.ID,
		Kind:     string(el.Kind()),
		X:        a.X,
		Y:        a.Y,
		Width:    a.Width,
		Height:   a.Height,
		Rotation: a.Rotation,
		ZIndex:   a.ZIndex,
	}

	switch e := el.(type) {
	case *scene.ImageElement:
		rec.Source = e.Source
	case *scene.TextElement:
		rec.Text = e.Text
		rec.FontFamily = string(e.FontFamily)
		size := e.FontSize
		rec.FontSize = &size
		rec.Fill = e.Fill
	case *scene.SwatchElement:
		rec.Fill = e.Fill
	}

	return rec
}

func fromRecord(rec ElementRecord) (scene.Element, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("missing element id: %w", ErrMalformedProject)
	}

	attrs := scene.Attrs{
		ID:       rec.ID,
		X:        rec.X,
		Y:        rec.Y,
		Width:    geometry.ClampSize(rec.Width),
		Height:   geometry.ClampSize(rec.Height),
		Rotation: rec.Rotation,
		ZIndex:   rec.ZIndex,
	}

	switch scene.Kind(rec.Kind) {
	case scene.KindImage:
		return &scene.ImageElement{Attrs: attrs, Source: rec.Source}, nil
	case scene.KindText:
		family := scene.FontFamily(rec.FontFamily)
		if !family.Valid() {
			family = scene.DefaultFontFamily
		}
		size := scene.DefaultFontSize
		if rec.FontSize != nil {
			size = *rec.FontSize
		}
		fill := rec.Fill
		if fill == "" {
			fill = scene.DefaultFill
		}
		return &scene.TextElement{
			Attrs:      attrs,
			Text:       rec.Text,
			FontFamily: family,
			FontSize:   size,
			Fill:       fill,
		}, nil
	case scene.KindSwatch:
		fill := rec.Fill
		if fill == "" {
			fill = scene.DefaultSwatch
		}
		return &scene.SwatchElement{Attrs: attrs, Fill: fill}, nil
	default:
		return nil, fmt.Errorf("unknown element kind %q: %w", rec.Kind, ErrMalformedProject)
	}
}

package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/scene"
)

func sampleScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, _, err := document.FromDocument(document.NewSampleDocument())
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	return s
}

func TestSceneRendersAllThemes(t *testing.T) {
	s := sampleScene(t)
	themes := []document.Theme{
		document.ThemeGrid, document.ThemeDots, document.ThemePaper, document.ThemePlain,
	}
	for _, theme := range themes {
		img, err := Scene(s, Options{Width: 640, Height: 360, Theme: theme})
		if err != nil {
			t.Fatalf("theme %s: %v", theme, err)
		}
		b := img.Bounds()
		if b.Dx() != 640 || b.Dy() != 360 {
			t.Errorf("theme %s: size = %dx%d, want 640x360", theme, b.Dx(), b.Dy())
		}
	}
}

func TestPNGOutputDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, sampleScene(t), Options{Width: 320, Height: 180, Theme: document.ThemePlain}); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 320 {
		t.Errorf("width = %d, want 320", decoded.Bounds().Dx())
	}
}

func TestSceneRejectsInvalidSize(t *testing.T) {
	if _, err := Scene(scene.New(), Options{Width: 0, Height: 100}); err == nil {
		t.Error("zero width accepted")
	}
}

func TestRotatedElementRenders(t *testing.T) {
	s := scene.New()
	id := s.Add(scene.NewSwatch("#ff00ff"))
	rot := 37.0
	s.Patch(id, scene.Patch{Rotation: &rot})

	if _, err := Scene(s, Options{Width: 400, Height: 300, Theme: document.ThemePlain}); err != nil {
		t.Fatalf("Scene: %v", err)
	}
}

func TestContentBounds(t *testing.T) {
	if b := ContentBounds(scene.New()); !b.IsEmpty() {
		t.Errorf("empty scene bounds = %+v, want empty", b)
	}

	s := scene.New()
	a := s.Add(scene.NewSwatch(""))
	b := s.Add(scene.NewSwatch(""))
	patchRect(t, s, a, 0, 0, 120, 96)
	patchRect(t, s, b, 480, 240, 120, 96)

	got := ContentBounds(s)
	want := [4]float64{0, 0, 600, 336}
	if got.X != want[0] || got.Y != want[1] || got.Width != want[2] || got.Height != want[3] {
		t.Errorf("bounds = %+v, want %v", got, want)
	}
}

func TestContentBoundsIncludesRotation(t *testing.T) {
	s := scene.New()
	id := s.Add(scene.NewSwatch(""))
	patchRect(t, s, id, 96, 48, 240, 144)
	rot := 90.0
	s.Patch(id, scene.Patch{Rotation: &rot})

	// A 240x144 rect rotated a quarter turn about its center (216,120)
	// covers (144,0)-(288,240).
	got := ContentBounds(s)
	const eps = 1e-9
	if got.X-144 > eps || got.X-144 < -eps ||
		got.Y-0 > eps || got.Y-0 < -eps ||
		got.Width-144 > eps || got.Width-144 < -eps ||
		got.Height-240 > eps || got.Height-240 < -eps {
		t.Errorf("bounds = %+v, want {144 0 144 240}", got)
	}
}

func patchRect(t *testing.T, s *scene.Scene, id string, x, y, w, h float64) {
	t.Helper()
	s.Patch(id, scene.Patch{X: &x, Y: &y, Width: &w, Height: &h})
}

func TestBrokenImagePayloadFailsExport(t *testing.T) {
	s := scene.New()
	s.Add(scene.NewImage("data:image/png;base64,bm90IGEgcG5n"))
	if _, err := Scene(s, Options{Width: 200, Height: 200, Theme: document.ThemePlain}); err == nil {
		t.Error("broken image payload rendered without error")
	}
}

package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http/httptest"
	"testing"

	"github.com/slateboard/slateboard/internal/document"
)

func postImage(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/export/image", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.Image(rec, req)
	return rec
}

func TestImageRendersInlineDocument(t *testing.T) {
	h := NewHandler(nil)
	doc := document.NewSampleDocument()

	rec := postImage(t, h, imageRequest{Document: &doc, Width: 640, Height: 360})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 360 {
		t.Errorf("image size = %v, want 640x360", img.Bounds())
	}
}

func TestImageRejectsMalformedDocument(t *testing.T) {
	h := NewHandler(nil)
	doc := document.Document{
		Elements: []document.ElementRecord{{ID: "el_x", Kind: "sticker"}},
	}

	rec := postImage(t, h, imageRequest{Document: &doc})
	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImageRequiresSource(t *testing.T) {
	h := NewHandler(nil)

	rec := postImage(t, h, imageRequest{})
	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestImageAutoSizesToContent(t *testing.T) {
	h := NewHandler(nil)

	// Element past the default canvas edge: omitted dimensions grow to
	// the content extent plus a grid unit of margin.
	doc := document.Document{
		CanvasTheme: document.ThemePlain,
		Elements: []document.ElementRecord{
			{ID: "el_far", Kind: "swatch", X: 1920, Y: 960, Width: 120, Height: 96, Fill: "#123456"},
		},
	}
	rec := postImage(t, h, imageRequest{Document: &doc})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 2064 || img.Bounds().Dy() != 1080 {
		t.Errorf("image size = %v, want 2064x1080", img.Bounds())
	}

	// An empty document keeps the default canvas.
	empty := document.NewEmptyDocument()
	rec = postImage(t, h, imageRequest{Document: &empty})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	img, err = png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 1280 || img.Bounds().Dy() != 720 {
		t.Errorf("empty document size = %v, want 1280x720", img.Bounds())
	}
}

func TestImageThemeOverride(t *testing.T) {
	h := NewHandler(nil)
	doc := document.NewEmptyDocument()

	rec := postImage(t, h, imageRequest{Document: &doc, Width: 48, Height: 48, Theme: document.ThemePlain})
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

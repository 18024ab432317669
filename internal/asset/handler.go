package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slateboard/slateboard/internal/typeid"
)

// IngestResponse is returned from the upload endpoint. The source is
// the embeddable payload to pass to an image element add.
type IngestResponse struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
}

// Handler serves the image ingestion endpoint.
type Handler struct {
	maxBytes int64
}

// NewHandler creates an asset handler that rejects uploads over
// maxBytes.
func NewHandler(maxBytes int64) *Handler {
	return &Handler{maxBytes: maxBytes}
}

// Ingest handles POST /assets/ingest (multipart form with "file"
// field). The file is converted into a self-contained payload; nothing
// is written to disk.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/png") && !strings.HasPrefix(contentType, "image/jpeg") {
		http.Error(w, "only PNG and JPEG images are supported", http.StatusBadRequest)
		return
	}

	source, width, height, err := Ingest(file)
	if err != nil {
		http.Error(w, "invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := IngestResponse{
		ID:     typeid.NewAssetID(),
		Source: source,
		Width:  width,
		Height: height,
		Name:   header.Filename,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encode ingest response", "error", err)
	}
}

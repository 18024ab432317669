// Package export renders project documents to PNG over HTTP.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/slateboard/slateboard/internal/auth"
	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/editor"
	"github.com/slateboard/slateboard/internal/geometry"
	"github.com/slateboard/slateboard/internal/project"
	"github.com/slateboard/slateboard/internal/render"
	"github.com/slateboard/slateboard/internal/typeid"
)

type Handler struct {
	projects *project.Service
}

func NewHandler(projects *project.Service) *Handler {
	return &Handler{projects: projects}
}

type imageRequest struct {
	ProjectID string             `json:"projectId,omitempty"`
	Document  *document.Document `json:"document,omitempty"`
	Width     int                `json:"width,omitempty"`
	Height    int                `json:"height,omitempty"`
	Theme     document.Theme     `json:"theme,omitempty"`
}

// Image renders a document to PNG. The document comes either inline in
// the request or from the latest snapshot of a project the caller owns.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, ok := h.resolveDocument(w, r, req)
	if !ok {
		return
	}

	sc, theme, err := document.FromDocument(doc)
	if err != nil {
		if errors.Is(err, document.ErrMalformedProject) {
			writeError(w, http.StatusBadRequest, "malformed project document")
			return
		}
		slog.Error("decode document for export", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if req.Theme.Valid() {
		theme = req.Theme
	}

	width, height := req.Width, req.Height
	if width <= 0 || height <= 0 {
		// Omitted dimensions size to the content extent (rotation
		// included), never below the default canvas.
		extent := render.ContentBounds(sc)
		if width <= 0 {
			width = autoEdge(extent.X+extent.Width, editor.DefaultCanvasWidth)
		}
		if height <= 0 {
			height = autoEdge(extent.Y+extent.Height, editor.DefaultCanvasHeight)
		}
	}

	var buf bytes.Buffer
	err = render.PNG(&buf, sc, render.Options{Width: width, Height: height, Theme: theme})
	if err != nil {
		slog.Error("render export", "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", `attachment; filename="`+typeid.NewExportID()+`.png"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *Handler) resolveDocument(w http.ResponseWriter, r *http.Request, req imageRequest) (document.Document, bool) {
	if req.Document != nil {
		return *req.Document, true
	}
	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "projectId or document is required")
		return document.Document{}, false
	}

	userID := auth.UserIDFromContext(r.Context())
	raw, err := h.projects.GetLatestSnapshot(r.Context(), req.ProjectID, userID)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			writeError(w, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrForbidden):
			writeError(w, http.StatusForbidden, "forbidden")
		default:
			slog.Error("load snapshot for export", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return document.Document{}, false
	}

	var doc document.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Error("decode snapshot for export", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return document.Document{}, false
	}
	return doc, true
}

// autoEdge pads a content edge by one grid unit and floors it at the
// default canvas dimension.
func autoEdge(edge float64, fallback int) int {
	needed := int(math.Ceil(edge)) + geometry.GridUnit
	if needed < fallback {
		return fallback
	}
	return needed
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

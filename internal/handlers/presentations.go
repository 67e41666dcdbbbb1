// Package handlers implements the HTTP surface of the presentation
// service: generate, fetch, download, and the theme listing used by the
// front-end picker.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"deckgen/internal/deck"
	"deckgen/internal/outline"
	"deckgen/internal/store"
	"deckgen/internal/theme"
)

// Presentations bundles the handler dependencies: the outline generator,
// the outline store, and the deck renderer.
type Presentations struct {
	generator *outline.Generator
	store     store.Store
	renderer  *deck.Renderer
}

// NewPresentations creates the presentation handler group.
func NewPresentations(g *outline.Generator, st store.Store, r *deck.Renderer) *Presentations {
	return &Presentations{generator: g, store: st, renderer: r}
}

// generateRequest is the POST /generate body.
type generateRequest struct {
	Text    string          `json:"text"`
	Options outline.Options `json:"options"`
}

// Generate creates a presentation outline from free-form text.
// Responds 201 with the stored outline, 400 when text is missing, and
// 500 when the model call or parse fails.
func (h *Presentations) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	p, err := h.generator.Generate(r.Context(), req.Text, req.Options)
	if err != nil {
		slog.Error("presentation generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate presentation")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Fetch returns a stored outline by id, or 404 for ids the store does
// not know.
func (h *Presentations) Fetch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	if err != nil {
		slog.Error("presentation fetch failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load presentation")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Download renders a stored outline to a .pptx file and returns it as an
// attachment. 404 for unknown ids, 500 when rendering fails.
func (h *Presentations) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}
	if err != nil {
		slog.Error("presentation fetch failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load presentation")
		return
	}

	blob, err := h.renderer.Render(p)
	if err != nil {
		slog.Error("deck render failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render presentation file")
		return
	}

	w.Header().Set("Content-Type", deck.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "presentation-"+id+".pptx"))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(blob)))
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// Themes lists the available theme ids for the front-end theme picker.
func (h *Presentations) Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"themes": theme.Names()})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes the uniform error payload every failure surfaces as.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Package router sets up the HTTP routes and middleware chain for the
// presentation service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckgen/internal/handlers"
	"deckgen/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. The rate limiter only guards /generate, the one
// endpoint that spends money on model calls.
func New(presentations *handlers.Presentations, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Theme listing for the front-end picker.
	r.Get("/themes", presentations.Themes)

	// Outline generation and retrieval.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/generate", presentations.Generate)
	})
	r.Get("/{id}", presentations.Fetch)
	r.Get("/{id}/download", presentations.Download)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

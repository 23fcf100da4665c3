package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scenario routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/scenario", func(r chi.Router) {
		r.Post("/evaluate", h.HandleEvaluate)
		r.Get("/presets", h.HandleGetPresets)
	})
}

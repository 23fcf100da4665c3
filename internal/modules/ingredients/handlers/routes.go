package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all ingredient routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/ingredients", func(r chi.Router) {
		r.Get("/", h.HandleListIngredients)
		r.Get("/usage", h.HandleGetUsage)
	})
}

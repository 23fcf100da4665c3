package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all menu routes
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/menu", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/refresh", h.Refresh)
	})
}

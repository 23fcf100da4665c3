package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all staffing routes
func (h *StaffingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/staffing", func(r chi.Router) {
		r.Get("/assignment", h.Assignment)
		r.Get("/config", h.Config)
	})
}

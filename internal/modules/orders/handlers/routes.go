package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all order forecast routes
func (h *OrdersHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/forecast", func(r chi.Router) {
		r.Get("/orders", h.Forecast)
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/restodash/restodash/internal/modules/orders"
	"github.com/rs/zerolog"
)

// OrdersHandler handles order forecast HTTP requests
type OrdersHandler struct {
	service *orders.Service
	log     zerolog.Logger
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(service *orders.Service, log zerolog.Logger) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		log:     log.With().Str("handler", "orders").Logger(),
	}
}

// Forecast returns the order forecast series for a timeframe.
// GET /api/forecast/orders?timeframe=hourly|daily|weekly
func (h *OrdersHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")

	series, err := h.service.Forecast(timeframe)
	if err != nil {
		if errors.Is(err, orders.ErrUnknownTimeframe) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Str("timeframe", timeframe).Msg("Failed to build order forecast")
		h.writeError(w, http.StatusBadGateway, "failed to build order forecast")
		return
	}

	h.writeJSON(w, series)
}

func (h *OrdersHandler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *OrdersHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

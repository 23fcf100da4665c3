// Package handlers provides HTTP handlers for chart scale computation.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restodash/restodash/internal/modules/charts"
	"github.com/rs/zerolog"
)

// Handler handles chart scale HTTP requests
type Handler struct {
	service *charts.Service
	log     zerolog.Logger
}

// NewHandler creates a new charts handler
func NewHandler(service *charts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "charts").Logger(),
	}
}

// scaleRequest is the body of POST /api/charts/scale.
// Kind selects the key set: "order" and "ingredient" use fixed key lists,
// anything else uses the explicit Keys field.
type scaleRequest struct {
	Data      []charts.DataPoint `json:"data"`
	Keys      []string           `json:"keys"`
	Kind      string             `json:"kind"`
	Timeframe string             `json:"timeframe"`
}

// HandleComputeScale computes a Y-axis scale for the posted series
func (h *Handler) HandleComputeScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var scale charts.ScaleConfig
	switch req.Kind {
	case "order":
		scale = h.service.OrderScale(req.Data, req.Timeframe)
	case "ingredient":
		scale = h.service.IngredientScale(req.Data)
	default:
		if len(req.Keys) == 0 {
			h.writeError(w, http.StatusBadRequest, "Missing keys for custom scale")
			return
		}
		scale = h.service.Scale(req.Data, req.Keys)
	}

	h.writeJSON(w, http.StatusOK, scale)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

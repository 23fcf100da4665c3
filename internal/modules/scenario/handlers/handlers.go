// Package handlers provides HTTP handlers for the what-if simulator.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restodash/restodash/internal/modules/scenario"
	"github.com/rs/zerolog"
)

// Handler handles scenario HTTP requests
type Handler struct {
	service *scenario.Service
	recalc  *scenario.Recalculator
	log     zerolog.Logger
}

// NewHandler creates a new scenario handler. recalc debounces the event
// emission behind bursts of evaluate requests.
func NewHandler(service *scenario.Service, recalc *scenario.Recalculator, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		recalc:  recalc,
		log:     log.With().Str("handler", "scenario").Logger(),
	}
}

// HandleEvaluate evaluates a scenario and returns the projected result.
// The response is computed synchronously; the broadcast to event stream
// subscribers is debounced so slider-edit bursts emit once.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var params scenario.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := h.service.Evaluate(params)

	if h.recalc != nil {
		h.recalc.Schedule(params)
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetPresets returns the canned scenarios and selectable conditions
func (h *Handler) HandleGetPresets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"presets": scenario.Presets,
		"events":  scenario.Events,
		"weather": scenario.Weather,
	})
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

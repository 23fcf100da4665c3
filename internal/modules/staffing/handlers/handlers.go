package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restodash/restodash/internal/modules/staffing"
	"github.com/rs/zerolog"
)

// StaffingHandler handles staffing HTTP requests
type StaffingHandler struct {
	service *staffing.Service
	log     zerolog.Logger
}

// NewStaffingHandler creates a new staffing handler
func NewStaffingHandler(service *staffing.Service, log zerolog.Logger) *StaffingHandler {
	return &StaffingHandler{
		service: service,
		log:     log.With().Str("handler", "staffing").Logger(),
	}
}

// Assignment returns the planned staff assignment for the next business day.
// GET /api/staffing/assignment
func (h *StaffingHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.service.Assignment()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch staff assignment")
		h.writeError(w, http.StatusBadGateway, "failed to fetch staff assignment")
		return
	}

	h.writeJSON(w, assignment)
}

// Config returns the planner's staffing configuration.
// GET /api/staffing/config
func (h *StaffingHandler) Config(w http.ResponseWriter, r *http.Request) {
	config, err := h.service.Config()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch staffing config")
		h.writeError(w, http.StatusBadGateway, "failed to fetch staffing config")
		return
	}

	h.writeJSON(w, config)
}

func (h *StaffingHandler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *StaffingHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/restodash/restodash/internal/modules/menu"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *menu.Service
	log     zerolog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *menu.Service, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log.With().Str("handler", "menu").Logger(),
	}
}

// List returns the aggregated menu, optionally sorted.
// GET /api/menu/?sort=forecast_desc|forecast_asc|name_asc|name_desc
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = menu.SortForecastDesc
	}

	entries, err := h.service.Entries(sortBy)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build menu")
		h.writeError(w, http.StatusBadGateway, "failed to build menu")
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"entries": entries,
		"sort":    sortBy,
	})
}

// Get returns the detail view for a single menu entry.
// GET /api/menu/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Entry(id)
	if err != nil {
		h.log.Warn().Err(err).Str("id", id).Msg("Menu entry lookup failed")
		h.writeError(w, http.StatusNotFound, "menu entry not found")
		return
	}

	h.writeJSON(w, detail)
}

// Refresh forces a menu rebuild from fresh predictions.
// POST /api/menu/refresh
func (h *MenuHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(); err != nil {
		h.log.Error().Err(err).Msg("Manual menu refresh failed")
		h.writeError(w, http.StatusBadGateway, "failed to refresh menu")
		return
	}

	h.writeJSON(w, map[string]string{"status": "refreshed"})
}

func (h *MenuHandler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *MenuHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

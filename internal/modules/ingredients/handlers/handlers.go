// Package handlers provides HTTP handlers for the ingredients view.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/restodash/restodash/internal/modules/charts"
	"github.com/restodash/restodash/internal/modules/ingredients"
	"github.com/rs/zerolog"
)

// Handler handles ingredient HTTP requests
type Handler struct {
	service *ingredients.Service
	charts  *charts.Service
	log     zerolog.Logger
}

// NewHandler creates a new ingredients handler
func NewHandler(service *ingredients.Service, chartsService *charts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		charts:  chartsService,
		log:     log.With().Str("handler", "ingredients").Logger(),
	}
}

// HandleListIngredients returns the ingredients table
func (h *Handler) HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListRows()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build ingredient rows")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ingredients": rows,
	})
}

// HandleGetUsage returns the usage series and chart scale for one ingredient.
// Query params: name (required), timeframe (daily|weekly, default daily).
func (h *Handler) HandleGetUsage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeError(w, http.StatusBadRequest, "Missing name parameter")
		return
	}

	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "daily"
	}

	var series *ingredients.UsageSeries
	var err error

	switch timeframe {
	case "daily":
		series, err = h.service.DailyUsage(name)
	case "weekly":
		series, err = h.service.WeeklyUsage(name)
	default:
		h.writeError(w, http.StatusBadRequest, "Invalid timeframe: must be daily or weekly")
		return
	}

	if err != nil {
		h.log.Error().Err(err).Str("ingredient", name).Msg("Failed to build usage series")
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"series": series,
		"scale":  h.charts.IngredientScale(usageDataPoints(series)),
	})
}

// usageDataPoints flattens a usage series into chart data points for scale
// computation.
func usageDataPoints(series *ingredients.UsageSeries) []charts.DataPoint {
	points := make([]charts.DataPoint, 0, len(series.Points))
	for _, p := range series.Points {
		dp := charts.DataPoint{}
		if p.SolidOrange != nil {
			dp["solidOrange"] = *p.SolidOrange
		}
		if p.DottedOrange != nil {
			dp["dottedOrange"] = *p.DottedOrange
		}
		points = append(points, dp)
	}
	return points
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

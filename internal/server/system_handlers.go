package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/restodash/restodash/internal/clients/forecast"
	"github.com/restodash/restodash/internal/database"
	"github.com/restodash/restodash/internal/events"
	"github.com/restodash/restodash/internal/modules/orders"
	"github.com/restodash/restodash/internal/modules/staffing"
	"github.com/restodash/restodash/internal/scheduler"
	"github.com/restodash/restodash/internal/utils"
)

// ingredientPredictor is the slice of the forecast client the summary needs.
type ingredientPredictor interface {
	PredictIngredients(dates []string) ([]forecast.IngredientPrediction, error)
}

// SystemHandlers handles system monitoring and operational endpoints.
type SystemHandlers struct {
	log          zerolog.Logger
	cacheDB      *database.DB
	dataDir      string
	refreshJob   scheduler.Job
	orders       *orders.Service
	staffing     *staffing.Service
	forecasts    ingredientPredictor
	eventManager *events.Manager
	now          func() time.Time
	startTime    time.Time
}

// NewSystemHandlers creates the system handlers.
func NewSystemHandlers(log zerolog.Logger, cacheDB *database.DB, dataDir string, refreshJob scheduler.Job, ordersSvc *orders.Service, staffingSvc *staffing.Service, forecasts ingredientPredictor, eventManager *events.Manager) *SystemHandlers {
	return &SystemHandlers{
		log:          log.With().Str("handler", "system").Logger(),
		cacheDB:      cacheDB,
		dataDir:      dataDir,
		refreshJob:   refreshJob,
		orders:       ordersSvc,
		staffing:     staffingSvc,
		forecasts:    forecasts,
		eventManager: eventManager,
		now:          time.Now,
		startTime:    time.Now(),
	}
}

// HandleStatus returns host and process health metrics.
// GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory"] = map[string]interface{}{
			"total_bytes": vm.Total,
			"used_bytes":  vm.Used,
			"percent":     vm.UsedPercent,
		}
	}

	if usage, err := disk.Usage(h.dataDir); err == nil {
		status["disk"] = map[string]interface{}{
			"total_bytes": usage.Total,
			"free_bytes":  usage.Free,
			"percent":     usage.UsedPercent,
		}
	}

	if h.cacheDB != nil {
		if stats, err := h.cacheDB.GetStats(); err == nil {
			status["cache_db"] = map[string]interface{}{
				"size_bytes":     stats.SizeBytes,
				"wal_size_bytes": stats.WALSizeBytes,
			}
		}
	}

	h.writeJSON(w, status)
}

// HandleRefresh triggers a full forecast refresh cycle.
// POST /api/system/refresh
func (h *SystemHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.log.Info().Msg("Manual refresh triggered")

	if h.eventManager != nil {
		h.eventManager.EmitTyped(events.SystemStatusChanged, "system", &events.SystemStatusChangedData{
			Status:    "refreshing",
			Timestamp: h.now().Format(time.RFC3339),
		})
	}

	if err := h.refreshJob.Run(); err != nil {
		// Partial refreshes are normal when one upstream is down; report but
		// keep the 200 so the dashboard shows what did refresh.
		h.writeJSON(w, map[string]interface{}{
			"status": "partial",
			"error":  err.Error(),
		})
		return
	}

	h.writeJSON(w, map[string]string{"status": "refreshed"})
}

// HandleSummary returns the dashboard headline numbers. Each number is
// computed independently; an unavailable upstream nulls its field instead of
// failing the whole response.
// GET /api/summary
func (h *SystemHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary := map[string]interface{}{
		"today_orders":            nil,
		"tomorrow_top_ingredient": nil,
		"staffing_daily_cost":     nil,
	}

	if series, err := h.orders.Forecast("daily"); err == nil && len(series.Points) > 0 {
		summary["today_orders"] = series.Points[0].PredictedOrders
	} else if err != nil {
		h.log.Warn().Err(err).Msg("Summary: order forecast unavailable")
	}

	if top, quantity, ok := h.tomorrowTopIngredient(); ok {
		summary["tomorrow_top_ingredient"] = map[string]interface{}{
			"name":     top,
			"quantity": quantity,
		}
	}

	if assignment, err := h.staffing.Assignment(); err == nil {
		summary["staffing_daily_cost"] = assignment.TotalDailyCost
	} else {
		h.log.Warn().Err(err).Msg("Summary: staffing unavailable")
	}

	h.writeJSON(w, summary)
}

// tomorrowTopIngredient finds the ingredient with the highest predicted
// quantity for tomorrow.
func (h *SystemHandlers) tomorrowTopIngredient() (string, float64, bool) {
	tomorrow := h.now().AddDate(0, 0, 1).Format(utils.DateFormat)

	predictions, err := h.forecasts.PredictIngredients([]string{tomorrow})
	if err != nil || len(predictions) == 0 {
		if err != nil {
			h.log.Warn().Err(err).Msg("Summary: ingredient forecast unavailable")
		}
		return "", 0, false
	}

	var topName string
	topValue := 0.0
	for name, value := range predictions[0].Predictions {
		if value > topValue {
			topName = name
			topValue = value
		}
	}

	return topName, topValue, topName != ""
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

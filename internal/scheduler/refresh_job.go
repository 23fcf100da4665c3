package scheduler

import (
	"errors"
	"fmt"

	"github.com/restodash/restodash/internal/events"
	"github.com/restodash/restodash/internal/modules/ingredients"
	"github.com/restodash/restodash/internal/modules/menu"
	"github.com/restodash/restodash/internal/modules/orders"
	"github.com/restodash/restodash/internal/modules/staffing"
	"github.com/rs/zerolog"
)

// RefreshJob warms every upstream cache on a fixed cycle so dashboard
// requests are served from fresh data and the stale fallbacks have something
// to fall back on. Each window refreshes independently; one failed upstream
// does not stop the others.
type RefreshJob struct {
	menu         *menu.Service
	orders       *orders.Service
	ingredients  *ingredients.Service
	staffing     *staffing.Service
	eventManager *events.Manager
	log          zerolog.Logger
}

// NewRefreshJob creates the forecast refresh job.
func NewRefreshJob(menuSvc *menu.Service, ordersSvc *orders.Service, ingredientsSvc *ingredients.Service, staffingSvc *staffing.Service, eventManager *events.Manager, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		menu:         menuSvc,
		orders:       ordersSvc,
		ingredients:  ingredientsSvc,
		staffing:     staffingSvc,
		eventManager: eventManager,
		log:          log.With().Str("job", "refresh").Logger(),
	}
}

// Name returns the job identifier used in scheduler logs.
func (j *RefreshJob) Name() string {
	return "forecast_refresh"
}

// Run refreshes all forecast windows, the menu, and the staffing plan.
func (j *RefreshJob) Run() error {
	var errs []error

	for _, timeframe := range []string{"hourly", "daily", "weekly"} {
		if _, err := j.orders.Forecast(timeframe); err != nil {
			j.log.Warn().Err(err).Str("timeframe", timeframe).Msg("Order forecast refresh failed")
			errs = append(errs, fmt.Errorf("orders %s: %w", timeframe, err))
		}
	}

	if err := j.menu.Refresh(); err != nil {
		j.log.Warn().Err(err).Msg("Menu refresh failed")
		errs = append(errs, fmt.Errorf("menu: %w", err))
	}

	if rows, err := j.ingredients.ListRows(); err != nil {
		j.log.Warn().Err(err).Msg("Ingredient refresh failed")
		errs = append(errs, fmt.Errorf("ingredients: %w", err))
	} else if j.eventManager != nil {
		j.eventManager.EmitTyped(events.IngredientsUpdated, "ingredients", &events.IngredientsUpdatedData{
			Window:      "daily",
			Ingredients: len(rows),
		})
	}

	if _, err := j.staffing.Assignment(); err != nil {
		j.log.Warn().Err(err).Msg("Staffing refresh failed")
		errs = append(errs, fmt.Errorf("staffing: %w", err))
	}

	return errors.Join(errs...)
}

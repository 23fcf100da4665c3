package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Forecast predictions regenerate on the upstream side a few times per day.
	TTLForecastHourly = 30 * time.Minute // Hourly order predictions for dashboard charts
	TTLForecastDaily  = 2 * time.Hour    // 7-day order predictions
	TTLForecastWeekly = 6 * time.Hour    // 4-week order predictions

	// Ingredient needs are derived from the same forecast run.
	TTLIngredientDaily  = 2 * time.Hour
	TTLIngredientWeekly = 6 * time.Hour

	// Staffing assignments change when the roster or forecast changes.
	TTLStaffingAssignment = time.Hour
	TTLStaffingConfig     = 24 * time.Hour // Roster config is near-static
)

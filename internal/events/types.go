// Package events provides event management functionality.
package events

// EventType represents different event types
type EventType string

const (
	ForecastRefreshed   EventType = "FORECAST_REFRESHED"
	IngredientsUpdated  EventType = "INGREDIENTS_UPDATED"
	StaffingRefreshed   EventType = "STAFFING_REFRESHED"
	MenuRebuilt         EventType = "MENU_REBUILT"
	ScenarioEvaluated   EventType = "SCENARIO_EVALUATED"
	SystemStatusChanged EventType = "SYSTEM_STATUS_CHANGED"
	ErrorOccurred       EventType = "ERROR_OCCURRED"
)

package events

// EventData is the interface that all event data types must implement
// This allows for type-safe event data while maintaining flexibility
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// ForecastRefreshedData contains data for ForecastRefreshed events
type ForecastRefreshedData struct {
	Window  string `json:"window"`  // "hourly", "daily", or "weekly"
	Entries int    `json:"entries"` // Number of prediction entries fetched
	Stale   bool   `json:"stale"`   // True when served from an expired cache
}

// EventType returns the event type for ForecastRefreshedData
func (d *ForecastRefreshedData) EventType() EventType {
	return ForecastRefreshed
}

// IngredientsUpdatedData contains data for IngredientsUpdated events
type IngredientsUpdatedData struct {
	Window      string `json:"window"`
	Ingredients int    `json:"ingredients"`
}

// EventType returns the event type for IngredientsUpdatedData
func (d *IngredientsUpdatedData) EventType() EventType {
	return IngredientsUpdated
}

// StaffingRefreshedData contains data for StaffingRefreshed events
type StaffingRefreshedData struct {
	ForecastDate   string  `json:"forecast_date"`
	TotalDailyCost float64 `json:"total_daily_cost"`
}

// EventType returns the event type for StaffingRefreshedData
func (d *StaffingRefreshedData) EventType() EventType {
	return StaffingRefreshed
}

// MenuRebuiltData contains data for MenuRebuilt events
type MenuRebuiltData struct {
	Entries int    `json:"entries"`
	SortBy  string `json:"sort_by,omitempty"`
}

// EventType returns the event type for MenuRebuiltData
func (d *MenuRebuiltData) EventType() EventType {
	return MenuRebuilt
}

// ScenarioEvaluatedData contains data for ScenarioEvaluated events
type ScenarioEvaluatedData struct {
	EventKey   string  `json:"event_key"`
	WeatherKey string  `json:"weather_key"`
	Revenue    float64 `json:"revenue"`
	Orders     float64 `json:"orders"`
}

// EventType returns the event type for ScenarioEvaluatedData
func (d *ScenarioEvaluatedData) EventType() EventType {
	return ScenarioEvaluated
}

// SystemStatusChangedData contains data for SystemStatusChanged events
type SystemStatusChangedData struct {
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp"`
}

// EventType returns the event type for SystemStatusChangedData
func (d *SystemStatusChangedData) EventType() EventType {
	return SystemStatusChanged
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

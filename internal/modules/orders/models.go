package orders

// Supported forecast timeframes.
const (
	TimeframeHourly = "Hourly"
	TimeframeDaily  = "Daily"
	TimeframeWeekly = "Weekly"
)

// Window sizes requested from the prediction service.
const (
	NumDays  = 7
	NumWeeks = 4
)

// Service hours covered by the hourly forecast.
const (
	OpeningHour = 0
	ClosingHour = 23
)

// Point is one entry in a forecast series. Label is the hour, date, or ISO
// week start depending on the timeframe.
type Point struct {
	Label           string  `json:"label"`
	PredictedOrders float64 `json:"predicted_orders"`
}

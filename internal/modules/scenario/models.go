// Package scenario implements the what-if simulation engine: a pure mapping
// from scenario parameters to projected revenue, orders, and a 7-day forecast
// series, computed against fixed baseline figures.
package scenario

// Baseline figures every scenario is compared against.
const (
	BaseRevenue = 12500.0
	BaseOrders  = 340.0
	BaseStaff   = 8.0
)

// Params are the user-entered scenario inputs.
type Params struct {
	PriceChangePct  float64 `json:"priceChangePct"`
	MarketingBudget float64 `json:"marketingBudget"`
	EventKey        string  `json:"eventKey"`
	WeatherKey      string  `json:"weatherKey"`
}

// Option describes a selectable event or weather condition with its impact
// multiplier.
type Option struct {
	Name        string  `json:"name"`
	Key         string  `json:"key"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// Events lists the selectable special events. The empty key means no event
// and intentionally carries impact 0, which feeds the derivation below as-is.
var Events = []Option{
	{Name: "None", Key: "", Impact: 0, Description: "No special events"},
	{Name: "Local Festival", Key: "festival", Impact: 2, Description: "Community festival increases foot traffic"},
	{Name: "Sports Game", Key: "sports", Impact: 1.5, Description: "Big game day brings crowds"},
	{Name: "Concert", Key: "concert", Impact: 1.8, Description: "Music event nearby"},
	{Name: "Holiday", Key: "holiday", Impact: 1.3, Description: "Public holiday celebration"},
	{Name: "Wedding", Key: "wedding", Impact: 0.8, Description: "Private event nearby"},
}

// Weather lists the selectable weather conditions.
var Weather = []Option{
	{Name: "Normal", Key: "", Impact: 0, Description: "Typical weather conditions"},
	{Name: "Sunny & Hot", Key: "sunny", Impact: 1.2, Description: "Great weather increases outdoor dining"},
	{Name: "Rainy", Key: "rainy", Impact: 0.7, Description: "Rain reduces foot traffic"},
	{Name: "Stormy", Key: "stormy", Impact: 0.5, Description: "Severe weather limits customers"},
	{Name: "Cold", Key: "cold", Impact: 0.8, Description: "Cold weather affects outdoor seating"},
	{Name: "Perfect", Key: "perfect", Impact: 1.4, Description: "Ideal weather for dining out"},
}

// ForecastDay is one entry of the 7-day scenario series. BaseOrders carries
// only the day-of-week variation and is rendered as a dashed reference line.
type ForecastDay struct {
	Day        string  `json:"day"`
	Date       string  `json:"date"`
	Orders     float64 `json:"orders"`
	BaseOrders float64 `json:"baseOrders"`
}

// Result is the full output of a scenario evaluation.
type Result struct {
	Revenue          float64       `json:"revenue"`
	Orders           float64       `json:"orders"`
	Staff            float64       `json:"staff"`
	RevenueChangePct float64       `json:"revenueChangePct"`
	OrdersChangePct  float64       `json:"ordersChangePct"`
	Efficiency       float64       `json:"efficiency"`
	ForecastSeries   []ForecastDay `json:"forecastSeries"`
}

// Preset is a named, ready-to-apply scenario.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Params      Params `json:"params"`
}

// Presets are the canned scenarios offered by the simulator.
var Presets = []Preset{
	{
		Name:        "Festival Weekend",
		Description: "Local festival event, perfect weather",
		Params:      Params{EventKey: "festival", WeatherKey: "perfect", MarketingBudget: 800, PriceChangePct: 0},
	},
	{
		Name:        "Stormy Day",
		Description: "Stormy weather, no events",
		Params:      Params{EventKey: "", WeatherKey: "stormy", PriceChangePct: -10, MarketingBudget: 300},
	},
	{
		Name:        "Big Game Day",
		Description: "Big game day, sunny weather",
		Params:      Params{EventKey: "sports", WeatherKey: "sunny", MarketingBudget: 600, PriceChangePct: 0},
	},
}

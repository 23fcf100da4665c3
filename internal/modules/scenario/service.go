package scenario

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Service evaluates what-if scenarios.
type Service struct {
	now func() time.Time
	log zerolog.Logger
}

// NewService creates a new scenario service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		now: time.Now,
		log: log.With().Str("service", "scenario").Logger(),
	}
}

// neutralAliases maps the named neutral selections onto the empty wire key
// the option tables use, so "none" and "normal" hit the impact-0 entries
// instead of the unknown-key path.
var neutralAliases = map[string]string{
	"none":   "",
	"normal": "",
}

// findImpact looks up the impact multiplier for a key. An unknown key behaves
// like an unset selection and contributes nothing.
func findImpact(options []Option, key string) (float64, bool) {
	if alias, ok := neutralAliases[key]; ok {
		key = alias
	}
	for _, opt := range options {
		if opt.Key == key {
			return opt.Impact, true
		}
	}
	return 0, false
}

// Evaluate computes the full scenario result. Pure: the same params at the
// same date always yield the same result.
func (s *Service) Evaluate(params Params) Result {
	eventImpact, eventFound := findImpact(Events, params.EventKey)
	weatherImpact, weatherFound := findImpact(Weather, params.WeatherKey)

	var eventRevenueImpact, weatherRevenueImpact float64
	var eventOrderImpact, weatherOrderImpact float64

	// The "none" selections carry impact 0, so (impact-1) terms go negative.
	// This asymmetry matches the production dashboard and is kept as-is.
	if eventFound {
		eventRevenueImpact = eventImpact * 100
		eventOrderImpact = (eventImpact - 1) * 50
	}
	if weatherFound {
		weatherRevenueImpact = weatherImpact * 50
		weatherOrderImpact = (weatherImpact - 1) * 30
	}

	newRevenue := BaseRevenue + params.PriceChangePct*50 + params.MarketingBudget*2 + eventRevenueImpact + weatherRevenueImpact
	newOrders := BaseOrders + params.MarketingBudget*0.5 + eventOrderImpact + weatherOrderImpact

	revenueChange := (newRevenue - BaseRevenue) / BaseRevenue * 100
	ordersChange := (newOrders - BaseOrders) / BaseOrders * 100

	return Result{
		Revenue:          newRevenue,
		Orders:           math.Round(newOrders),
		Staff:            BaseStaff,
		RevenueChangePct: revenueChange,
		OrdersChangePct:  ordersChange,
		Efficiency:       newOrders / BaseStaff,
		ForecastSeries:   s.forecastSeries(newOrders, params, eventImpact, weatherImpact, eventFound, weatherFound),
	}
}

// forecastSeries projects orders over the next 7 days. Weekends run 30% above
// the scenario's order level, Fridays 10%.
func (s *Service) forecastSeries(newOrders float64, params Params, eventImpact, weatherImpact float64, eventFound, weatherFound bool) []ForecastDay {
	series := make([]ForecastDay, 0, 7)
	today := s.now()

	// Unknown keys behave like a neutral multiplier.
	eventEffect := 1.0
	if eventFound {
		eventEffect = eventImpact
	}
	weatherEffect := 1.0
	if weatherFound {
		weatherEffect = weatherImpact
	}

	marketingEffect := 1 + params.MarketingBudget*0.0001
	priceEffect := 1 - params.PriceChangePct*0.01

	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i)
		dayName := date.Format("Mon")

		dailyMultiplier := 1.0
		switch dayName {
		case "Sat", "Sun":
			dailyMultiplier = 1.3
		case "Fri":
			dailyMultiplier = 1.1
		}

		orders := math.Round(newOrders * dailyMultiplier * marketingEffect * priceEffect * eventEffect * weatherEffect)

		series = append(series, ForecastDay{
			Day:        dayName,
			Date:       date.Format("2006-01-02"),
			Orders:     orders,
			BaseOrders: math.Round(newOrders * dailyMultiplier),
		})
	}

	return series
}

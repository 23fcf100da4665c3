// Package charts computes axis domains and tick sets for dashboard charts.
// Every chart-bearing view derives its Y axis from the data it renders, so
// the scale computation lives here rather than in each view handler.
package charts

import (
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// ScaleConfig holds a chart's Y-axis domain and tick values.
type ScaleConfig struct {
	Domain []float64 `json:"domain"` // [min, max], min is always 0
	Ticks  []float64 `json:"ticks"`
}

// DataPoint is one chart entry: a named set of numeric values.
// Missing keys are treated as 0.
type DataPoint map[string]float64

// niceSteps are the normalized domain maxima a scale can snap to.
var niceSteps = []float64{1, 2, 2.5, 5, 10}

// timeframeMultipliers set minimum expected order volumes per timeframe so
// sparse data doesn't collapse the axis.
var timeframeMultipliers = map[string]float64{
	"Hourly": 1,
	"Daily":  5,
	"Weekly": 15,
}

// orderDataKeys are the value keys inspected for order charts.
var orderDataKeys = []string{"pizza", "bar", "others", "predicted_orders"}

// ingredientDataKeys are the value keys inspected for ingredient usage charts.
var ingredientDataKeys = []string{"solidOrange", "dottedGray", "dottedOrange", "past", "actual", "predicted"}

// Service provides chart scale operations.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new charts service.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "charts").Logger(),
	}
}

// Scale computes a dynamic Y-axis scale from the given data and value keys.
// The result is deterministic for identical input.
func (s *Service) Scale(data []DataPoint, keys []string) ScaleConfig {
	values := make([]float64, 0, len(data)*len(keys))
	for _, point := range data {
		for _, key := range keys {
			if v, ok := point[key]; ok && !math.IsNaN(v) {
				values = append(values, v)
			} else {
				values = append(values, 0)
			}
		}
	}

	maxValue := 0.0
	if len(values) > 0 {
		maxValue = math.Max(0, floats.Max(values))
	}

	if maxValue == 0 {
		return ScaleConfig{
			Domain: []float64{0, 10},
			Ticks:  []float64{0, 2.5, 5, 7.5, 10},
		}
	}

	// 10% headroom above the largest value, snapped to a nice number.
	scaledMax := maxValue * 1.1
	magnitude := math.Pow(10, math.Floor(math.Log10(scaledMax)))
	normalized := scaledMax / magnitude

	niceMax := niceSteps[len(niceSteps)-1]
	for _, step := range niceSteps {
		if normalized <= step {
			niceMax = step
			break
		}
	}

	domainMax := niceMax * magnitude

	tickCount := int(math.Min(6, math.Max(4, math.Ceil(domainMax/magnitude))))
	tickStep := domainMax / float64(tickCount-1)

	ticks := make([]float64, tickCount)
	for i := 0; i < tickCount; i++ {
		ticks[i] = math.Round(float64(i) * tickStep)
	}

	return ScaleConfig{
		Domain: []float64{0, domainMax},
		Ticks:  ticks,
	}
}

// OrderScale computes the scale for order charts, enforcing a timeframe-based
// minimum so hourly and weekly charts stay comparable across days.
func (s *Service) OrderScale(data []DataPoint, timeframe string) ScaleConfig {
	base := s.Scale(data, orderDataKeys)

	multiplier, ok := timeframeMultipliers[timeframe]
	if !ok {
		multiplier = 1
	}
	minExpected := 1000 * multiplier

	if base.Domain[1] < minExpected {
		return s.Scale([]DataPoint{{"value": minExpected}}, []string{"value"})
	}

	return base
}

// IngredientScale computes the scale for ingredient usage charts.
func (s *Service) IngredientScale(data []DataPoint) ScaleConfig {
	return s.Scale(data, ingredientDataKeys)
}

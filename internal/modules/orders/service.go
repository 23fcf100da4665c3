package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/restodash/restodash/internal/clients/forecast"
	"github.com/restodash/restodash/internal/events"
	"github.com/restodash/restodash/internal/modules/charts"
	"github.com/restodash/restodash/internal/utils"
	"github.com/rs/zerolog"
)

// ErrUnknownTimeframe is returned for timeframe values outside hourly, daily,
// and weekly.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// PredictionClient is the slice of the forecast client this service needs.
type PredictionClient interface {
	PredictHourly(timestamps []string, context []forecast.ContextRow) ([]forecast.HourlyPrediction, error)
	PredictDaily(dates []string, context []forecast.ContextRow) ([]forecast.DailyPrediction, error)
	PredictWeekly(weeks []string) ([]forecast.WeeklyPrediction, error)
}

// Series is a forecast series plus the axis scale to render it with.
type Series struct {
	Timeframe string             `json:"timeframe"`
	Points    []Point            `json:"points"`
	Scale     charts.ScaleConfig `json:"scale"`
}

// Service serves order forecast series over the hourly, daily, and weekly
// windows.
type Service struct {
	client       PredictionClient
	charts       *charts.Service
	eventManager *events.Manager
	now          func() time.Time
	log          zerolog.Logger
}

// NewService creates a new orders service.
func NewService(client PredictionClient, chartService *charts.Service, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		client:       client,
		charts:       chartService,
		eventManager: eventManager,
		now:          time.Now,
		log:          log.With().Str("service", "orders").Logger(),
	}
}

// Forecast fetches the series for a timeframe. Accepted values are "hourly",
// "daily", and "weekly" in any casing. Negative predictions floor to zero.
func (s *Service) Forecast(timeframe string) (*Series, error) {
	canonical, err := canonicalTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var points []Point

	switch canonical {
	case TimeframeHourly:
		predictions, err := s.client.PredictHourly(utils.HourlyWindow(now, OpeningHour, ClosingHour), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch hourly forecast: %w", err)
		}
		points = make([]Point, 0, len(predictions))
		for _, p := range predictions {
			points = append(points, Point{Label: p.Hour, PredictedOrders: floorZero(p.PredictedOrders)})
		}

	case TimeframeDaily:
		predictions, err := s.client.PredictDaily(utils.DailyWindow(now, NumDays), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch daily forecast: %w", err)
		}
		points = make([]Point, 0, len(predictions))
		for _, p := range predictions {
			points = append(points, Point{Label: p.Date, PredictedOrders: floorZero(p.PredictedOrders)})
		}

	case TimeframeWeekly:
		predictions, err := s.client.PredictWeekly(utils.WeeklyWindow(now, NumWeeks))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch weekly forecast: %w", err)
		}
		points = make([]Point, 0, len(predictions))
		for _, p := range predictions {
			points = append(points, Point{Label: p.Week, PredictedOrders: floorZero(p.PredictedOrders)})
		}
	}

	series := &Series{
		Timeframe: canonical,
		Points:    points,
		Scale:     s.charts.OrderScale(scaleData(points), canonical),
	}

	s.log.Debug().Str("timeframe", canonical).Int("points", len(points)).Msg("Order forecast built")
	if s.eventManager != nil {
		s.eventManager.EmitTyped(events.ForecastRefreshed, "orders", &events.ForecastRefreshedData{
			Window:  strings.ToLower(canonical),
			Entries: len(points),
		})
	}

	return series, nil
}

// canonicalTimeframe validates and capitalizes a timeframe query value.
func canonicalTimeframe(timeframe string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(timeframe)) {
	case "", "daily":
		return TimeframeDaily, nil
	case "hourly":
		return TimeframeHourly, nil
	case "weekly":
		return TimeframeWeekly, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTimeframe, timeframe)
	}
}

func scaleData(points []Point) []charts.DataPoint {
	data := make([]charts.DataPoint, 0, len(points))
	for _, p := range points {
		data = append(data, charts.DataPoint{"predicted_orders": p.PredictedOrders})
	}
	return data
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

package ingredients

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/restodash/restodash/internal/clients/forecast"
	"github.com/restodash/restodash/internal/modules/variant"
	"github.com/restodash/restodash/internal/utils"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Window sizes requested from the prediction service.
const (
	NumDays  = 7
	NumWeeks = 4
)

// priceOptions are the placeholder per-unit price deltas, in dinars.
var priceOptions = []float64{10, 100, 150, 250}

// PredictionClient is the slice of the forecast client this service needs.
type PredictionClient interface {
	PredictIngredients(dates []string) ([]forecast.IngredientPrediction, error)
	PredictWeeklyIngredients(weeks []string) ([]forecast.WeeklyIngredientPrediction, error)
}

// Service builds ingredient tables and usage series.
type Service struct {
	client PredictionClient
	now    func() time.Time
	log    zerolog.Logger
}

// NewService creates a new ingredients service.
func NewService(client PredictionClient, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		now:    time.Now,
		log:    log.With().Str("service", "ingredients").Logger(),
	}
}

// ListRows returns the ingredients table: every non-variant label seen in the
// weekly predictions (falling back to daily when the weekly fetch is empty),
// sorted by name.
func (s *Service) ListRows() ([]Row, error) {
	names, err := s.ingredientNames()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, buildRow(name))
	}

	return rows, nil
}

// ingredientNames collects distinct non-variant prediction labels.
func (s *Service) ingredientNames() ([]string, error) {
	set := make(map[string]bool)

	weekly, weeklyErr := s.client.PredictWeeklyIngredients(utils.WeeklyWindow(s.now(), NumWeeks))
	if weeklyErr != nil {
		s.log.Warn().Err(weeklyErr).Msg("Weekly ingredient fetch failed")
	}
	for _, rec := range weekly {
		for key := range rec.Predictions {
			if !variant.IsVariant(key) {
				set[key] = true
			}
		}
	}

	// The weekly horizon is authoritative; daily only fills in if it yielded
	// nothing.
	if len(set) == 0 {
		daily, dailyErr := s.client.PredictIngredients(utils.DailyWindow(s.now(), NumDays))
		if dailyErr != nil {
			if weeklyErr != nil {
				return nil, fmt.Errorf("ingredient predictions unavailable: %w", dailyErr)
			}
			s.log.Warn().Err(dailyErr).Msg("Daily ingredient fetch failed")
		}
		for _, rec := range daily {
			for key := range rec.Predictions {
				if !variant.IsVariant(key) {
					set[key] = true
				}
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// buildRow derives the placeholder merchandising fields from a stable hash of
// the name, so the table doesn't flicker between refreshes.
func buildRow(name string) Row {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	seed := h.Sum32()

	return Row{
		Name:       name,
		Kind:       "Ingredient",
		PriceDelta: priceOptions[seed%uint32(len(priceOptions))],
		Stock:      int(seed % 500),
		HasWarning: seed%100 < 15,
	}
}

// DailyUsage returns the 7-day usage series for one ingredient. Negative
// predictions are floored to zero.
func (s *Service) DailyUsage(ingredient string) (*UsageSeries, error) {
	records, err := s.client.PredictIngredients(utils.DailyWindow(s.now(), NumDays))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily ingredient predictions: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	today := s.now().Format(utils.DateFormat)
	points := make([]UsagePoint, 0, len(records))
	values := make([]float64, 0, len(records))

	for _, rec := range records {
		value := Match(ingredient, rec.Predictions)
		if value < 0 {
			value = 0
		}
		values = append(values, value)

		label := rec.Date
		if parsed, perr := time.Parse(utils.DateFormat, firstDatePart(rec.Date)); perr == nil {
			label = parsed.Format("Mon")
		}

		point := UsagePoint{Label: label}
		v := value
		if firstDatePart(rec.Date) <= today {
			point.SolidOrange = &v
		} else {
			point.DottedOrange = &v
		}
		points = append(points, point)
	}

	return &UsageSeries{
		Ingredient:  ingredient,
		Window:      "daily",
		Points:      points,
		AverageNeed: mean(values),
	}, nil
}

// WeeklyUsage returns the 4-week usage series for one ingredient.
func (s *Service) WeeklyUsage(ingredient string) (*UsageSeries, error) {
	records, err := s.client.PredictWeeklyIngredients(utils.WeeklyWindow(s.now(), NumWeeks))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly ingredient predictions: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Week < records[j].Week })

	currentWeek := utils.StartOfISOWeek(s.now()).Format(utils.DateFormat)
	points := make([]UsagePoint, 0, len(records))
	values := make([]float64, 0, len(records))

	for i, rec := range records {
		value := Match(ingredient, rec.Predictions)
		if value < 0 {
			value = 0
		}
		values = append(values, value)

		point := UsagePoint{Label: fmt.Sprintf("W%d", i+1)}
		v := value
		if firstDatePart(rec.Week) <= currentWeek {
			point.SolidOrange = &v
		} else {
			point.DottedOrange = &v
		}
		points = append(points, point)
	}

	return &UsageSeries{
		Ingredient:  ingredient,
		Window:      "weekly",
		Points:      points,
		AverageNeed: mean(values),
	}, nil
}

// firstDatePart trims an upstream timestamp like "2025-06-01T00:00:00" down
// to its date.
func firstDatePart(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

package menu

import (
	"fmt"
	"sync"
	"time"

	"github.com/restodash/restodash/internal/clients/forecast"
	"github.com/restodash/restodash/internal/events"
	"github.com/restodash/restodash/internal/modules/ingredients"
	"github.com/restodash/restodash/internal/modules/variant"
	"github.com/restodash/restodash/internal/utils"
	"github.com/rs/zerolog"
)

// WindowDays is the daily horizon requested from the prediction service.
const WindowDays = 7

// PredictionClient is the slice of the forecast client this service needs.
type PredictionClient interface {
	PredictIngredients(dates []string) ([]forecast.IngredientPrediction, error)
}

// IngredientNeed pairs a declared ingredient with its predicted quantity for
// tomorrow.
type IngredientNeed struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
}

// VariantPoint is one day of forecast for a single variant key.
type VariantPoint struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// VariantSeries is the daily forecast for one variant of an entry.
type VariantSeries struct {
	Key    string         `json:"key"`
	Points []VariantPoint `json:"points"`
}

// Detail is the full view of one menu entry.
type Detail struct {
	Entry           Entry            `json:"entry"`
	Variants        []VariantSeries  `json:"variants"`
	Ingredients     []IngredientNeed `json:"ingredients"`
	IngredientsDate string           `json:"ingredientsDate"`
}

// Service owns the aggregated menu state. Entries are rebuilt wholesale from
// fresh predictions; a generation counter discards results of superseded
// refreshes so the last resolved rebuild wins.
type Service struct {
	client       PredictionClient
	eventManager *events.Manager
	now          func() time.Time
	log          zerolog.Logger

	mu         sync.RWMutex
	entries    []Entry
	records    []PredictionRecord
	generation uint64
}

// NewService creates a new menu service.
func NewService(client PredictionClient, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		client:       client,
		eventManager: eventManager,
		now:          time.Now,
		log:          log.With().Str("service", "menu").Logger(),
	}
}

// Refresh fetches the daily prediction window and rebuilds all menu entries.
// A failed fetch keeps the previously aggregated entries.
func (s *Service) Refresh() error {
	defer utils.OperationTimer("menu_refresh", s.log)()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	now := s.now()
	predictions, err := s.client.PredictIngredients(utils.DailyWindow(now, WindowDays))
	if err != nil {
		return fmt.Errorf("failed to fetch menu predictions: %w", err)
	}

	records := make([]PredictionRecord, 0, len(predictions))
	for _, p := range predictions {
		records = append(records, PredictionRecord{
			TimeKey:     p.Date,
			Predictions: p.Predictions,
		})
	}

	entries := Aggregate(records, Catalog, now.Format(utils.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer refresh started while this one was in flight.
		s.log.Debug().Uint64("generation", gen).Msg("Discarding superseded menu rebuild")
		return nil
	}
	s.entries = entries
	s.records = records

	s.log.Info().Int("entries", len(entries)).Msg("Menu rebuilt")
	if s.eventManager != nil {
		s.eventManager.EmitTyped(events.MenuRebuilt, "menu", &events.MenuRebuiltData{
			Entries: len(entries),
		})
	}

	return nil
}

// Entries returns the current menu, sorted by the requested metric. The menu
// is rebuilt on first access.
func (s *Service) Entries(sortBy string) ([]Entry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.RUnlock()

	SortEntries(entries, sortBy)
	return entries, nil
}

// Entry returns the detail view for one menu entry: the entry itself plus
// tomorrow's predicted quantity for each declared catalog ingredient.
func (s *Service) Entry(id string) (*Detail, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var entry *Entry
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry = &s.entries[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("menu entry not found: %s", id)
	}

	tomorrow := s.now().AddDate(0, 0, 1).Format(utils.DateFormat)
	var tomorrowPredictions map[string]float64
	for _, record := range s.records {
		if datePart(record.TimeKey) == tomorrow {
			tomorrowPredictions = record.Predictions
			break
		}
	}

	detail := &Detail{
		Entry:           *entry,
		Variants:        s.variantSeries(entry),
		IngredientsDate: tomorrow,
	}

	if catalogEntry := matchCatalog(variant.CanonicalKey(entry.DisplayName), Catalog); catalogEntry != nil {
		for _, label := range catalogEntry.Ingredients {
			detail.Ingredients = append(detail.Ingredients, IngredientNeed{
				Label:    label,
				Quantity: ingredients.Match(label, tomorrowPredictions),
			})
		}
	}

	return detail, nil
}

// variantSeries extracts the per-variant daily forecast for an entry from the
// held prediction records. Caller must hold at least a read lock.
func (s *Service) variantSeries(entry *Entry) []VariantSeries {
	series := make([]VariantSeries, 0, len(entry.VariantKeys))
	for _, key := range entry.VariantKeys {
		points := make([]VariantPoint, 0, len(s.records))
		for _, record := range s.records {
			if v, ok := record.Predictions[key]; ok {
				if v < 0 {
					v = 0
				}
				points = append(points, VariantPoint{Date: datePart(record.TimeKey), Quantity: v})
			}
		}
		series = append(series, VariantSeries{Key: key, Points: points})
	}
	return series
}

// ensureLoaded performs the initial rebuild if the menu has never been built.
func (s *Service) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.entries != nil
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.Refresh()
}

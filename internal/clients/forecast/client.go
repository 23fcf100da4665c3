// Package forecast provides a client for the order and ingredient prediction service.
// Responses are cached persistently so the dashboard keeps working when the
// prediction service is down or retraining.
package forecast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/restodash/restodash/internal/clientdata"
	"github.com/rs/zerolog"
)

// Client for the prediction service.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new prediction service client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log.With().Str("client", "forecast").Logger(),
		cacheRepo: cacheRepo,
	}
}

// ContextRow carries per-date weather features the hourly and daily models expect.
type ContextRow struct {
	Date        string  `json:"date" msgpack:"date"`
	TempMinC    float64 `json:"temp_min_c" msgpack:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c" msgpack:"temp_max_c"`
	HumidityPct float64 `json:"humidity_pct" msgpack:"humidity_pct"`
	WindKph     float64 `json:"wind_kph" msgpack:"wind_kph"`
	PrecipMm    float64 `json:"precip_mm" msgpack:"precip_mm"`
	PrecipProb  float64 `json:"precip_prob" msgpack:"precip_prob"`
}

// HourlyPrediction is one row of the /predict response.
type HourlyPrediction struct {
	Hour            string  `json:"hour" msgpack:"hour"`
	PredictedOrders float64 `json:"predicted_orders" msgpack:"predicted_orders"`
}

// DailyPrediction is one row of the /predict_daily response.
type DailyPrediction struct {
	Date            string  `json:"date" msgpack:"date"`
	PredictedOrders float64 `json:"predicted_orders" msgpack:"predicted_orders"`
}

// WeeklyPrediction is one row of the /predict_weekly response.
type WeeklyPrediction struct {
	Week            string  `json:"week" msgpack:"week"`
	PredictedOrders float64 `json:"predicted_orders" msgpack:"predicted_orders"`
}

// IngredientPrediction is one row of the /predict_ingredients response.
// Predictions maps ingredient target names to predicted quantities.
type IngredientPrediction struct {
	Date        string             `json:"date" msgpack:"date"`
	Predictions map[string]float64 `json:"predictions" msgpack:"predictions"`
}

// WeeklyIngredientPrediction is one row of the /predict_weekly_ingredients response.
type WeeklyIngredientPrediction struct {
	Week        string             `json:"week" msgpack:"week"`
	Predictions map[string]float64 `json:"predictions" msgpack:"predictions"`
}

// PredictHourly fetches per-hour order predictions for the given timestamps.
func (c *Client) PredictHourly(timestamps []string, context []ContextRow) ([]HourlyPrediction, error) {
	cacheKey := strings.Join(timestamps, "|")

	var result []HourlyPrediction
	if c.cacheHit("forecast_hourly", cacheKey, &result) {
		return result, nil
	}

	body := map[string]interface{}{
		"timestamps": timestamps,
		"context":    contextOrEmpty(context),
	}

	if err := c.postJSON("/predict", body, &result); err != nil {
		if c.staleHit("forecast_hourly", cacheKey, &result, err) {
			return result, nil
		}
		return nil, err
	}

	c.cacheStore("forecast_hourly", cacheKey, result, clientdata.TTLForecastHourly)
	return result, nil
}

// PredictDaily fetches per-day order predictions for the given dates.
func (c *Client) PredictDaily(dates []string, context []ContextRow) ([]DailyPrediction, error) {
	cacheKey := strings.Join(dates, "|")

	var result []DailyPrediction
	if c.cacheHit("forecast_daily", cacheKey, &result) {
		return result, nil
	}

	body := map[string]interface{}{
		"dates":   dates,
		"context": contextOrEmpty(context),
	}

	if err := c.postJSON("/predict_daily", body, &result); err != nil {
		if c.staleHit("forecast_daily", cacheKey, &result, err) {
			return result, nil
		}
		return nil, err
	}

	c.cacheStore("forecast_daily", cacheKey, result, clientdata.TTLForecastDaily)
	return result, nil
}

// PredictWeekly fetches per-week order predictions for the given week start dates.
func (c *Client) PredictWeekly(weeks []string) ([]WeeklyPrediction, error) {
	cacheKey := strings.Join(weeks, "|")

	var result []WeeklyPrediction
	if c.cacheHit("forecast_weekly", cacheKey, &result) {
		return result, nil
	}

	body := map[string]interface{}{"weeks": weeks}

	if err := c.postJSON("/predict_weekly", body, &result); err != nil {
		if c.staleHit("forecast_weekly", cacheKey, &result, err) {
			return result, nil
		}
		return nil, err
	}

	c.cacheStore("forecast_weekly", cacheKey, result, clientdata.TTLForecastWeekly)
	return result, nil
}

// PredictIngredients fetches per-day ingredient quantity predictions.
func (c *Client) PredictIngredients(dates []string) ([]IngredientPrediction, error) {
	cacheKey := strings.Join(dates, "|")

	var result []IngredientPrediction
	if c.cacheHit("ingredient_daily", cacheKey, &result) {
		return result, nil
	}

	body := map[string]interface{}{"dates": dates}

	if err := c.postJSON("/predict_ingredients", body, &result); err != nil {
		if c.staleHit("ingredient_daily", cacheKey, &result, err) {
			return result, nil
		}
		return nil, err
	}

	c.cacheStore("ingredient_daily", cacheKey, result, clientdata.TTLIngredientDaily)
	return result, nil
}

// PredictWeeklyIngredients fetches per-week ingredient quantity predictions.
func (c *Client) PredictWeeklyIngredients(weeks []string) ([]WeeklyIngredientPrediction, error) {
	cacheKey := strings.Join(weeks, "|")

	var result []WeeklyIngredientPrediction
	if c.cacheHit("ingredient_weekly", cacheKey, &result) {
		return result, nil
	}

	body := map[string]interface{}{"weeks": weeks}

	if err := c.postJSON("/predict_weekly_ingredients", body, &result); err != nil {
		if c.staleHit("ingredient_weekly", cacheKey, &result, err) {
			return result, nil
		}
		return nil, err
	}

	c.cacheStore("ingredient_weekly", cacheKey, result, clientdata.TTLIngredientWeekly)
	return result, nil
}

// contextOrEmpty keeps the request body shape stable when no weather context
// is available. The upstream merges context by date and tolerates missing rows.
func contextOrEmpty(context []ContextRow) []ContextRow {
	if context == nil {
		return []ContextRow{}
	}
	return context
}

// postJSON sends a POST request and decodes the JSON response into result.
func (c *Client) postJSON(path string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	c.log.Debug().Str("url", url).Msg("Requesting predictions")

	resp, err := c.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to parse prediction response: %w", err)
	}

	return nil
}

// cacheHit decodes fresh cached data into dest, returning true on a hit.
func (c *Client) cacheHit(table, key string, dest interface{}) bool {
	if c.cacheRepo == nil {
		return false
	}

	found, err := c.cacheRepo.GetIfFresh(table, key, dest)
	if err != nil || !found {
		return false
	}

	c.log.Debug().Str("table", table).Msg("Cache hit")
	return true
}

// staleHit decodes stale cached data into dest as a fallback when the
// prediction service fails. Stale data is better than no data.
func (c *Client) staleHit(table, key string, dest interface{}, cause error) bool {
	if c.cacheRepo == nil {
		return false
	}

	found, err := c.cacheRepo.Get(table, key, dest)
	if err != nil || !found {
		return false
	}

	c.log.Warn().
		Err(cause).
		Str("table", table).
		Msg("Prediction service failed, using stale cached data")
	return true
}

// cacheStore persists a successful response, logging on failure.
func (c *Client) cacheStore(table, key string, data interface{}, ttl time.Duration) {
	if c.cacheRepo == nil {
		return
	}

	if err := c.cacheRepo.Store(table, key, data, ttl); err != nil {
		c.log.Warn().Err(err).Str("table", table).Msg("Failed to cache predictions")
	}
}

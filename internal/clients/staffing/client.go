// Package staffing provides a client for the staff planning service.
package staffing

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

// Client for the staff planning service.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new staff planning client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log.With().Str("client", "staffing").Logger(),
		cacheRepo: cacheRepo,
	}
}

// ForecastInfo describes which forecast a staffing plan was built from.
type ForecastInfo struct {
	ForecastDate string `json:"forecast_date" msgpack:"forecast_date"`
	ForecastDay  string `json:"forecast_day" msgpack:"forecast_day"`
	GeneratedAt  string `json:"generated_at" msgpack:"generated_at"`
}

// WeatherContext is the weather snapshot the planner used.
type WeatherContext struct {
	Date        string  `json:"date" msgpack:"date"`
	TempMinC    float64 `json:"temp_min_c" msgpack:"temp_min_c"`
	TempMaxC    float64 `json:"temp_max_c" msgpack:"temp_max_c"`
	HumidityPct float64 `json:"humidity_pct" msgpack:"humidity_pct"`
	WindKph     float64 `json:"wind_kph" msgpack:"wind_kph"`
	PrecipMm    float64 `json:"precip_mm" msgpack:"precip_mm"`
	PrecipProb  float64 `json:"precip_prob" msgpack:"precip_prob"`
}

// ShiftAssignment holds the resolved plan for a single shift.
type ShiftAssignment struct {
	ShiftHours      string              `json:"shift_hours" msgpack:"shift_hours"`
	PredictedOrders float64             `json:"predicted_orders" msgpack:"predicted_orders"`
	StaffingNeeds   map[string]float64  `json:"staffing_needs" msgpack:"staffing_needs"`
	StaffAssignment map[string][]string `json:"staff_assignment" msgpack:"staff_assignment"`
	EstimatedCost   float64             `json:"estimated_cost" msgpack:"estimated_cost"`
	ForbiddenStaff  []string            `json:"forbidden_staff" msgpack:"forbidden_staff"`
}

// Assignment is the full response of POST /staff-assignment.
type Assignment struct {
	ForecastInfo   ForecastInfo    `json:"forecast_info" msgpack:"forecast_info"`
	WeatherContext WeatherContext  `json:"weather_context" msgpack:"weather_context"`
	MorningShift   ShiftAssignment `json:"morning_shift" msgpack:"morning_shift"`
	NightShift     ShiftAssignment `json:"night_shift" msgpack:"night_shift"`
	TotalDailyCost float64         `json:"total_daily_cost" msgpack:"total_daily_cost"`
}

// ShiftConfig holds the per-role headcount requirements for a shift.
type ShiftConfig struct {
	PredictedOrders float64            `json:"predicted_orders" msgpack:"predicted_orders"`
	StaffingConfig  map[string]float64 `json:"staffing_config" msgpack:"staffing_config"`
	ShiftHours      string             `json:"shift_hours" msgpack:"shift_hours"`
}

// Config is the full response of GET /staffing-config.
type Config struct {
	WeatherContext WeatherContext `json:"weather_context" msgpack:"weather_context"`
	MorningShift   ShiftConfig    `json:"morning_shift" msgpack:"morning_shift"`
	NightShift     ShiftConfig    `json:"night_shift" msgpack:"night_shift"`
	ForecastInfo   ForecastInfo   `json:"forecast_info" msgpack:"forecast_info"`
}

// GetAssignment fetches the staff assignment for the next business day.
// If the service fails, returns stale cached data if available.
func (c *Client) GetAssignment() (*Assignment, error) {
	const cacheKey = "assignment"

	var cached Assignment
	if c.cacheRepo != nil {
		found, err := c.cacheRepo.GetIfFresh("staffing_assignment", cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Msg("Cache hit for staff assignment")
			return &cached, nil
		}
	}

	url := c.baseURL + "/staff-assignment"
	resp, err := c.client.Post(url, "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		if stale := c.staleAssignment(cacheKey, err); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("staffing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if stale := c.staleAssignment(cacheKey, fmt.Errorf("status %d", resp.StatusCode)); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("staffing service returned status %d", resp.StatusCode)
	}

	var result Assignment
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if stale := c.staleAssignment(cacheKey, err); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("failed to parse staffing response: %w", err)
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store("staffing_assignment", cacheKey, result, clientdata.TTLStaffingAssignment); err != nil {
			c.log.Warn().Err(err).Msg("Failed to cache staff assignment")
		}
	}

	return &result, nil
}

// GetConfig fetches the staffing configuration and shift forecasts.
func (c *Client) GetConfig() (*Config, error) {
	const cacheKey = "config"

	var cached Config
	if c.cacheRepo != nil {
		found, err := c.cacheRepo.GetIfFresh("staffing_config", cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Msg("Cache hit for staffing config")
			return &cached, nil
		}
	}

	url := c.baseURL + "/staffing-config"
	resp, err := c.client.Get(url)
	if err != nil {
		if stale := c.staleConfig(cacheKey, err); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("staffing config request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if stale := c.staleConfig(cacheKey, fmt.Errorf("status %d", resp.StatusCode)); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("staffing service returned status %d", resp.StatusCode)
	}

	var result Config
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if stale := c.staleConfig(cacheKey, err); stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("failed to parse staffing config: %w", err)
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store("staffing_config", cacheKey, result, clientdata.TTLStaffingConfig); err != nil {
			c.log.Warn().Err(err).Msg("Failed to cache staffing config")
		}
	}

	return &result, nil
}

// staleAssignment retrieves a cached assignment even if expired.
func (c *Client) staleAssignment(cacheKey string, cause error) *Assignment {
	if c.cacheRepo == nil {
		return nil
	}

	var cached Assignment
	found, err := c.cacheRepo.Get("staffing_assignment", cacheKey, &cached)
	if err != nil || !found {
		return nil
	}

	c.log.Warn().Err(cause).Msg("Staffing service failed, using stale cached assignment")
	return &cached
}

// staleConfig retrieves a cached config even if expired.
func (c *Client) staleConfig(cacheKey string, cause error) *Config {
	if c.cacheRepo == nil {
		return nil
	}

	var cached Config
	found, err := c.cacheRepo.Get("staffing_config", cacheKey, &cached)
	if err != nil || !found {
		return nil
	}

	c.log.Warn().Err(cause).Msg("Staffing service failed, using stale cached config")
	return &cached
}

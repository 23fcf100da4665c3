// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/restodash/restodash/internal/utils"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for the cache database (always absolute)
	ForecastServiceURL string // Order/ingredient forecasting service
	StaffingServiceURL string // Staffing prediction service
	LogLevel           string
	Port               int
	DevMode            bool
	RefreshSpec        string   // Cron spec for the forecast refresh cycle
	CleanupSpec        string   // Cron spec for cache cleanup
	AllowedOrigins     []string // CORS origins for the dashboard frontend
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("RESTODASH_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:            absDataDir,
		Port:               getEnvAsInt("PORT", 8080),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		ForecastServiceURL: getEnv("FORECAST_SERVICE_URL", "http://127.0.0.1:8000"),
		StaffingServiceURL: getEnv("STAFFING_SERVICE_URL", "http://127.0.0.1:8001"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RefreshSpec:        getEnv("REFRESH_CRON", "*/15 * * * *"),
		CleanupSpec:        getEnv("CACHE_CLEANUP_CRON", "0 4 * * *"),
		AllowedOrigins:     utils.ParseCSV(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.ForecastServiceURL == "" {
		return fmt.Errorf("FORECAST_SERVICE_URL must not be empty")
	}
	if c.StaffingServiceURL == "" {
		return fmt.Errorf("STAFFING_SERVICE_URL must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

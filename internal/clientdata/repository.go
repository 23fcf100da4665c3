// Package clientdata provides persistent caching for external service responses.
// All data is stored as msgpack blobs with expiration timestamps for cache-first behavior.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// AllTables lists all tables in cache.db for cleanup operations.
var AllTables = []string{
	"forecast_hourly",
	"forecast_daily",
	"forecast_weekly",
	"ingredient_daily",
	"ingredient_weekly",
	"staffing_assignment",
	"staffing_config",
}

// Schema creates the cache tables. Applied at startup with CREATE IF NOT EXISTS
// so the cache database needs no separate migration step.
const Schema = `
CREATE TABLE IF NOT EXISTS forecast_hourly (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS forecast_daily (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS forecast_weekly (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS ingredient_daily (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS ingredient_weekly (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS staffing_assignment (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS staffing_config (cache_key TEXT PRIMARY KEY, data BLOB NOT NULL, expires_at INTEGER NOT NULL);

CREATE INDEX IF NOT EXISTS idx_forecast_hourly_expires ON forecast_hourly(expires_at);
CREATE INDEX IF NOT EXISTS idx_forecast_daily_expires ON forecast_daily(expires_at);
CREATE INDEX IF NOT EXISTS idx_forecast_weekly_expires ON forecast_weekly(expires_at);
CREATE INDEX IF NOT EXISTS idx_ingredient_daily_expires ON ingredient_daily(expires_at);
CREATE INDEX IF NOT EXISTS idx_ingredient_weekly_expires ON ingredient_weekly(expires_at);
CREATE INDEX IF NOT EXISTS idx_staffing_assignment_expires ON staffing_assignment(expires_at);
CREATE INDEX IF NOT EXISTS idx_staffing_config_expires ON staffing_config(expires_at);
`

// validTables is a set for O(1) table name validation.
var validTables = func() map[string]bool {
	m := make(map[string]bool, len(AllTables))
	for _, t := range AllTables {
		m[t] = true
	}
	return m
}()

// Repository provides cache operations for upstream service data.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new client data repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema applies the cache schema, creating any missing tables.
func (r *Repository) EnsureSchema() error {
	if _, err := r.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to apply cache schema: %w", err)
	}
	return nil
}

// validateTable ensures the table name is in our allowed list.
// This prevents SQL injection through table names.
func validateTable(table string) error {
	if !validTables[table] {
		return fmt.Errorf("invalid table name: %s", table)
	}
	return nil
}

// Store saves data with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert data.
func (r *Repository) Store(table, key string, data interface{}, ttl time.Duration) error {
	if err := validateTable(table); err != nil {
		return err
	}

	blob, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (cache_key, data, expires_at) VALUES (?, ?, ?)",
		table,
	)

	_, err = r.db.Exec(query, key, blob, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store data in %s: %w", table, err)
	}

	return nil
}

// GetIfFresh decodes data into dest only if expires_at > now.
// Returns false if the key doesn't exist or data is expired.
// Use Get() to retrieve stale data as a fallback when upstream calls fail.
func (r *Repository) GetIfFresh(table, key string, dest interface{}) (bool, error) {
	if err := validateTable(table); err != nil {
		return false, err
	}

	now := time.Now().Unix()

	query := fmt.Sprintf(
		"SELECT data FROM %s WHERE cache_key = ? AND expires_at > ?",
		table,
	)

	var blob []byte
	err := r.db.QueryRow(query, key, now).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get data from %s: %w", table, err)
	}

	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal data from %s: %w", table, err)
	}

	return true, nil
}

// Get decodes data into dest regardless of expiration status.
// Use this as a fallback when upstream calls fail - stale data is better than no data.
// Returns false if the key doesn't exist.
func (r *Repository) Get(table, key string, dest interface{}) (bool, error) {
	if err := validateTable(table); err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE cache_key = ?", table)

	var blob []byte
	err := r.db.QueryRow(query, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get data from %s: %w", table, err)
	}

	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal data from %s: %w", table, err)
	}

	return true, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(table, key string) error {
	if err := validateTable(table); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE cache_key = ?", table)

	_, err := r.db.Exec(query, key)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired(table string) (int64, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}

	now := time.Now().Unix()

	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at < ?", table)

	result, err := r.db.Exec(query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired from %s: %w", table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", table, err)
	}

	return deleted, nil
}

// DeleteAllExpired removes all expired entries from all tables.
// Returns a map of table name to number of rows deleted.
func (r *Repository) DeleteAllExpired() (map[string]int64, error) {
	results := make(map[string]int64)

	for _, table := range AllTables {
		deleted, err := r.DeleteExpired(table)
		if err != nil {
			return results, fmt.Errorf("failed to delete expired from %s: %w", table, err)
		}
		results[table] = deleted
	}

	return results, nil
}

// Package menu groups per-variant forecast records into display-ready menu
// entries, merging them with the static catalog.
package menu

// PredictionRecord is one time bucket of raw predictions: a date, week or
// hour key mapped to quantities per raw variant label. The key set is sparse
// and varies per record.
type PredictionRecord struct {
	TimeKey     string             `json:"timeKey"`
	Predictions map[string]float64 `json:"predictions"`
}

// CatalogEntry is a static menu item: its display name, size labels, prices
// aligned to sizes, and declared ingredient labels.
type CatalogEntry struct {
	Name        string   `json:"name"`
	Sizes       []string `json:"sizes"`
	Prices      []string `json:"prices"`
	Ingredients []string `json:"ingredients"`
	Image       string   `json:"image"`
}

// Entry is a display-ready menu item. Entries are rebuilt wholesale on every
// fetch cycle and IDs are re-assigned each rebuild, so callers must not
// persist IDs across rebuilds.
type Entry struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"displayName"`
	Sizes         []string `json:"sizes"`
	Prices        []string `json:"prices"`
	VariantKeys   []string `json:"variantKeys"`
	TodayForecast int      `json:"todayForecast"`
	Image         string   `json:"image"`
}

// Sort metrics accepted by the list endpoint.
const (
	SortForecastDesc = "forecast_desc"
	SortForecastAsc  = "forecast_asc"
	SortNameAsc      = "name_asc"
	SortNameDesc     = "name_desc"
)

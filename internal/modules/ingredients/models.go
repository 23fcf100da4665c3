package ingredients

// Row is one line of the ingredients table. PriceDelta, Stock and HasWarning
// are placeholder merchandising fields derived deterministically from the
// ingredient name until purchasing data is integrated.
type Row struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	PriceDelta float64 `json:"priceDelta"`
	Stock      int     `json:"stock"`
	HasWarning bool    `json:"hasWarning"`
}

// UsagePoint is one chart entry of an ingredient usage series. Past and
// current buckets render solid, future buckets dotted.
type UsagePoint struct {
	Label        string   `json:"label"`
	SolidOrange  *float64 `json:"solidOrange,omitempty"`
	DottedOrange *float64 `json:"dottedOrange,omitempty"`
}

// UsageSeries is the usage chart for one ingredient over a window.
type UsageSeries struct {
	Ingredient  string       `json:"ingredient"`
	Window      string       `json:"window"` // "daily" or "weekly"
	Points      []UsagePoint `json:"points"`
	AverageNeed float64      `json:"averageNeed"`
}

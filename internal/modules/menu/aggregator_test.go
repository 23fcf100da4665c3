package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []PredictionRecord {
	return []PredictionRecord{
		{
			TimeKey: "2025-06-01T00:00:00",
			Predictions: map[string]float64{
				"Pizza Margherita (pâte S)": 10.4,
				"Pizza Margherita (pâte M)": 5.2,
				"Pizza Margherita (pâte L)": 2.0,
				"Merguez 30'":               7.0,
				"Sauce Tomate":              99.0,
				"bordure fine":              4.0,
			},
		},
		{
			TimeKey: "2025-06-02T00:00:00",
			Predictions: map[string]float64{
				"Pizza Margherita (pâte S)": 50.0,
				"Merguez 30'":               3.0,
			},
		},
	}
}

func TestAggregate_GroupsVariantsAcrossSizes(t *testing.T) {
	entries := Aggregate(testRecords(), Catalog, "2025-06-01")
	require.Len(t, entries, 2)

	var margherita *Entry
	for i := range entries {
		if entries[i].DisplayName == "Pizza Margherita" {
			margherita = &entries[i]
		}
	}
	require.NotNil(t, margherita)

	assert.Equal(t, []string{"25 cm", "30 cm", "35 cm"}, margherita.Sizes)
	assert.Equal(t, []string{"350da", "450da", "650da"}, margherita.Prices)
	assert.Equal(t, []string{
		"Pizza Margherita (pâte L)",
		"Pizza Margherita (pâte M)",
		"Pizza Margherita (pâte S)",
	}, margherita.VariantKeys)
	assert.NotEmpty(t, margherita.ID)
}

func TestAggregate_TodayForecastSumsOnlyToday(t *testing.T) {
	entries := Aggregate(testRecords(), Catalog, "2025-06-01")

	for _, e := range entries {
		switch e.DisplayName {
		case "Pizza Margherita":
			// 10.4 + 5.2 + 2.0 rounded
			assert.Equal(t, 18, e.TodayForecast)
		case "Merguez":
			assert.Equal(t, 7, e.TodayForecast)
		}
	}
}

func TestAggregate_TodayForecastFloorsNegativeSum(t *testing.T) {
	records := []PredictionRecord{
		{
			TimeKey:     "2025-06-01T00:00:00",
			Predictions: map[string]float64{"Merguez 30'": -3.2},
		},
	}

	entries := Aggregate(records, Catalog, "2025-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].TodayForecast)
}

func TestAggregate_SkipsNonVariantsAndCrustEntries(t *testing.T) {
	entries := Aggregate(testRecords(), Catalog, "2025-06-01")

	for _, e := range entries {
		assert.NotEqual(t, "Sauce Tomate", e.DisplayName)
		assert.NotContains(t, e.DisplayName, "bordure")
	}
}

func TestAggregate_MergesSpellingVariants(t *testing.T) {
	records := []PredictionRecord{
		{
			TimeKey: "2025-06-01T00:00:00",
			Predictions: map[string]float64{
				"Margharita 25'": 4.0,
				"Margherita 30'": 6.0,
			},
		},
	}

	entries := Aggregate(records, Catalog, "2025-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, "Margherita", entries[0].DisplayName)
	assert.Equal(t, []string{"25 cm", "30 cm"}, entries[0].Sizes)
	assert.Equal(t, 10, entries[0].TodayForecast)
}

func TestAggregate_OrderIndependence(t *testing.T) {
	records := testRecords()
	reversed := []PredictionRecord{records[1], records[0]}

	a := Aggregate(records, Catalog, "2025-06-01")
	b := Aggregate(reversed, Catalog, "2025-06-01")
	require.Equal(t, len(a), len(b))

	for i := range a {
		assert.Equal(t, a[i].DisplayName, b[i].DisplayName)
		assert.Equal(t, a[i].Sizes, b[i].Sizes)
		assert.Equal(t, a[i].Prices, b[i].Prices)
		assert.Equal(t, a[i].VariantKeys, b[i].VariantKeys)
		assert.Equal(t, a[i].TodayForecast, b[i].TodayForecast)
	}
}

func TestAggregate_DisplayNameDeterministicAcrossCasings(t *testing.T) {
	// Two casings of the same item inside one record exercise map iteration
	// order. The display name must not depend on which key comes up first.
	records := []PredictionRecord{
		{
			TimeKey: "2025-06-01T00:00:00",
			Predictions: map[string]float64{
				"Pizza Thon 30'": 6.0,
				"PIZZA THON 25'": 4.0,
			},
		},
	}

	for i := 0; i < 50; i++ {
		entries := Aggregate(records, Catalog, "2025-06-01")
		require.Len(t, entries, 1)
		assert.Equal(t, "PIZZA THON", entries[0].DisplayName)
		assert.Equal(t, 10, entries[0].TodayForecast)
	}
}

func TestAggregate_SynthesizesPricesForUnknownItems(t *testing.T) {
	records := []PredictionRecord{
		{
			TimeKey:     "2025-06-01T00:00:00",
			Predictions: map[string]float64{"Pizza Mystere 30'": 5.0},
		},
	}

	entries := Aggregate(records, Catalog, "2025-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"450da"}, entries[0].Prices)
	assert.Equal(t, DefaultImage, entries[0].Image)
}

func TestAggregate_CatalogSubstringFallback(t *testing.T) {
	// "pizza thon fume" is not an exact catalog key but contains "thon",
	// so it picks up the Thon catalog entry. Short catalog names make this
	// fallback greedy on purpose.
	records := []PredictionRecord{
		{
			TimeKey:     "2025-06-01T00:00:00",
			Predictions: map[string]float64{"Pizza Thon fumé 30'": 2.0},
		},
	}

	entries := Aggregate(records, Catalog, "2025-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"500da"}, entries[0].Prices)
}

func TestSortEntries(t *testing.T) {
	base := []Entry{
		{DisplayName: "B", TodayForecast: 5},
		{DisplayName: "A", TodayForecast: 5},
		{DisplayName: "C", TodayForecast: 9},
	}

	desc := append([]Entry(nil), base...)
	SortEntries(desc, SortForecastDesc)
	assert.Equal(t, []string{"C", "A", "B"}, names(desc))

	asc := append([]Entry(nil), base...)
	SortEntries(asc, SortForecastAsc)
	assert.Equal(t, []string{"A", "B", "C"}, names(asc))

	nameAsc := append([]Entry(nil), base...)
	SortEntries(nameAsc, SortNameAsc)
	assert.Equal(t, []string{"A", "B", "C"}, names(nameAsc))

	nameDesc := append([]Entry(nil), base...)
	SortEntries(nameDesc, SortNameDesc)
	assert.Equal(t, []string{"C", "B", "A"}, names(nameDesc))
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.DisplayName
	}
	return out
}

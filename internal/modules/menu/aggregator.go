package menu

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/restodash/restodash/internal/modules/variant"
)

// sizeOrder fixes the display order of canonical sizes.
var sizeOrder = map[string]int{
	variant.SizeSmall:  0,
	variant.SizeMedium: 1,
	variant.SizeLarge:  2,
}

// sizeLabels maps canonical sizes to display labels.
var sizeLabels = map[string]string{
	variant.SizeSmall:  "25 cm",
	variant.SizeMedium: "30 cm",
	variant.SizeLarge:  "35 cm",
}

// sizeCentimeters backs the synthesized price formula.
var sizeCentimeters = map[string]int{
	variant.SizeSmall:  25,
	variant.SizeMedium: 30,
	variant.SizeLarge:  35,
}

// group accumulates everything seen for one canonical base name.
type group struct {
	displayBase string
	variantKeys []string
	keySeen     map[string]bool
	sizes       map[string]bool
}

// Aggregate groups per-variant forecast records into menu entries and merges
// them with the static catalog. today selects the record whose time key
// matches for the today-forecast sum. The result is a pure function of the
// inputs: each group's display name is the lexicographically smallest base
// seen for it, so neither record order nor map iteration order leaks through.
func Aggregate(records []PredictionRecord, catalog []CatalogEntry, today string) []Entry {
	groups := make(map[string]*group)
	var groupOrder []string

	for _, record := range records {
		for rawKey := range record.Predictions {
			if !variant.IsVariant(rawKey) {
				continue
			}

			parsed := variant.Parse(rawKey)
			canonical := variant.CanonicalKey(parsed.Base)
			if canonical == "" {
				continue
			}

			g, ok := groups[canonical]
			if !ok {
				g = &group{
					displayBase: parsed.Base,
					keySeen:     make(map[string]bool),
					sizes:       make(map[string]bool),
				}
				groups[canonical] = g
				groupOrder = append(groupOrder, canonical)
			} else if parsed.Base < g.displayBase {
				g.displayBase = parsed.Base
			}

			if !g.keySeen[rawKey] {
				g.keySeen[rawKey] = true
				g.variantKeys = append(g.variantKeys, rawKey)
			}
			if parsed.Size != "" {
				g.sizes[parsed.Size] = true
			}
		}
	}

	// Canonical ordering keeps the output independent of record order.
	sort.Strings(groupOrder)

	entries := make([]Entry, 0, len(groups))
	for _, canonical := range groupOrder {
		g := groups[canonical]
		sort.Strings(g.variantKeys)

		sizes := orderedSizes(g.sizes)
		catalogEntry := matchCatalog(canonical, catalog)

		var prices []string
		image := DefaultImage
		if catalogEntry != nil {
			prices = alignPrices(catalogEntry, sizes)
			image = catalogEntry.Image
		} else {
			prices = synthesizePrices(sizes)
		}

		entries = append(entries, Entry{
			ID:            uuid.NewString(),
			DisplayName:   g.displayBase,
			Sizes:         sizeDisplayLabels(sizes),
			Prices:        prices,
			VariantKeys:   g.variantKeys,
			TodayForecast: todayForecast(records, g, today),
			Image:         image,
		})
	}

	return entries
}

// todayForecast sums the group's variant quantities for the record matching
// today. Negative sums floor to zero.
func todayForecast(records []PredictionRecord, g *group, today string) int {
	sum := 0.0
	for _, record := range records {
		if datePart(record.TimeKey) != today {
			continue
		}
		for _, key := range g.variantKeys {
			if v, ok := record.Predictions[key]; ok {
				sum += v
			}
		}
	}

	if sum < 0 {
		sum = 0
	}
	return int(math.Round(sum))
}

// matchCatalog finds the static catalog entry for a canonical key: exact
// canonical equality first, then substring containment in either direction.
// The containment fallback is best-effort and can cross-match short names.
func matchCatalog(canonical string, catalog []CatalogEntry) *CatalogEntry {
	for i := range catalog {
		if variant.CanonicalKey(catalog[i].Name) == canonical {
			return &catalog[i]
		}
	}

	for i := range catalog {
		catalogKey := variant.CanonicalKey(catalog[i].Name)
		if strings.Contains(canonical, catalogKey) || strings.Contains(catalogKey, canonical) {
			return &catalog[i]
		}
	}

	return nil
}

// orderedSizes returns the seen canonical sizes in S, M, L order.
func orderedSizes(seen map[string]bool) []string {
	sizes := make([]string, 0, len(seen))
	for size := range seen {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizeOrder[sizes[i]] < sizeOrder[sizes[j]] })
	return sizes
}

func sizeDisplayLabels(sizes []string) []string {
	labels := make([]string, 0, len(sizes))
	for _, size := range sizes {
		labels = append(labels, sizeLabels[size])
	}
	return labels
}

// alignPrices picks the catalog price for each seen size by its position in
// the catalog's size list, synthesizing when the catalog has no price at that
// position.
func alignPrices(catalogEntry *CatalogEntry, sizes []string) []string {
	prices := make([]string, 0, len(sizes))
	for _, size := range sizes {
		idx := sizeOrder[size]
		if idx < len(catalogEntry.Prices) {
			prices = append(prices, catalogEntry.Prices[idx])
		} else {
			prices = append(prices, synthesizePrice(size))
		}
	}
	return prices
}

// synthesizePrices builds a default ascending price list for items missing
// from the catalog.
func synthesizePrices(sizes []string) []string {
	if len(sizes) == 0 {
		return []string{synthesizePrice(variant.SizeSmall)}
	}

	prices := make([]string, 0, len(sizes))
	for _, size := range sizes {
		prices = append(prices, synthesizePrice(size))
	}
	return prices
}

// synthesizePrice prices a size at 15 dinars per centimeter of diameter.
func synthesizePrice(size string) string {
	cm, ok := sizeCentimeters[size]
	if !ok {
		cm = 25
	}
	return fmt.Sprintf("%dda", cm*15)
}

// datePart trims a timestamp like "2025-06-01T00:00:00" down to its date.
func datePart(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// SortEntries orders entries by the requested metric. Forecast sorts break
// ties by display name. Unknown metrics leave the canonical name order.
func SortEntries(entries []Entry, sortBy string) {
	switch sortBy {
	case SortForecastDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].TodayForecast != entries[j].TodayForecast {
				return entries[i].TodayForecast > entries[j].TodayForecast
			}
			return entries[i].DisplayName < entries[j].DisplayName
		})
	case SortForecastAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].TodayForecast != entries[j].TodayForecast {
				return entries[i].TodayForecast < entries[j].TodayForecast
			}
			return entries[i].DisplayName < entries[j].DisplayName
		})
	case SortNameAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].DisplayName < entries[j].DisplayName
		})
	case SortNameDesc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].DisplayName > entries[j].DisplayName
		})
	}
}

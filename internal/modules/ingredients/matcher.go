// Package ingredients derives ingredient tables and usage forecasts from the
// ingredient prediction service.
package ingredients

import (
	"strings"
)

// synonymFragments links catalog labels to the French prediction labels when
// substring matching alone cannot bridge the languages. Both sides are
// compared lowercased.
var synonymFragments = map[string][]string{
	"tomato":    {"sauce tomate", "tomate"},
	"olive oil": {"huile d'olive"},
	"cheese":    {"fromage", "mozzarella"},
	"cream":     {"creme fraiche", "crème fraîche"},
	"mushroom":  {"champignon"},
	"pepper":    {"poivron"},
	"onion":     {"oignon"},
}

// Match finds the predicted quantity for an ingredient label in a prediction
// map. Matching is two-stage: case-insensitive substring containment in
// either direction, then the synonym fragment table. The maximum matched
// value wins, so table ordering never affects the result. Returns 0 when no
// key matches.
func Match(label string, predictions map[string]float64) float64 {
	needle := strings.ToLower(strings.TrimSpace(label))
	if needle == "" {
		return 0
	}

	best := 0.0
	matched := false

	for key, value := range predictions {
		if matchesKey(needle, strings.ToLower(key)) {
			if !matched || value > best {
				best = value
				matched = true
			}
		}
	}

	if !matched {
		return 0
	}
	return best
}

// matchesKey reports whether a lowercased label corresponds to a lowercased
// prediction key.
func matchesKey(label, key string) bool {
	if strings.Contains(key, label) || strings.Contains(label, key) {
		return true
	}

	for fragment, aliases := range synonymFragments {
		labelHasFragment := strings.Contains(label, fragment)
		keyHasFragment := strings.Contains(key, fragment)

		for _, alias := range aliases {
			if labelHasFragment && strings.Contains(key, alias) {
				return true
			}
			if keyHasFragment && strings.Contains(label, alias) {
				return true
			}
		}
	}

	return false
}

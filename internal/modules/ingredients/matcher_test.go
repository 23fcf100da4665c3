package ingredients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_SynonymTable(t *testing.T) {
	predictions := map[string]float64{
		"Sauce Tomate": 15.5,
		"Mozzarella":   20,
	}

	assert.InDelta(t, 15.5, Match("Tomato Sauce", predictions), 0.001)
}

func TestMatch_SubstringBothDirections(t *testing.T) {
	predictions := map[string]float64{
		"Mozzarella di Bufala": 12,
		"Champignons":          7.5,
	}

	// Label contained in key
	assert.InDelta(t, 12, Match("Mozzarella", predictions), 0.001)
	// Key contained in label
	assert.InDelta(t, 7.5, Match("Champignons frais", predictions), 0.001)
}

func TestMatch_CaseInsensitive(t *testing.T) {
	predictions := map[string]float64{"MERGUEZ": 9}
	assert.InDelta(t, 9, Match("merguez", predictions), 0.001)
}

func TestMatch_TakesMaximum(t *testing.T) {
	predictions := map[string]float64{
		"Sauce Tomate":        5,
		"Tomates en dés":      0,
		"Sauce tomate épicée": 11,
	}

	assert.InDelta(t, 11, Match("Tomato", predictions), 0.001)
}

func TestMatch_NoMatch(t *testing.T) {
	predictions := map[string]float64{"Anchois": 3}

	assert.Equal(t, 0.0, Match("Pineapple", predictions))
	assert.Equal(t, 0.0, Match("", predictions))
	assert.Equal(t, 0.0, Match("Anchois", nil))
}

func TestMatch_OliveOil(t *testing.T) {
	predictions := map[string]float64{"Huile d'olive": 2.5}
	assert.InDelta(t, 2.5, Match("Olive Oil", predictions), 0.001)
}

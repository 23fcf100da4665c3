// Package variant parses raw forecast labels into (base item, size) pairs.
// The prediction service emits free-form French labels like "Pizza Margherita
// (pâte L)" or "Merguez 30'" and is not consistent about spelling or accents,
// so grouping happens on a normalized canonical key rather than raw strings.
package variant

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParsedVariant is the result of parsing a raw variant label.
// Size is empty when the label carries no recognizable size marker.
type ParsedVariant struct {
	Base string `json:"base"`
	Size string `json:"size,omitempty"`
}

// Canonical sizes in menu order.
const (
	SizeSmall  = "S"
	SizeMedium = "M"
	SizeLarge  = "L"
)

var (
	// Pattern A: "<base> (pâte L)" - crust-size suffix, accent optional.
	doughPattern = regexp.MustCompile(`(?i)^(.+?)\s*\(\s*p[aâ]te\s+([SML])\s*\)\s*$`)

	// Pattern B: "<base> 30'" - diameter suffix in centimeters.
	diameterPattern = regexp.MustCompile(`^(.+?)\s+(25|30|35)'\s*$`)

	// Fallback cleanup: strip any "(pâte X)" fragment wherever it appears.
	doughFragment = regexp.MustCompile(`(?i)\(\s*p[aâ]te\s+[SML]\s*\)`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// diameterSizes maps diameter markers to canonical sizes.
var diameterSizes = map[string]string{
	"25": SizeSmall,
	"30": SizeMedium,
	"35": SizeLarge,
}

// synonyms fixes known misspellings and canonicalizes display names.
// Keys are canonical (lowercased, accent-stripped) forms.
var synonyms = map[string]string{
	"margharita": "Margherita",
	"margherita": "Margherita",
	"merguez":    "Merguez",
}

// variantTokens mark a label as a pizza/topping variant when present in its
// lowercased form.
var variantTokens = []string{"pizza", "25'", "30'", "35'", "bordure"}

// excludedKeys are crust-only entries that are not standalone menu items.
var excludedKeys = map[string]bool{
	"bordure fine":           true,
	"bordure traditionnelle": true,
}

var diacriticsRemover = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Parse extracts the base item name and canonical size from a raw label.
// Labels matching neither size pattern still normalize through the fallback
// path, so the returned base is always non-empty for non-blank input.
func Parse(raw string) ParsedVariant {
	trimmed := strings.TrimSpace(raw)

	if m := doughPattern.FindStringSubmatch(trimmed); m != nil {
		return ParsedVariant{
			Base: NormalizeBase(m[1]),
			Size: strings.ToUpper(m[2]),
		}
	}

	if m := diameterPattern.FindStringSubmatch(trimmed); m != nil {
		return ParsedVariant{
			Base: NormalizeBase(m[1]),
			Size: diameterSizes[m[2]],
		}
	}

	// Fallback: strip a leading "pizza" token and any dough fragment.
	rest := doughFragment.ReplaceAllString(trimmed, " ")
	lower := strings.ToLower(rest)
	if strings.HasPrefix(lower, "pizza ") {
		rest = rest[len("pizza "):]
	}

	return ParsedVariant{Base: NormalizeBase(rest)}
}

// NormalizeBase strips diacritics, collapses whitespace runs, and applies the
// synonym table so that spelling variants group together.
func NormalizeBase(s string) string {
	stripped, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		stripped = s
	}

	collapsed := strings.TrimSpace(whitespaceRun.ReplaceAllString(stripped, " "))

	if canonical, ok := synonyms[strings.ToLower(collapsed)]; ok {
		return canonical
	}

	return collapsed
}

// CanonicalKey lowercases and whitespace-normalizes a base name for grouping.
// Never shown to users.
func CanonicalKey(base string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(base, " ")))
}

// IsVariant reports whether a raw label denotes a pizza/topping variant.
// Crust-only entries like "bordure fine" are excluded even though they carry
// a variant token, since they are not standalone menu items.
func IsVariant(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))

	if excludedKeys[lower] {
		return false
	}

	for _, token := range variantTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	return false
}

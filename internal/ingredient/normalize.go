// Package ingredient extracts canonical ingredient names from free-text
// quantity+ingredient strings and defines the loose name matching used to
// reconcile meal plan ingredients with inventory.
package ingredient

import (
	"strings"
	"unicode"
)

// descriptorSuffixes are preparation notes stripped from ingredient strings.
// Truncation happens at the first occurrence of any of them.
var descriptorSuffixes = []string{", chopped", ", diced", ", sliced", ", minced"}

// unitWords are measurement tokens that may follow a leading quantity, as in
// "500 g flour" or "2 cups rice".
var unitWords = map[string]bool{
	"g": true, "gram": true, "grams": true,
	"kg": true, "ml": true, "l": true, "liter": true, "liters": true,
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "lb": true, "lbs": true,
	"piece": true, "pieces": true, "slices": true, "cloves": true,
	"pinch": true, "pinches": true,
}

// Normalize extracts a canonical lowercase ingredient name from a free-text
// string like "2 cups rice, chopped". It is a heuristic, not a grammar: on
// input it cannot parse it returns the trimmed, lowercased original.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	// Drop a leading quantity token ("2", "500g", "1/2") and, if one
	// follows, a bare unit token.
	if first, rest, ok := strings.Cut(s, " "); ok && containsDigit(first) {
		s = strings.TrimSpace(rest)
		if unit, rest, ok := strings.Cut(s, " "); ok && unitWords[strings.ToLower(unit)] {
			s = strings.TrimSpace(rest)
		}
	}

	lower := strings.ToLower(s)
	for _, suffix := range descriptorSuffixes {
		if idx := strings.Index(lower, suffix); idx >= 0 {
			s = s[:idx]
			lower = lower[:idx]
		}
	}

	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether two item names refer to the same thing under the
// fuzzy containment rule: case-insensitive, and either string may be a
// substring of the other. The looseness is intentional, "rice" matches
// "wild rice mix", and it is isolated here so it stays testable.
func Matches(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// MatchesAny reports whether name fuzzy-matches any of the candidates.
func MatchesAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if Matches(name, c) {
			return true
		}
	}
	return false
}

// Title capitalizes the first letter of each word for display, mirroring how
// normalized lowercase names are presented on shopping lists.
func Title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

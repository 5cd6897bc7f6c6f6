// Package names provides name normalization, prefix stripping and symbol
// tagging for person and organization names. It backs the heuristic
// classification used during mention resolution and the deduplication keys
// used by the aggregator.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Latinize folds diacritics into their base characters ("Müller" -> "Muller").
func Latinize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpaces trims the string and collapses internal whitespace runs
// into single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize produces the canonical comparison form of a name: diacritics
// folded, lowercased, punctuation replaced by spaces, whitespace collapsed.
// Returns "" when nothing survives normalization.
func Normalize(name string) string {
	folded := strings.ToLower(Latinize(name))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return CollapseSpaces(b.String())
}

// Tokenize splits a name into its normalized tokens.
func Tokenize(name string) []string {
	normalized := Normalize(name)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// Clean trims a raw name value and collapses whitespace without lowercasing,
// preserving the original casing for display.
func Clean(name string) string {
	return CollapseSpaces(name)
}

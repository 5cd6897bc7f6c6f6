package names

import "strings"

// Category classifies a tagged name symbol.
type Category string

// Symbol categories produced by the taggers.
const (
	CategoryName     Category = "NAME"
	CategoryOrgClass Category = "ORG_CLASS"
)

// Symbol identifies a recognized name token. The ID is stable across runs
// and is used verbatim in annotated-text query tokens.
type Symbol struct {
	ID       string
	Category Category
}

// TagPersonName tags the tokens of a name against the person-name lexicon.
// Each token known as a given name or surname yields one NAME symbol.
func TagPersonName(name string) []Symbol {
	var symbols []Symbol
	for _, token := range Tokenize(name) {
		if personNameTokens[token] {
			symbols = append(symbols, Symbol{
				ID:       "NAME_" + strings.ToUpper(token),
				Category: CategoryName,
			})
		}
	}
	return symbols
}

// TagOrgName tags the tokens of a name against the organization lexicon.
// Legal-form tokens (Ltd, GmbH, Inc, ...) yield ORG_CLASS symbols.
func TagOrgName(name string) []Symbol {
	var symbols []Symbol
	for _, token := range Tokenize(name) {
		if orgClassTokens[token] {
			symbols = append(symbols, Symbol{
				ID:       "ORG_" + strings.ToUpper(token),
				Category: CategoryOrgClass,
			})
		}
	}
	return symbols
}

// RemoveOrgClassTokens drops legal-form tokens from a name, keeping the
// original casing of what remains.
func RemoveOrgClassTokens(name string) string {
	var kept []string
	for _, word := range strings.Fields(name) {
		if !orgClassTokens[Normalize(word)] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// Symbols returns the union of person and organization symbol IDs for the
// given names.
func Symbols(values ...string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, value := range values {
		for _, s := range TagPersonName(value) {
			out[s.ID] = struct{}{}
		}
		for _, s := range TagOrgName(value) {
			out[s.ID] = struct{}{}
		}
	}
	return out
}

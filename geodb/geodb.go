// Package geodb resolves place names against a geographical names service
// and a small embedded gazetteer. The resolution pipeline uses it to attach
// canonical toponyms and country codes to location mentions.
package geodb

import (
	"context"
	"strings"

	"github.com/c360studio/semextract/names"
)

// Location is one candidate match for a place name.
type Location struct {
	// Name is the canonical toponym as known to the backing service.
	Name string `json:"name"`
	// CountryCode is the lowercased ISO 3166-1 alpha-2 country.
	CountryCode string `json:"country_code"`
}

// Tagger looks up candidate locations for a raw place name. Implementations
// must be safe for concurrent use.
type Tagger interface {
	TagLocations(ctx context.Context, name string) ([]Location, error)
}

// FixtureTagger serves lookups from a static table, keyed by normalized
// name. It backs tests and offline runs.
type FixtureTagger struct {
	locations map[string][]Location
}

// NewFixtureTagger builds a tagger over the given entries. Keys are
// normalized on insert, so callers can use display forms.
func NewFixtureTagger(entries map[string][]Location) *FixtureTagger {
	t := &FixtureTagger{locations: make(map[string][]Location, len(entries))}
	for name, locs := range entries {
		t.locations[names.Normalize(name)] = locs
	}
	return t
}

// TagLocations implements Tagger.
func (t *FixtureTagger) TagLocations(_ context.Context, name string) ([]Location, error) {
	return t.locations[names.Normalize(name)], nil
}

// LocationCountries returns the country codes the embedded gazetteer
// associates with a place name, or nil for unknown places. It covers
// country names and a set of major cities, enough to turn bare toponyms in
// extracted text into country hints without a network call.
func LocationCountries(name string) []string {
	key := names.Normalize(name)
	if key == "" {
		return nil
	}
	if codes, ok := gazetteer[key]; ok {
		return strings.Split(codes, " ")
	}
	return nil
}

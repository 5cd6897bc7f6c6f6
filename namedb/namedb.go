// Package namedb provides the client surface of the name intelligence
// service used during mention resolution: schema prediction for raw names,
// person-name validation, and lookup of known entities by name.
package namedb

import "context"

// SchemaPrediction is the classifier's guess for a name.
type SchemaPrediction struct {
	// NerTag is the predicted tag ("PER", "ORG", "LOC" or "OTHER").
	NerTag string `json:"ner_tag"`
	// Score is the classifier confidence in [0, 1].
	Score float64 `json:"score"`
}

// LookupResult is one known entity matched against a queried name.
type LookupResult struct {
	// Caption is the entity's display name.
	Caption string `json:"caption"`
	// Score is the match confidence in [0, 1].
	Score float64 `json:"score"`
	// Names lists all names known for the entity.
	Names []string `json:"names"`
	// Schemata lists the entity's schema candidates, most specific first.
	Schemata []string `json:"schemata"`
	// Countries lists associated ISO country codes.
	Countries []string `json:"countries"`
	// EntityID identifies the matched entity, when the service exposes it.
	EntityID string `json:"entity_id,omitempty"`
}

// Client is the name intelligence service interface. Implementations must
// be safe for concurrent use.
type Client interface {
	// PredictSchema classifies a raw name string.
	PredictSchema(ctx context.Context, name string) (*SchemaPrediction, error)
	// ValidateName reports whether a string is plausibly a person name.
	ValidateName(ctx context.Context, name string) (bool, error)
	// Lookup finds known entities matching the name, best match first.
	Lookup(ctx context.Context, name string) ([]LookupResult, error)
}

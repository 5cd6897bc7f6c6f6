package resolve

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/namedb"
)

// Thresholds for the name service stages.
const (
	// classifierThreshold is the minimum prediction score before the
	// classifier's verdict overrides the extraction tag.
	classifierThreshold = 0.9
	// lookupThreshold is the minimum match score before a known entity is
	// adopted.
	lookupThreshold = 0.8
	// longOrgLength guards organization names against person
	// mispredictions; long strings are rarely person names.
	longOrgLength = 20
)

// ClassifierStage re-tags mentions with the name service's schema
// prediction and drops what ends up classified as noise.
type ClassifierStage struct {
	client namedb.Client
	cache  *lru.Cache[classifierKey, string]
}

type classifierKey struct {
	name string
	tag  string
}

// NewClassifierStage creates the stage.
func NewClassifierStage(client namedb.Client) *ClassifierStage {
	cache, err := lru.New[classifierKey, string](stageCacheSize)
	if err != nil {
		panic("resolve: classifier cache: " + err.Error())
	}
	return &ClassifierStage{client: client, cache: cache}
}

// Name implements Stage.
func (s *ClassifierStage) Name() string {
	return "namedb-classifier"
}

// classifyPrediction turns a schema prediction into the mention's new tag,
// given its pre-classification tag.
func classifyPrediction(p namedb.SchemaPrediction, name, tag string) string {
	if p.Score > classifierThreshold {
		switch p.NerTag {
		case extract.TagLocation, extract.TagOther:
			// A location or noise prediction cannot promote a name
			// mention; an existing LOC tag keeps a LOC prediction.
			if tag != extract.TagLocation {
				return extract.TagOther
			}
			return p.NerTag
		case extract.TagPerson:
			// Long names with corporate words are entities, not people.
			if tag == extract.TagOrg && len(name) > longOrgLength {
				return extract.TagOrg
			}
			return extract.TagPerson
		default:
			return p.NerTag
		}
	}
	// No confident prediction. The org heuristic may still hold; nothing
	// else survives the classifier.
	if classifyRigour(name) == extract.TagOrg {
		return extract.TagOrg
	}
	return extract.TagOther
}

// classify memoizes the tag verdict per (name, tag) pair.
func (s *ClassifierStage) classify(ctx context.Context, name, tag string) (string, error) {
	key := classifierKey{name: name, tag: tag}
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	prediction, err := s.client.PredictSchema(ctx, name)
	if err != nil {
		return "", err
	}
	var p namedb.SchemaPrediction
	if prediction != nil {
		p = *prediction
	}
	classified := classifyPrediction(p, name, tag)
	s.cache.Add(key, classified)
	return classified, nil
}

// Process implements Stage.
func (s *ClassifierStage) Process(ctx context.Context, m *Mention) error {
	value := m.Representative()
	if value == "" {
		m.Reject(s.Name(), "empty mention")
		return nil
	}
	tag, err := s.classify(ctx, value, m.Tag)
	if err != nil {
		return fmt.Errorf("predict schema: %w", err)
	}
	if tag == extract.TagOther {
		m.Reject(s.Name(), "classified as other")
		return nil
	}
	m.Tag = tag
	return nil
}

// ValidatorStage drops person mentions whose name the service considers
// implausible.
type ValidatorStage struct {
	client namedb.Client
}

// NewValidatorStage creates the stage.
func NewValidatorStage(client namedb.Client) *ValidatorStage {
	return &ValidatorStage{client: client}
}

// Name implements Stage.
func (s *ValidatorStage) Name() string {
	return "namedb-validator"
}

// Process implements Stage.
func (s *ValidatorStage) Process(ctx context.Context, m *Mention) error {
	if m.Tag != extract.TagPerson {
		return nil
	}
	valid, err := s.client.ValidateName(ctx, m.Representative())
	if err != nil {
		return fmt.Errorf("validate name: %w", err)
	}
	if !valid {
		m.Reject(s.Name(), "name validation failed")
	}
	return nil
}

// LookupStage matches mentions against known entities and adopts the best
// match's canonical name, schema and countries.
type LookupStage struct {
	client namedb.Client
}

// NewLookupStage creates the stage.
func NewLookupStage(client namedb.Client) *LookupStage {
	return &LookupStage{client: client}
}

// Name implements Stage.
func (s *LookupStage) Name() string {
	return "namedb-lookup"
}

// Process implements Stage.
func (s *LookupStage) Process(ctx context.Context, m *Mention) error {
	results, err := s.client.Lookup(ctx, m.Representative())
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	for _, result := range results {
		if result.Score < lookupThreshold {
			continue
		}
		m.CanonicalValue = result.Caption
		m.ResolvedEntityID = result.EntityID
		for _, name := range result.Names {
			m.ResolvedValues = appendUnique(m.ResolvedValues, name)
		}
		if len(result.Schemata) > 0 {
			m.ResolvedSchema = result.Schemata[0]
		}
		for _, country := range result.Countries {
			m.AddCountry(country)
		}
		return nil
	}
	return nil
}

func appendUnique(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

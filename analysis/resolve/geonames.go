package resolve

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xrash/smetrics"

	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/geodb"
	"github.com/c360studio/semextract/names"
)

// geoMatchThreshold is the minimum Jaro similarity between a mention and a
// candidate toponym.
const geoMatchThreshold = 0.9

// GeonamesStage matches location mentions against the geographical names
// service, attaching canonical toponyms and countries.
type GeonamesStage struct {
	tagger          geodb.Tagger
	cache           *lru.Cache[string, *geodb.Location]
	rejectUnmatched bool
}

// GeonamesOption configures the stage.
type GeonamesOption func(*GeonamesStage)

// WithRejectUnmatched drops location mentions no toponym matched instead
// of passing them through.
func WithRejectUnmatched() GeonamesOption {
	return func(s *GeonamesStage) {
		s.rejectUnmatched = true
	}
}

// NewGeonamesStage creates the stage.
func NewGeonamesStage(tagger geodb.Tagger, opts ...GeonamesOption) *GeonamesStage {
	cache, err := lru.New[string, *geodb.Location](stageCacheSize)
	if err != nil {
		panic("resolve: geonames cache: " + err.Error())
	}
	s := &GeonamesStage{tagger: tagger, cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Stage.
func (s *GeonamesStage) Name() string {
	return "geonames"
}

// refine memoizes the toponym match per value. A nil location means the
// value is a known non-match; service errors are not cached.
func (s *GeonamesStage) refine(ctx context.Context, value string) (*geodb.Location, error) {
	if location, ok := s.cache.Get(value); ok {
		return location, nil
	}
	// Person-shaped strings mislabeled as locations would match noise in
	// the gazetteer.
	if IsRigourPerson(value) {
		s.cache.Add(value, nil)
		return nil, nil
	}
	locations, err := s.tagger.TagLocations(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("tag locations: %w", err)
	}
	normalized := names.Normalize(value)
	for _, location := range locations {
		if smetrics.Jaro(normalized, names.Normalize(location.Name)) > geoMatchThreshold {
			matched := location
			s.cache.Add(value, &matched)
			return &matched, nil
		}
	}
	s.cache.Add(value, nil)
	return nil, nil
}

// Process implements Stage.
func (s *GeonamesStage) Process(ctx context.Context, m *Mention) error {
	if m.Tag != extract.TagLocation {
		return nil
	}
	for _, value := range m.ResolvedValues {
		location, err := s.refine(ctx, value)
		if err != nil {
			return err
		}
		if location != nil {
			m.CanonicalValue = location.Name
			m.AddCountry(location.CountryCode)
			return nil
		}
	}
	if s.rejectUnmatched {
		m.Reject(s.Name(), "no matching toponym")
	}
	return nil
}

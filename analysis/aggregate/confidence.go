package aggregate

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/names"
)

// TrashLabel marks classifier output for strings that are extraction noise
// rather than names.
const TrashLabel = "trash"

// Rejection reasons reported by the scorer.
const (
	ReasonTrash         = "trash_value"
	ReasonLowConfidence = "low_confidence"
)

// Classification is the classifier's verdict for one value.
type Classification struct {
	// Label is the predicted class.
	Label string `json:"label"`
	// Distribution is the probability mass over all classes.
	Distribution []float64 `json:"distribution"`
}

// Classifier scores candidate name strings. Implementations must be safe
// for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, values []string) ([]Classification, error)
}

// Scorer filters aggregated name entries by classifier confidence. Pattern
// and country entries pass through untouched; only NER name tags are
// scored.
type Scorer struct {
	classifier Classifier
	threshold  float64
}

// NewScorer creates a scorer rejecting entries below threshold.
func NewScorer(classifier Classifier, threshold float64) *Scorer {
	return &Scorer{classifier: classifier, threshold: threshold}
}

// confidence turns a probability distribution into a certainty score in
// [0, 1]: 1 for a one-hot distribution, 0 for uniform.
func confidence(distribution []float64) float64 {
	n := len(distribution)
	if n < 2 {
		return 1
	}
	var entropy float64
	for _, p := range distribution {
		if p > 0 {
			entropy += p * math.Log(p)
		}
	}
	return 1 + entropy/math.Log(float64(n))
}

func scorable(tag string) bool {
	switch tag {
	case extract.TagPerson, extract.TagOrg, extract.TagLocation:
		return true
	}
	return false
}

// Score classifies an entry's values and returns the rejection reason, or
// "" when the entry survives. The entry's confidence is lowered to the
// weakest value's score.
func (s *Scorer) Score(ctx context.Context, entry *Aggregated) (string, error) {
	if !scorable(entry.Tag) {
		return "", nil
	}
	queries := make([]string, len(entry.Values))
	for i, value := range entry.Values {
		queries[i] = strings.ToLower(names.Latinize(value))
	}
	classifications, err := s.classifier.Classify(ctx, queries)
	if err != nil {
		return "", fmt.Errorf("classify %q: %w", entry.Key, err)
	}
	low := 1.0
	for _, c := range classifications {
		if c.Label == TrashLabel {
			return ReasonTrash, nil
		}
		if conf := confidence(c.Distribution); conf < low {
			low = conf
		}
	}
	if low < s.threshold {
		return ReasonLowConfidence, nil
	}
	if entry.Confidence == nil || low < *entry.Confidence {
		entry.Confidence = &low
	}
	return "", nil
}

// Apply filters entries in place order, returning the survivors and
// per-reason rejection counts.
func (s *Scorer) Apply(ctx context.Context, entries []*Aggregated) ([]*Aggregated, map[string]int, error) {
	kept := make([]*Aggregated, 0, len(entries))
	rejected := map[string]int{}
	for _, entry := range entries {
		reason, err := s.Score(ctx, entry)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			rejected[reason]++
			continue
		}
		kept = append(kept, entry)
	}
	return kept, rejected, nil
}

// Package aggregate deduplicates extraction results into keyed entries.
// Every extractor's output for one document funnels through a single
// Aggregator, which collapses surface variants of the same value and
// tracks provenance and confidence.
package aggregate

import (
	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/names"
)

// MaxResults bounds the number of distinct entries per document. At the
// bound every further result is dropped, duplicates of known keys
// included.
const MaxResults = 10000

// Rejection reasons reported by Add.
const (
	ReasonMaxResults = "max_results_exceeded"
	ReasonInvalidKey = "invalid_key"
)

// Aggregated is one deduplicated entry: every extracted surface form that
// collapsed to the same (key, tag) pair.
type Aggregated struct {
	// Key is the deduplication key.
	Key string
	// Tag is the extraction tag shared by all values.
	Tag string
	// Values are the distinct surface forms, in first-seen order.
	Values []string
	// Sources are the distinct extractors that produced the values.
	Sources []string
	// Confidence is the highest score reported by any contributing
	// extractor, or nil when no extractor scored the value.
	Confidence *float64
	// Count is the number of results that fed the entry.
	Count int
}

type entryKey struct {
	key string
	tag string
}

// Aggregator collects extraction results for one document. Not safe for
// concurrent use; extraction feeds it from a single goroutine.
type Aggregator struct {
	entries map[entryKey]*Aggregated
	order   []entryKey
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{entries: map[entryKey]*Aggregated{}}
}

// keyFor derives the deduplication key for a result. Name tags collapse on
// the normalized name so casing and diacritic variants merge; pattern and
// country values are already canonical.
func keyFor(r extract.Result) string {
	switch r.Tag {
	case extract.TagPerson, extract.TagOrg, extract.TagLocation:
		return names.Normalize(r.Value)
	default:
		return r.Value
	}
}

// Add merges one result into the aggregator. The returned reason is ""
// when the result was accepted.
func (a *Aggregator) Add(r extract.Result) string {
	if len(a.entries) >= MaxResults {
		return ReasonMaxResults
	}
	key := keyFor(r)
	if key == "" {
		return ReasonInvalidKey
	}
	ek := entryKey{key: key, tag: r.Tag}
	entry, ok := a.entries[ek]
	if !ok {
		entry = &Aggregated{Key: key, Tag: r.Tag}
		a.entries[ek] = entry
		a.order = append(a.order, ek)
	}
	entry.Count++
	if !contains(entry.Values, r.Value) {
		entry.Values = append(entry.Values, r.Value)
	}
	if !contains(entry.Sources, r.Source) {
		entry.Sources = append(entry.Sources, r.Source)
	}
	if r.Confidence != nil {
		if entry.Confidence == nil || *r.Confidence > *entry.Confidence {
			c := *r.Confidence
			entry.Confidence = &c
		}
	}
	return ""
}

// AddAll merges a batch of results and reports per-reason rejection counts.
func (a *Aggregator) AddAll(results []extract.Result) map[string]int {
	rejected := map[string]int{}
	for _, r := range results {
		if reason := a.Add(r); reason != "" {
			rejected[reason]++
		}
	}
	return rejected
}

// Entries returns the aggregated entries in first-seen order.
func (a *Aggregator) Entries() []*Aggregated {
	out := make([]*Aggregated, 0, len(a.order))
	for _, ek := range a.order {
		out = append(out, a.entries[ek])
	}
	return out
}

// Len returns the number of distinct entries.
func (a *Aggregator) Len() int {
	return len(a.entries)
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

// Package resolve refines aggregated name entries through a staged
// pipeline: heuristic classification, schema prediction, person name
// validation, toponym matching and known-entity lookup. Each mention is
// either enriched or rejected with a recorded stage and reason.
package resolve

import (
	"github.com/c360studio/semextract/analysis/aggregate"
	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

// Mention carries one aggregated name entry through resolution. Stages
// mutate it in place.
type Mention struct {
	// EntityID is the id of the document the mention was extracted from.
	EntityID string
	// Key is the aggregation key.
	Key string
	// Tag is the current classification; stages may re-tag.
	Tag string
	// Values are the extracted surface forms.
	Values []string
	// ResolvedValues are the name forms used for matching and output.
	// They start as a copy of Values; stages rewrite and extend them.
	ResolvedValues []string
	// CanonicalValue is the preferred display form once a stage picks one.
	CanonicalValue string
	// ResolvedSchema is the ontology schema a lookup stage settled on.
	ResolvedSchema string
	// ResolvedEntityID is the id of a matched known entity.
	ResolvedEntityID string
	// Countries are ISO codes attached during resolution.
	Countries []string
	// Confidence is carried over from aggregation.
	Confidence *float64
	// Sources are the extractors that saw the mention.
	Sources []string

	rejected     bool
	rejectStage  string
	rejectReason string
}

// FromAggregated builds the mention for one aggregated entry of a document
// entity.
func FromAggregated(doc *ontology.Entity, entry *aggregate.Aggregated) *Mention {
	values := make([]string, len(entry.Values))
	copy(values, entry.Values)
	resolved := make([]string, len(entry.Values))
	copy(resolved, entry.Values)
	sources := make([]string, len(entry.Sources))
	copy(sources, entry.Sources)
	return &Mention{
		EntityID:       doc.ID,
		Key:            entry.Key,
		Tag:            entry.Tag,
		Values:         values,
		ResolvedValues: resolved,
		Sources:        sources,
		Confidence:     entry.Confidence,
	}
}

// Reject marks the mention as dropped. The first rejection wins; later
// calls are no-ops.
func (m *Mention) Reject(stage, reason string) {
	if m.rejected {
		return
	}
	m.rejected = true
	m.rejectStage = stage
	m.rejectReason = reason
}

// Rejected reports whether any stage dropped the mention.
func (m *Mention) Rejected() bool {
	return m.rejected
}

// Rejection returns the stage and reason of the rejection, or empty
// strings.
func (m *Mention) Rejection() (stage, reason string) {
	return m.rejectStage, m.rejectReason
}

// Representative returns the value stages query services with: the
// lexicographically smallest resolved value, which is stable regardless of
// extraction order.
func (m *Mention) Representative() string {
	best := ""
	for _, v := range m.ResolvedValues {
		if v == "" {
			continue
		}
		if best == "" || v < best {
			best = v
		}
	}
	return best
}

// Caption returns the display name: the canonical value when a stage set
// one, otherwise the best display form among the resolved values.
func (m *Mention) Caption() string {
	if m.CanonicalValue != "" {
		return m.CanonicalValue
	}
	return names.PickName(m.ResolvedValues)
}

// AnnotateValues returns the name forms used for annotation and document
// output: the resolved values when stages produced any, the raw surface
// forms otherwise.
func (m *Mention) AnnotateValues() []string {
	values := m.ResolvedValues
	if len(values) == 0 {
		values = m.Values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// AddCountry appends a country code if new.
func (m *Mention) AddCountry(code string) {
	if code == "" {
		return
	}
	for _, existing := range m.Countries {
		if existing == code {
			return
		}
	}
	m.Countries = append(m.Countries, code)
}

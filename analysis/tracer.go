package analysis

import "log/slog"

// Tracer counts what happened to a document at each pipeline step. It is
// per-document and not safe for concurrent use.
type Tracer struct {
	ExtractionsTotal    int
	ExtractionsAccepted int
	ExtractionsRejected int
	ExtractionsBySource map[string]int
	ExtractionsByTag    map[string]int

	AggregatedTotal int
	AggregatedByTag map[string]int

	ResolutionTotal    int
	ResolutionAccepted int
	ResolutionRejected int
	RejectedByStage    map[string]int
	RejectedByReason   map[string]int

	EntitiesCreated  int
	EntitiesBySchema map[string]int
}

// NewTracer creates a zeroed tracer.
func NewTracer() *Tracer {
	return &Tracer{
		ExtractionsBySource: map[string]int{},
		ExtractionsByTag:    map[string]int{},
		AggregatedByTag:     map[string]int{},
		RejectedByStage:     map[string]int{},
		RejectedByReason:    map[string]int{},
		EntitiesBySchema:    map[string]int{},
	}
}

// Extraction records one extraction result and whether aggregation
// accepted it.
func (t *Tracer) Extraction(source, tag string, accepted bool, reason string) {
	t.ExtractionsTotal++
	t.ExtractionsBySource[source]++
	t.ExtractionsByTag[tag]++
	if accepted {
		t.ExtractionsAccepted++
	} else {
		t.ExtractionsRejected++
		if reason != "" {
			t.RejectedByReason[reason]++
		}
	}
}

// Aggregated records one surviving aggregated entry.
func (t *Tracer) Aggregated(tag string) {
	t.AggregatedTotal++
	t.AggregatedByTag[tag]++
}

// ScoringRejections folds the confidence scorer's rejection counts in.
func (t *Tracer) ScoringRejections(rejected map[string]int) {
	for reason, count := range rejected {
		t.RejectedByReason[reason] += count
	}
}

// Resolution records one mention's fate after the pipeline ran.
func (t *Tracer) Resolution(accepted bool, stage, reason string) {
	t.ResolutionTotal++
	if accepted {
		t.ResolutionAccepted++
		return
	}
	t.ResolutionRejected++
	if stage != "" {
		t.RejectedByStage[stage]++
	}
	if reason != "" {
		t.RejectedByReason[reason]++
	}
}

// Entity records one emitted entity.
func (t *Tracer) Entity(schema string) {
	t.EntitiesCreated++
	t.EntitiesBySchema[schema]++
}

// LogSummary writes the document's counters as one structured log line.
func (t *Tracer) LogSummary(logger *slog.Logger, documentID string) {
	logger.Info("analysis summary",
		"document", documentID,
		"extractions", t.ExtractionsTotal,
		"extractions_accepted", t.ExtractionsAccepted,
		"extractions_rejected", t.ExtractionsRejected,
		"by_source", t.ExtractionsBySource,
		"aggregated", t.AggregatedTotal,
		"by_tag", t.AggregatedByTag,
		"mentions", t.ResolutionTotal,
		"mentions_accepted", t.ResolutionAccepted,
		"mentions_rejected", t.ResolutionRejected,
		"rejected_by_stage", t.RejectedByStage,
		"rejected_by_reason", t.RejectedByReason,
		"entities", t.EntitiesCreated,
		"entities_by_schema", t.EntitiesBySchema)
}

package entityanalyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semextract/models"
	"github.com/c360studio/semextract/ontology"
)

// Handler runs the analysis stack over one job at a time.
type Handler struct {
	registry *models.Registry
	timeout  time.Duration
	logger   *slog.Logger
}

// NewHandler creates a handler on top of the shared models registry.
func NewHandler(registry *models.Registry, timeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{registry: registry, timeout: timeout, logger: logger}
}

// JobResult contains the outcome of one analysis job.
type JobResult struct {
	JobID string
	// Document is the enriched document fragment, nil when the entity was
	// skipped (not analyzable or empty).
	Document *ontology.Entity
	// Entities are the extracted mention, resolved and bank account
	// entities.
	Entities []*ontology.Entity
}

// Skipped reports whether the job's entity produced no analysis.
func (r *JobResult) Skipped() bool {
	return r.Document == nil
}

// ProcessJob parses the job's entity and runs it through the analyzer.
func (h *Handler) ProcessJob(ctx context.Context, job *JobPayload) (*JobResult, error) {
	doc, err := job.Document(ontology.Default())
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", job.JobID_, err)
	}

	analyzer, err := h.registry.Analyzer(ctx)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}

	analysisCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, err := analyzer.AnalyzeEntity(analysisCtx, doc)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", doc.ID, err)
	}
	if result == nil {
		h.logger.Debug("document skipped", "job_id", job.JobID_, "entity_id", doc.ID)
		return &JobResult{JobID: job.JobID_}, nil
	}

	return &JobResult{
		JobID:    job.JobID_,
		Document: result.Document,
		Entities: result.Entities,
	}, nil
}

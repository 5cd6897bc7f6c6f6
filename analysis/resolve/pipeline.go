package resolve

import (
	"context"
	"log/slog"
	"time"
)

// Stage is one step of the resolution pipeline. Process mutates the
// mention; returning an error marks the stage as skipped for that mention,
// not the mention as rejected.
type Stage interface {
	Name() string
	Process(ctx context.Context, m *Mention) error
}

// Pipeline runs mentions through an ordered list of stages.
type Pipeline struct {
	stages       []Stage
	stageTimeout time.Duration
	logger       *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithStageTimeout bounds each stage's work per mention. Zero disables the
// bound.
func WithStageTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.stageTimeout = d
	}
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline over the given stages.
func NewPipeline(stages []Stage, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{stages: stages, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve runs one mention through the stages. A rejection short-circuits
// the remaining stages. Stage errors, timeouts included, are logged and
// treated as a non-match so a flaky backing service degrades resolution
// instead of failing the document.
func (p *Pipeline) Resolve(ctx context.Context, m *Mention) {
	for _, stage := range p.stages {
		if m.Rejected() {
			return
		}
		stageCtx := ctx
		cancel := context.CancelFunc(func() {})
		if p.stageTimeout > 0 {
			stageCtx, cancel = context.WithTimeout(ctx, p.stageTimeout)
		}
		err := stage.Process(stageCtx, m)
		cancel()
		if err != nil {
			p.logger.Warn("resolution stage failed",
				"stage", stage.Name(),
				"mention", m.Key,
				"error", err)
		}
	}
}

// ResolveAll runs every mention through the pipeline.
func (p *Pipeline) ResolveAll(ctx context.Context, mentions []*Mention) {
	for _, m := range mentions {
		p.Resolve(ctx, m)
	}
}

// Package models wires the configured analysis backends together: the NER
// sidecar, the name intelligence service, the geonames tagger and the
// analyzer built on top of them. One registry is shared per process so the
// CLI and the stream processor reuse the same clients and caches.
package models

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/c360studio/semextract/analysis"
	"github.com/c360studio/semextract/analysis/aggregate"
	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/analysis/resolve"
	"github.com/c360studio/semextract/config"
	"github.com/c360studio/semextract/geodb"
	"github.com/c360studio/semextract/namedb"
	"github.com/c360studio/semextract/ontology"
)

// Registry builds and caches the analysis stack for one configuration.
type Registry struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *slog.Logger

	nerService *extract.Service
	namedbOnce sync.Once
	namedbCli  namedb.Client
	geoOnce    sync.Once
	geoTagger  geodb.Tagger
	analyzer   *analysis.Analyzer
}

// NewRegistry creates a registry for the configuration.
func NewRegistry(cfg *config.Config, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{cfg: cfg, logger: logger}
}

// Config returns the registry's configuration.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// NERService returns the shared model sidecar client.
func (r *Registry) NERService() *extract.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nerService == nil {
		r.nerService = extract.NewService(r.cfg.NER.Endpoint, extract.WithLogger(r.logger))
	}
	return r.nerService
}

// NameDB returns the name intelligence client, or nil when no endpoint is
// configured.
func (r *Registry) NameDB() namedb.Client {
	r.namedbOnce.Do(func() {
		if r.cfg.NameDB.Endpoint != "" {
			r.namedbCli = namedb.NewHTTPClient(r.cfg.NameDB.Endpoint, namedb.WithLogger(r.logger))
		}
	})
	return r.namedbCli
}

// Geonames returns the toponym tagger, or nil when no endpoint is
// configured.
func (r *Registry) Geonames() geodb.Tagger {
	r.geoOnce.Do(func() {
		if r.cfg.Geonames.Endpoint != "" {
			r.geoTagger = geodb.NewHTTPClient(r.cfg.Geonames.Endpoint, geodb.WithLogger(r.logger))
		}
	})
	return r.geoTagger
}

// extractors builds the configured extractor set, verifying model
// availability up front.
func (r *Registry) extractors(ctx context.Context) ([]extract.Extractor, error) {
	service := r.NERService()
	var ner extract.Extractor
	var err error
	switch r.cfg.NER.Engine {
	case config.EngineStatistical:
		ner, err = extract.NewStatisticalExtractor(ctx, service, r.cfg.NER.Models, r.cfg.NER.DefaultLanguage)
	case config.EngineSequence:
		ner, err = extract.NewSequenceExtractor(ctx, service, r.cfg.NER.Model)
	case config.EngineTransformer:
		ner, err = extract.NewTransformerExtractor(ctx, service, r.cfg.NER.Model)
	case config.EngineZeroShot:
		ner, err = extract.NewZeroShotExtractor(ctx, service, r.cfg.NER.Model, r.cfg.NER.Threshold)
	default:
		return nil, fmt.Errorf("unknown ner engine %q", r.cfg.NER.Engine)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s extractor: %w", r.cfg.NER.Engine, err)
	}
	return []extract.Extractor{ner, extract.NewPatternExtractor()}, nil
}

// stages builds the resolution pipeline stages per the config toggles.
func (r *Registry) stages() []resolve.Stage {
	var stages []resolve.Stage
	if r.cfg.Analysis.RigourEnabled() {
		stages = append(stages, resolve.NewRigourStage())
	}
	if client := r.NameDB(); client != nil {
		if r.cfg.NameDB.ClassifierEnabled() {
			stages = append(stages, resolve.NewClassifierStage(client))
		}
		if r.cfg.NameDB.ValidatorEnabled() {
			stages = append(stages, resolve.NewValidatorStage(client))
		}
	}
	if tagger := r.Geonames(); tagger != nil {
		var opts []resolve.GeonamesOption
		if r.cfg.Geonames.RejectUnmatched {
			opts = append(opts, resolve.WithRejectUnmatched())
		}
		stages = append(stages, resolve.NewGeonamesStage(tagger, opts...))
	}
	if client := r.NameDB(); client != nil && r.cfg.NameDB.LookupEnabled() {
		stages = append(stages, resolve.NewLookupStage(client))
	}
	return stages
}

// Analyzer returns the shared analyzer, building it on first use. Model
// availability is checked during construction, so a sidecar missing its
// models fails here rather than mid-document.
func (r *Registry) Analyzer(ctx context.Context) (*analysis.Analyzer, error) {
	r.mu.Lock()
	if r.analyzer != nil {
		defer r.mu.Unlock()
		return r.analyzer, nil
	}
	r.mu.Unlock()

	extractors, err := r.extractors(ctx)
	if err != nil {
		return nil, err
	}
	pipeline := resolve.NewPipeline(r.stages(),
		resolve.WithStageTimeout(r.cfg.Analysis.StageTimeout),
		resolve.WithPipelineLogger(r.logger))

	opts := []analysis.Option{
		analysis.WithAnnotation(r.cfg.Analysis.AnnotateEnabled()),
		analysis.WithChunkSize(r.cfg.Analysis.ChunkSize),
		analysis.WithLanguageFloor(r.cfg.Analysis.LanguageFloor),
		analysis.WithLogger(r.logger),
	}
	if r.cfg.Analysis.ClassifierEndpoint != "" && r.cfg.Analysis.MinConfidence > 0 {
		classifier := aggregate.NewHTTPClassifier(r.cfg.Analysis.ClassifierEndpoint,
			aggregate.WithLogger(r.logger))
		opts = append(opts, analysis.WithScorer(
			aggregate.NewScorer(classifier, r.cfg.Analysis.MinConfidence)))
	}
	analyzer := analysis.New(ontology.Default(), extractors, pipeline, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.analyzer == nil {
		r.analyzer = analyzer
	}
	return r.analyzer, nil
}

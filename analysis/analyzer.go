package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/semextract/analysis/aggregate"
	"github.com/c360studio/semextract/analysis/emit"
	"github.com/c360studio/semextract/analysis/extract"
	"github.com/c360studio/semextract/analysis/resolve"
	"github.com/c360studio/semextract/annotate"
	"github.com/c360studio/semextract/names"
	"github.com/c360studio/semextract/ontology"
)

// DefaultLanguageFloor is the minimum detector confidence before a
// detected language is trusted.
const DefaultLanguageFloor = 0.7

// outputProps maps a mention's final tag to the document property its
// names are recorded on.
var outputProps = map[string]string{
	extract.TagPerson:   "namesMentioned",
	extract.TagOrg:      "companiesMentioned",
	extract.TagLocation: "locationMentioned",
}

// patternProps maps pattern tags to their document properties.
var patternProps = map[string]string{
	extract.TagEmail: "emailMentioned",
	extract.TagPhone: "phoneMentioned",
	extract.TagIBAN:  "ibanMentioned",
}

// Analyzer runs the full pipeline over one document at a time.
type Analyzer struct {
	model         *ontology.Model
	extractors    []extract.Extractor
	scorer        *aggregate.Scorer
	pipeline      *resolve.Pipeline
	factory       *emit.Factory
	annotate      bool
	chunkSize     int
	languageFloor float64
	logger        *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithScorer enables confidence filtering of aggregated name entries.
func WithScorer(s *aggregate.Scorer) Option {
	return func(a *Analyzer) {
		a.scorer = s
	}
}

// WithAnnotation toggles annotated index text generation.
func WithAnnotation(enabled bool) Option {
	return func(a *Analyzer) {
		a.annotate = enabled
	}
}

// WithChunkSize bounds the text chunks handed to extractors.
func WithChunkSize(size int) Option {
	return func(a *Analyzer) {
		a.chunkSize = size
	}
}

// WithLanguageFloor sets the language detection confidence floor.
func WithLanguageFloor(floor float64) Option {
	return func(a *Analyzer) {
		a.languageFloor = floor
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an analyzer. The pipeline may be nil, in which case mentions
// pass through resolution untouched.
func New(model *ontology.Model, extractors []extract.Extractor, pipeline *resolve.Pipeline, opts ...Option) *Analyzer {
	a := &Analyzer{
		model:         model,
		extractors:    extractors,
		pipeline:      pipeline,
		factory:       emit.NewFactory(model),
		annotate:      true,
		chunkSize:     DefaultChunkSize,
		languageFloor: DefaultLanguageFloor,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the output of analyzing one document.
type Result struct {
	// Document is a fragment carrying the document's new properties:
	// mentioned names, pattern values, countries, detected language and
	// annotated index text. It shares the source document's id and schema.
	Document *ontology.Entity
	// Entities are the emitted mention, resolved and bank account
	// entities.
	Entities []*ontology.Entity
	// Tracer holds the per-step counters.
	Tracer *Tracer
}

// ErrMissingID marks an analyzable document without an identifier.
var ErrMissingID = errors.New("document entity has no id")

// AnalyzeEntity runs the pipeline over one document. Entities that are
// not analyzable or carry no text yield a nil result; an analyzable
// document without an id is an error.
func (a *Analyzer) AnalyzeEntity(ctx context.Context, doc *ontology.Entity) (*Result, error) {
	if doc == nil || !doc.IsA("Analyzable") {
		return nil, nil
	}
	if doc.ID == "" {
		return nil, ErrMissingID
	}
	texts := doc.Get("bodyText")
	if len(texts) == 0 {
		return nil, nil
	}
	languages, detected := EntityLanguages(doc, strings.Join(texts, " "), a.languageFloor)

	tracer := NewTracer()
	agg := aggregate.New()
	for _, chunk := range Chunks(texts, a.chunkSize) {
		c := &extract.Context{Entity: doc, Text: chunk, Languages: languages}
		for _, extractor := range a.extractors {
			results, err := extractor.Extract(ctx, c)
			if err != nil {
				a.logger.Warn("extractor failed",
					"extractor", extractor.Name(),
					"document", doc.ID,
					"error", err)
				continue
			}
			for _, r := range results {
				reason := agg.Add(r)
				tracer.Extraction(r.Source, r.Tag, reason == "", reason)
			}
		}
	}

	entries := agg.Entries()
	if a.scorer != nil {
		kept, rejected, err := a.scorer.Apply(ctx, entries)
		if err != nil {
			// Scoring is advisory; a broken scorer must not lose the
			// document.
			a.logger.Warn("confidence scoring failed",
				"document", doc.ID,
				"error", err)
		} else {
			tracer.ScoringRejections(rejected)
			entries = kept
		}
	}
	for _, entry := range entries {
		tracer.Aggregated(entry.Tag)
	}

	out, err := a.model.MakeEntity(doc.Schema.Name)
	if err != nil {
		return nil, fmt.Errorf("document fragment: %w", err)
	}
	out.ID = doc.ID

	annotator := annotate.NewAnnotator(a.model)
	var entities []*ontology.Entity
	var mentions []*resolve.Mention
	for _, entry := range entries {
		switch entry.Tag {
		case extract.TagCountry:
			out.Add("country", entry.Key)
		case extract.TagEmail, extract.TagPhone, extract.TagIBAN:
			prop := patternProps[entry.Tag]
			for _, value := range entry.Values {
				out.AddCleaned(prop, value)
			}
			if a.annotate {
				annotator.AddTag(prop, entry.Values...)
			}
			if entry.Tag == extract.TagIBAN {
				for _, value := range entry.Values {
					account, err := a.factory.CreateBankAccount(doc, value)
					if err != nil {
						return nil, fmt.Errorf("bank account for %s: %w", doc.ID, err)
					}
					entities = append(entities, account)
					tracer.Entity(account.Schema.Name)
				}
			}
		case extract.TagPerson, extract.TagOrg, extract.TagLocation:
			mentions = append(mentions, resolve.FromAggregated(doc, entry))
		}
	}

	if a.pipeline != nil {
		a.pipeline.ResolveAll(ctx, mentions)
	}

	for _, m := range mentions {
		if m.Rejected() {
			stage, reason := m.Rejection()
			tracer.Resolution(false, stage, reason)
			continue
		}
		tracer.Resolution(true, "", "")

		prop := outputProps[m.Tag]
		if prop != "" {
			for _, name := range m.AnnotateValues() {
				if normalized := names.Normalize(name); normalized != "" {
					out.AddCleaned(prop, normalized)
				}
			}
		}
		for _, country := range m.Countries {
			out.Add("country", country)
		}

		entity, err := a.factory.CreateFromMention(doc, m)
		if err != nil {
			a.logger.Warn("entity creation failed",
				"mention", m.Key,
				"document", doc.ID,
				"error", err)
		} else if entity != nil {
			entities = append(entities, entity)
			tracer.Entity(entity.Schema.Name)
		}

		if a.annotate {
			if entity != nil && entity.IsA("LegalEntity") {
				annotator.AddMention(entity, m.AnnotateValues()...)
			} else if p := emit.MentionProp(m.Tag); p != "" {
				annotator.AddTag(p, m.Values...)
			}
		}
	}

	if detected != "" {
		out.AddCleaned("detectedLanguage", detected)
	}
	if a.annotate && annotator.Len() > 0 {
		for _, text := range texts {
			annotated := annotator.AnnotateText(annotate.CleanText(text))
			out.AddCleaned("indexText", annotate.Marker+annotated)
		}
	}

	tracer.LogSummary(a.logger, doc.ID)
	return &Result{Document: out, Entities: entities, Tracer: tracer}, nil
}

// AnalyzeEntities runs every document through the pipeline, skipping
// non-analyzable entities.
func (a *Analyzer) AnalyzeEntities(ctx context.Context, docs []*ontology.Entity) ([]*Result, error) {
	var results []*Result
	for _, doc := range docs {
		result, err := a.AnalyzeEntity(ctx, doc)
		if err != nil {
			return results, err
		}
		if result != nil {
			results = append(results, result)
		}
	}
	return results, nil
}

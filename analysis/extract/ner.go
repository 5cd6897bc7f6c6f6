package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// maxResponseSize caps recognizer response bodies.
const maxResponseSize = 8 * 1024 * 1024 // 8MB

// ErrModelUnavailable marks a model the sidecar has not loaded.
var ErrModelUnavailable = errors.New("model not available")

// Span is one entity span returned by a recognizer.
type Span struct {
	Text  string   `json:"text"`
	Label string   `json:"label"`
	Score *float64 `json:"score,omitempty"`
}

// Service talks to a model-serving sidecar that hosts the named entity
// recognition models. One sidecar can serve multiple models; each
// extractor addresses the model it needs by name.
type Service struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a client for the sidecar at endpoint.
func NewService(endpoint string, opts ...ServiceOption) *Service {
	s := &Service{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready verifies that the sidecar has the named model loaded. Extractors
// call this at construction so a missing model fails the run up front
// instead of surfacing mid-document.
func (s *Service) Ready(ctx context.Context, model string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/models/"+model, nil)
	if err != nil {
		return fmt.Errorf("create readiness request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model %q readiness: %w", model, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model %q: status %d: %w", model, resp.StatusCode, ErrModelUnavailable)
	}
	return nil
}

type nerRequest struct {
	Model       string   `json:"model"`
	Text        string   `json:"text"`
	Labels      []string `json:"labels,omitempty"`
	Threshold   float64  `json:"threshold,omitempty"`
	Aggregation string   `json:"aggregation,omitempty"`
}

type nerResponse struct {
	Entities []Span `json:"entities"`
}

// Recognize runs one model over the text and returns the entity spans.
func (s *Service) Recognize(ctx context.Context, req nerRequest) ([]Span, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal recognition request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/ner", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create recognition request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recognition with model %q: %w", req.Model, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read recognition response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition with model %q: status %d", req.Model, resp.StatusCode)
	}
	var parsed nerResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode recognition response: %w", err)
	}
	return parsed.Entities, nil
}

// StatisticalExtractor runs language-specific statistical NER models. It
// selects the model matching the document's detected language and falls
// back to the default language's model.
type StatisticalExtractor struct {
	service     *Service
	models      map[string]string
	defaultLang string
}

// NewStatisticalExtractor verifies every configured model is loaded and
// returns the extractor. models maps ISO 639-3 language codes to model
// names.
func NewStatisticalExtractor(ctx context.Context, service *Service, models map[string]string, defaultLang string) (*StatisticalExtractor, error) {
	if _, ok := models[defaultLang]; !ok {
		return nil, fmt.Errorf("no model configured for default language %q", defaultLang)
	}
	for lang, model := range models {
		if err := service.Ready(ctx, model); err != nil {
			return nil, fmt.Errorf("statistical model for %q: %w", lang, err)
		}
	}
	return &StatisticalExtractor{service: service, models: models, defaultLang: defaultLang}, nil
}

// Name implements Extractor.
func (e *StatisticalExtractor) Name() string {
	return "ner-statistical"
}

func (e *StatisticalExtractor) model(languages []string) string {
	for _, lang := range languages {
		if model, ok := e.models[lang]; ok {
			return model
		}
	}
	return e.models[e.defaultLang]
}

// Extract implements Extractor.
func (e *StatisticalExtractor) Extract(ctx context.Context, c *Context) ([]Result, error) {
	spans, err := e.service.Recognize(ctx, nerRequest{Model: e.model(c.Languages), Text: c.Text})
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, span := range spans {
		results = append(results, makeNameResults(e.Name(), span.Label, span.Text, span.Score)...)
	}
	return results, nil
}

// SequenceExtractor runs a sequence-labeling model that expects single
// sentences. The text is sentence-split client side and each sentence is
// recognized on its own.
type SequenceExtractor struct {
	service   *Service
	model     string
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSequenceExtractor verifies the model is loaded and prepares the
// sentence tokenizer.
func NewSequenceExtractor(ctx context.Context, service *Service, model string) (*SequenceExtractor, error) {
	if err := service.Ready(ctx, model); err != nil {
		return nil, err
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("build sentence tokenizer: %w", err)
	}
	return &SequenceExtractor{service: service, model: model, tokenizer: tokenizer}, nil
}

// Name implements Extractor.
func (e *SequenceExtractor) Name() string {
	return "ner-sequence"
}

// Extract implements Extractor.
func (e *SequenceExtractor) Extract(ctx context.Context, c *Context) ([]Result, error) {
	var results []Result
	for _, sentence := range e.tokenizer.Tokenize(c.Text) {
		spans, err := e.service.Recognize(ctx, nerRequest{Model: e.model, Text: sentence.Text})
		if err != nil {
			return nil, err
		}
		for _, span := range spans {
			results = append(results, makeNameResults(e.Name(), span.Label, span.Text, span.Score)...)
		}
	}
	return results, nil
}

// TransformerExtractor runs a transformer token-classification model with
// server-side span aggregation.
type TransformerExtractor struct {
	service *Service
	model   string
}

// NewTransformerExtractor verifies the model is loaded.
func NewTransformerExtractor(ctx context.Context, service *Service, model string) (*TransformerExtractor, error) {
	if err := service.Ready(ctx, model); err != nil {
		return nil, err
	}
	return &TransformerExtractor{service: service, model: model}, nil
}

// Name implements Extractor.
func (e *TransformerExtractor) Name() string {
	return "ner-transformer"
}

// Extract implements Extractor.
func (e *TransformerExtractor) Extract(ctx context.Context, c *Context) ([]Result, error) {
	spans, err := e.service.Recognize(ctx, nerRequest{Model: e.model, Text: c.Text, Aggregation: "simple"})
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, span := range spans {
		results = append(results, makeNameResults(e.Name(), span.Label, span.Text, span.Score)...)
	}
	return results, nil
}

// Zero-shot defaults.
var zeroShotLabels = []string{"person", "organization", "location"}

// ZeroShotExtractor runs a zero-shot span model prompted with entity type
// labels and a score threshold.
type ZeroShotExtractor struct {
	service   *Service
	model     string
	threshold float64
}

// NewZeroShotExtractor verifies the model is loaded.
func NewZeroShotExtractor(ctx context.Context, service *Service, model string, threshold float64) (*ZeroShotExtractor, error) {
	if err := service.Ready(ctx, model); err != nil {
		return nil, err
	}
	return &ZeroShotExtractor{service: service, model: model, threshold: threshold}, nil
}

// Name implements Extractor.
func (e *ZeroShotExtractor) Name() string {
	return "ner-zeroshot"
}

// Extract implements Extractor.
func (e *ZeroShotExtractor) Extract(ctx context.Context, c *Context) ([]Result, error) {
	spans, err := e.service.Recognize(ctx, nerRequest{
		Model:     e.model,
		Text:      c.Text,
		Labels:    zeroShotLabels,
		Threshold: e.threshold,
	})
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, span := range spans {
		results = append(results, makeNameResults(e.Name(), span.Label, span.Text, span.Score)...)
	}
	return results, nil
}

package aggregate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseSize caps classifier response bodies.
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// HTTPClassifier implements Classifier against a classification service.
type HTTPClassifier struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClassifierOption configures an HTTPClassifier.
type ClassifierOption func(*HTTPClassifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClassifierOption {
	return func(h *HTTPClassifier) {
		h.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(h *HTTPClassifier) {
		h.logger = logger
	}
}

// NewHTTPClassifier creates a client for the service at endpoint.
func NewHTTPClassifier(endpoint string, opts ...ClassifierOption) *HTTPClassifier {
	c := &HTTPClassifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type classifyRequest struct {
	Values []string `json:"values"`
}

type classifyResponse struct {
	Classifications []Classification `json:"classifications"`
}

// Classify implements Classifier.
func (c *HTTPClassifier) Classify(ctx context.Context, values []string) ([]Classification, error) {
	body, err := json.Marshal(classifyRequest{Values: values})
	if err != nil {
		return nil, fmt.Errorf("marshal classify request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read classify response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classify: status %d", resp.StatusCode)
	}
	var parsed classifyResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	if len(parsed.Classifications) != len(values) {
		return nil, fmt.Errorf("classify: got %d classifications for %d values",
			len(parsed.Classifications), len(values))
	}
	return parsed.Classifications, nil
}

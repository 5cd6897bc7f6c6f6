package namedb

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

// maxResponseSize caps service response bodies.
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// HTTPClient implements Client against the name service's HTTP API.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPClientOption {
	return func(n *HTTPClient) {
		n.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HTTPClientOption {
	return func(n *HTTPClient) {
		n.logger = logger
	}
}

// NewHTTPClient creates a client for the service at endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nameRequest struct {
	Name string `json:"name"`
}

func (n *HTTPClient) post(ctx context.Context, path, name string, out any) error {
	body, err := json.Marshal(nameRequest{Name: name})
	if err != nil {
		return fmt.Errorf("marshal name request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create name request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("name service %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read name service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("name service %s: status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode name service response: %w", err)
	}
	return nil
}

// PredictSchema implements Client.
func (n *HTTPClient) PredictSchema(ctx context.Context, name string) (*SchemaPrediction, error) {
	var out SchemaPrediction
	if err := n.post(ctx, "/predict", name, &out); err != nil {
		return nil, err
	}
	n.logger.Debug("schema prediction", "name", name, "tag", out.NerTag, "score", out.Score)
	return &out, nil
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// ValidateName implements Client.
func (n *HTTPClient) ValidateName(ctx context.Context, name string) (bool, error) {
	var out validateResponse
	if err := n.post(ctx, "/validate", name, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

type lookupResponse struct {
	Results []LookupResult `json:"results"`
}

// Lookup implements Client.
func (n *HTTPClient) Lookup(ctx context.Context, name string) ([]LookupResult, error) {
	var out lookupResponse
	if err := n.post(ctx, "/lookup", name, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

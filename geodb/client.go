package geodb

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

// maxResponseSize caps the lookup response body.
const maxResponseSize = 1 * 1024 * 1024 // 1MB

// HTTPClient talks to a geonames lookup service over HTTP. The service
// takes a place name and returns candidate toponyms with country codes.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// HTTPClientOption configures an HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) HTTPClientOption {
	return func(g *HTTPClient) {
		g.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HTTPClientOption {
	return func(g *HTTPClient) {
		g.logger = logger
	}
}

// NewHTTPClient creates a client for the service at endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	Locations []Location `json:"locations"`
}

// TagLocations implements Tagger.
func (g *HTTPClient) TagLocations(ctx context.Context, name string) ([]Location, error) {
	body, err := json.Marshal(tagRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("marshal location request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/locations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create location request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location lookup for %q: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read location response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location lookup for %q: status %d", name, resp.StatusCode)
	}
	var parsed tagResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode location response: %w", err)
	}
	g.logger.Debug("location lookup", "name", name, "candidates", len(parsed.Locations))
	return parsed.Locations, nil
}

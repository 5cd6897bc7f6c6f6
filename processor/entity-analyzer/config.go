package entityanalyzer

import (
	"fmt"
	"time"

	"github.com/c360studio/semstreams/component"
)

// Config holds configuration for the entity-analyzer processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream carrying analysis jobs.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:DOCS"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:entity-analyzer"`

	// AnalysisTimeout is the maximum time for analyzing one document.
	AnalysisTimeout string `json:"analysis_timeout" schema:"type:string,description:Per-document analysis timeout,category:advanced,default:120s"`

	// Source is the source tag recorded on published triples.
	Source string `json:"source" schema:"type:string,description:Source tag for published triples,category:advanced,default:semextract"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.AnalysisTimeout != "" {
		if _, err := time.ParseDuration(c.AnalysisTimeout); err != nil {
			return fmt.Errorf("invalid analysis_timeout format: %w", err)
		}
	}
	return nil
}

// parseDurationOrDefault parses a duration string and returns the default if empty or invalid.
func parseDurationOrDefault(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// GetAnalysisTimeout returns the analysis timeout as a duration.
func (c *Config) GetAnalysisTimeout() time.Duration {
	return parseDurationOrDefault(c.AnalysisTimeout, 120*time.Second)
}

// GetSource returns the triple source tag with default.
func (c *Config) GetSource() string {
	if c.Source == "" {
		return "semextract"
	}
	return c.Source
}

// DefaultConfig returns default configuration for the entity-analyzer processor.
func DefaultConfig() Config {
	inputDefs := []component.PortDefinition{
		{
			Name:        "jobs.in",
			Type:        "jetstream",
			Subject:     "doc.analyze.>",
			StreamName:  "DOCS",
			Required:    true,
			Description: "Document analysis jobs",
		},
	}

	outputDefs := []component.PortDefinition{
		{
			Name:        "graph.out",
			Type:        "jetstream",
			Subject:     "graph.ingest.entity",
			StreamName:  "GRAPH",
			Required:    true,
			Description: "Analyzed entities for graph ingestion",
		},
		{
			Name:        "index.out",
			Type:        "jetstream",
			Subject:     "doc.index.request",
			StreamName:  "DOCS",
			Required:    false,
			Description: "Index notifications for analyzed documents",
		},
	}

	return Config{
		Ports: &component.PortConfig{
			Inputs:  inputDefs,
			Outputs: outputDefs,
		},
		StreamName:      "DOCS",
		ConsumerName:    "entity-analyzer",
		AnalysisTimeout: "120s",
		Source:          "semextract",
	}
}

// Package config provides configuration loading and management for
// Semextract.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// NER engine names accepted in configuration.
const (
	EngineStatistical = "statistical"
	EngineSequence    = "sequence"
	EngineTransformer = "transformer"
	EngineZeroShot    = "zeroshot"
)

// Config represents the complete Semextract configuration.
type Config struct {
	NER      NERConfig      `yaml:"ner"`
	NameDB   NameDBConfig   `yaml:"namedb"`
	Geonames GeonamesConfig `yaml:"geonames"`
	Analysis AnalysisConfig `yaml:"analysis"`
	NATS     NATSConfig     `yaml:"nats"`
}

// NERConfig configures the named entity recognition sidecar.
type NERConfig struct {
	// Endpoint is the model sidecar base URL.
	Endpoint string `yaml:"endpoint"`
	// Engine selects the extractor variant (statistical, sequence,
	// transformer, zeroshot).
	Engine string `yaml:"engine"`
	// Models maps ISO 639-3 language codes to model names for the
	// statistical engine.
	Models map[string]string `yaml:"models"`
	// DefaultLanguage is the fallback language for the statistical engine.
	DefaultLanguage string `yaml:"default_language"`
	// Model names the model for the single-model engines.
	Model string `yaml:"model"`
	// Threshold is the zero-shot score cutoff.
	Threshold float64 `yaml:"threshold"`
}

// NameDBConfig configures the name intelligence service and which of its
// stages run.
type NameDBConfig struct {
	// Endpoint is the service base URL. Empty disables all three stages.
	Endpoint string `yaml:"endpoint"`
	// UseClassifier enables schema prediction. Defaults to true.
	UseClassifier *bool `yaml:"use_classifier"`
	// UseValidator enables person name validation. Defaults to true.
	UseValidator *bool `yaml:"use_validator"`
	// UseLookup enables known-entity lookup. Defaults to true.
	UseLookup *bool `yaml:"use_lookup"`
}

// ClassifierEnabled reports whether the classifier stage should run.
func (c *NameDBConfig) ClassifierEnabled() bool {
	return c.Endpoint != "" && enabled(c.UseClassifier)
}

// ValidatorEnabled reports whether the validator stage should run.
func (c *NameDBConfig) ValidatorEnabled() bool {
	return c.Endpoint != "" && enabled(c.UseValidator)
}

// LookupEnabled reports whether the lookup stage should run.
func (c *NameDBConfig) LookupEnabled() bool {
	return c.Endpoint != "" && enabled(c.UseLookup)
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// GeonamesConfig configures toponym matching.
type GeonamesConfig struct {
	// Endpoint is the geonames service base URL. Empty disables the stage.
	Endpoint string `yaml:"endpoint"`
	// RejectUnmatched drops location mentions no toponym matched.
	RejectUnmatched bool `yaml:"reject_unmatched"`
}

// AnalysisConfig configures the analyzer itself.
type AnalysisConfig struct {
	// Annotate toggles annotated index text generation. Defaults to true.
	Annotate *bool `yaml:"annotate"`
	// UseRigour enables the heuristic classification stage. Defaults to
	// true.
	UseRigour *bool `yaml:"use_rigour"`
	// ChunkSize bounds the text chunks handed to extractors.
	ChunkSize int `yaml:"chunk_size"`
	// LanguageFloor is the language detection confidence floor.
	LanguageFloor float64 `yaml:"language_floor"`
	// ClassifierEndpoint is the name classification service used for
	// confidence scoring. Empty disables scoring.
	ClassifierEndpoint string `yaml:"classifier_endpoint"`
	// MinConfidence is the aggregation confidence cutoff; zero disables
	// confidence scoring.
	MinConfidence float64 `yaml:"min_confidence"`
	// StageTimeout bounds each resolution stage per mention.
	StageTimeout time.Duration `yaml:"stage_timeout"`
}

// AnnotateEnabled reports whether index text generation should run.
func (c *AnalysisConfig) AnnotateEnabled() bool {
	return enabled(c.Annotate)
}

// RigourEnabled reports whether the heuristic stage should run.
func (c *AnalysisConfig) RigourEnabled() bool {
	return enabled(c.UseRigour)
}

// NATSConfig configures the NATS connection for the processor.
type NATSConfig struct {
	// URL is the NATS server URL.
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NER: NERConfig{
			Endpoint:        "http://localhost:8000",
			Engine:          EngineStatistical,
			Models:          map[string]string{"eng": "xx_ent_wiki_sm"},
			DefaultLanguage: "eng",
			Threshold:       0.5,
		},
		Analysis: AnalysisConfig{
			ChunkSize:     10000,
			LanguageFloor: 0.7,
			StageTimeout:  10 * time.Second,
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.NER.Engine {
	case EngineStatistical:
		if len(c.NER.Models) == 0 {
			return fmt.Errorf("ner: statistical engine requires models")
		}
		if c.NER.DefaultLanguage == "" {
			return fmt.Errorf("ner: statistical engine requires default_language")
		}
		if _, ok := c.NER.Models[c.NER.DefaultLanguage]; !ok {
			return fmt.Errorf("ner: no model for default language %q", c.NER.DefaultLanguage)
		}
	case EngineSequence, EngineTransformer, EngineZeroShot:
		if c.NER.Model == "" {
			return fmt.Errorf("ner: engine %q requires model", c.NER.Engine)
		}
	case "":
		return fmt.Errorf("ner: engine is required")
	default:
		return fmt.Errorf("ner: unknown engine %q", c.NER.Engine)
	}
	if c.NER.Endpoint == "" {
		return fmt.Errorf("ner: endpoint is required")
	}
	if c.Analysis.ChunkSize < 0 {
		return fmt.Errorf("analysis: chunk_size must not be negative")
	}
	if c.Analysis.LanguageFloor < 0 || c.Analysis.LanguageFloor > 1 {
		return fmt.Errorf("analysis: language_floor must be in [0, 1]")
	}
	if c.Analysis.MinConfidence < 0 || c.Analysis.MinConfidence > 1 {
		return fmt.Errorf("analysis: min_confidence must be in [0, 1]")
	}
	return nil
}

// Merge overlays non-zero values from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.NER.Endpoint != "" {
		c.NER.Endpoint = other.NER.Endpoint
	}
	if other.NER.Engine != "" {
		c.NER.Engine = other.NER.Engine
	}
	if len(other.NER.Models) > 0 {
		c.NER.Models = other.NER.Models
	}
	if other.NER.DefaultLanguage != "" {
		c.NER.DefaultLanguage = other.NER.DefaultLanguage
	}
	if other.NER.Model != "" {
		c.NER.Model = other.NER.Model
	}
	if other.NER.Threshold != 0 {
		c.NER.Threshold = other.NER.Threshold
	}
	if other.NameDB.Endpoint != "" {
		c.NameDB.Endpoint = other.NameDB.Endpoint
	}
	if other.NameDB.UseClassifier != nil {
		c.NameDB.UseClassifier = other.NameDB.UseClassifier
	}
	if other.NameDB.UseValidator != nil {
		c.NameDB.UseValidator = other.NameDB.UseValidator
	}
	if other.NameDB.UseLookup != nil {
		c.NameDB.UseLookup = other.NameDB.UseLookup
	}
	if other.Geonames.Endpoint != "" {
		c.Geonames.Endpoint = other.Geonames.Endpoint
		c.Geonames.RejectUnmatched = other.Geonames.RejectUnmatched
	}
	if other.Analysis.ChunkSize != 0 {
		c.Analysis.ChunkSize = other.Analysis.ChunkSize
	}
	if other.Analysis.LanguageFloor != 0 {
		c.Analysis.LanguageFloor = other.Analysis.LanguageFloor
	}
	if other.Analysis.ClassifierEndpoint != "" {
		c.Analysis.ClassifierEndpoint = other.Analysis.ClassifierEndpoint
	}
	if other.Analysis.MinConfidence != 0 {
		c.Analysis.MinConfidence = other.Analysis.MinConfidence
	}
	if other.Analysis.StageTimeout != 0 {
		c.Analysis.StageTimeout = other.Analysis.StageTimeout
	}
	if other.Analysis.Annotate != nil {
		c.Analysis.Annotate = other.Analysis.Annotate
	}
	if other.Analysis.UseRigour != nil {
		c.Analysis.UseRigour = other.Analysis.UseRigour
	}
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}

// LoadFromFile reads a config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &config, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NER.Engine != EngineStatistical {
		t.Errorf("expected default engine statistical, got %s", cfg.NER.Engine)
	}
	if cfg.NER.DefaultLanguage != "eng" {
		t.Errorf("expected default language eng, got %s", cfg.NER.DefaultLanguage)
	}
	if !cfg.Analysis.AnnotateEnabled() {
		t.Error("expected annotation enabled by default")
	}
	if !cfg.Analysis.RigourEnabled() {
		t.Error("expected rigour stage enabled by default")
	}
	if cfg.NameDB.ClassifierEnabled() {
		t.Error("expected namedb stages disabled without an endpoint")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing ner endpoint",
			modify:  func(c *Config) { c.NER.Endpoint = "" },
			wantErr: true,
		},
		{
			name:    "unknown engine",
			modify:  func(c *Config) { c.NER.Engine = "quantum" },
			wantErr: true,
		},
		{
			name: "statistical engine without default model",
			modify: func(c *Config) {
				c.NER.Models = map[string]string{"deu": "de_core_news_sm"}
			},
			wantErr: true,
		},
		{
			name: "zeroshot engine without model",
			modify: func(c *Config) {
				c.NER.Engine = EngineZeroShot
				c.NER.Model = ""
			},
			wantErr: true,
		},
		{
			name: "zeroshot engine with model",
			modify: func(c *Config) {
				c.NER.Engine = EngineZeroShot
				c.NER.Model = "gliner_multi"
			},
			wantErr: false,
		},
		{
			name:    "language floor out of range",
			modify:  func(c *Config) { c.Analysis.LanguageFloor = 1.5 },
			wantErr: true,
		},
		{
			name:    "min confidence out of range",
			modify:  func(c *Config) { c.Analysis.MinConfidence = -0.1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	off := false
	overlay := &Config{
		NER: NERConfig{
			Endpoint: "http://models:9000",
			Engine:   EngineTransformer,
			Model:    "bert-base-ner",
		},
		NameDB: NameDBConfig{
			Endpoint:  "http://namedb:7000",
			UseLookup: &off,
		},
		Analysis: AnalysisConfig{
			Annotate:     &off,
			ChunkSize:    2048,
			StageTimeout: 3 * time.Second,
		},
	}
	base.Merge(overlay)

	if base.NER.Endpoint != "http://models:9000" {
		t.Errorf("endpoint not merged: %s", base.NER.Endpoint)
	}
	if base.NER.Engine != EngineTransformer {
		t.Errorf("engine not merged: %s", base.NER.Engine)
	}
	if base.NER.DefaultLanguage != "eng" {
		t.Error("unset overlay fields must not clobber defaults")
	}
	if !base.NameDB.ClassifierEnabled() {
		t.Error("classifier should default on once an endpoint is set")
	}
	if base.NameDB.LookupEnabled() {
		t.Error("explicit use_lookup false should merge")
	}
	if base.Analysis.AnnotateEnabled() {
		t.Error("explicit annotate false should merge")
	}
	if base.Analysis.ChunkSize != 2048 {
		t.Errorf("chunk size not merged: %d", base.Analysis.ChunkSize)
	}
	if base.Analysis.StageTimeout != 3*time.Second {
		t.Errorf("stage timeout not merged: %v", base.Analysis.StageTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "semextract.yaml")
	content := []byte(`
ner:
  endpoint: http://models:9000
  engine: zeroshot
  model: gliner_multi
  threshold: 0.6
geonames:
  endpoint: http://geonames:7001
  reject_unmatched: true
analysis:
  min_confidence: 0.85
  stage_timeout: 5s
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.NER.Engine != EngineZeroShot {
		t.Errorf("engine = %s", cfg.NER.Engine)
	}
	if cfg.NER.Threshold != 0.6 {
		t.Errorf("threshold = %f", cfg.NER.Threshold)
	}
	if !cfg.Geonames.RejectUnmatched {
		t.Error("reject_unmatched not parsed")
	}
	if cfg.Analysis.StageTimeout != 5*time.Second {
		t.Errorf("stage_timeout = %v", cfg.Analysis.StageTimeout)
	}
	if cfg.Analysis.MinConfidence != 0.85 {
		t.Errorf("min_confidence = %f", cfg.Analysis.MinConfidence)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/does/not/exist.yaml"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEMEXTRACT_NER_ENDPOINT", "http://override:1234")
	t.Setenv("SEMEXTRACT_MIN_CONFIDENCE", "0.9")
	t.Setenv("SEMEXTRACT_STAGE_TIMEOUT", "2s")

	cfg := DefaultConfig()
	applyEnv(cfg)

	if cfg.NER.Endpoint != "http://override:1234" {
		t.Errorf("endpoint = %s", cfg.NER.Endpoint)
	}
	if cfg.Analysis.MinConfidence != 0.9 {
		t.Errorf("min_confidence = %f", cfg.Analysis.MinConfidence)
	}
	if cfg.Analysis.StageTimeout != 2*time.Second {
		t.Errorf("stage_timeout = %v", cfg.Analysis.StageTimeout)
	}
}

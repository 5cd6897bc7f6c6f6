package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "semextract.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/semextract"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semextract/config.yaml)
// 3. Project config (semextract.yaml in current or parent directories)
// 4. Environment variables (SEMEXTRACT_*)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config",
			slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config",
				slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches the current directory and its parents.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// applyEnv overlays SEMEXTRACT_* environment variables.
func applyEnv(config *Config) {
	if v := os.Getenv("SEMEXTRACT_NER_ENDPOINT"); v != "" {
		config.NER.Endpoint = v
	}
	if v := os.Getenv("SEMEXTRACT_NER_ENGINE"); v != "" {
		config.NER.Engine = v
	}
	if v := os.Getenv("SEMEXTRACT_NER_MODEL"); v != "" {
		config.NER.Model = v
	}
	if v := os.Getenv("SEMEXTRACT_NAMEDB_ENDPOINT"); v != "" {
		config.NameDB.Endpoint = v
	}
	if v := os.Getenv("SEMEXTRACT_GEONAMES_ENDPOINT"); v != "" {
		config.Geonames.Endpoint = v
	}
	if v := os.Getenv("SEMEXTRACT_NATS_URL"); v != "" {
		config.NATS.URL = v
	}
	if v := os.Getenv("SEMEXTRACT_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.MinConfidence = f
		}
	}
	if v := os.Getenv("SEMEXTRACT_STAGE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Analysis.StageTimeout = d
		}
	}
}

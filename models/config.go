package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration loaded from a YAML file. CLI flags
// override individual values after loading.
type Config struct {
	// ExtractorEndpoint is the readability-style content-extraction service
	// used as acquisition tier 1. Empty disables the tier.
	ExtractorEndpoint string `yaml:"extractor_endpoint"`
	ExtractorAPIKey   string `yaml:"extractor_api_key"`

	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	WorkerCount int    `yaml:"worker_count"`
	OutputDir   string `yaml:"output_dir"`
	DBPath      string `yaml:"db_path"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		FetchTimeout: 10 * time.Second,
		WorkerCount:  4,
		OutputDir:    "results",
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
// A missing file is not an error; defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	return cfg, nil
}

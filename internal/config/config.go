package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	CatalogPath  string        `env:"GHOSTBOOK_CATALOG"`
	CatalogTTL   time.Duration `env:"GHOSTBOOK_CATALOG_TTL" envDefault:"10m"`
	LogLevel     string        `env:"GHOSTBOOK_LOG_LEVEL"   envDefault:"info"`
	LogFormat    string        `env:"GHOSTBOOK_LOG_FORMAT"  envDefault:"text"`
	LogFile      string        `env:"GHOSTBOOK_LOG_FILE"`
	Parallel     int           `env:"GHOSTBOOK_PARALLEL"    envDefault:"4"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GHOSTBOOK_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("GHOSTBOOK_PARALLEL must be at least 1, got %d", cfg.Parallel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("GHOSTBOOK_LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return &cfg, nil
}

// GuideEnabled reports whether a Gemini key is configured.
func (c *Config) GuideEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Package config holds the application configuration, read from environment
// variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// APIKeyPlaceholder is the sentinel left in place of a real Gemini key. It
// deterministically selects rule-based recipe generation.
const APIKeyPlaceholder = "YOUR_GEMINI_API_KEY"

// Config represents the application configuration.
type Config struct {
	HTTPAddr     string     `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigin   string     `env:"CORS_ORIGIN" envDefault:"http://localhost:8081"`
	DatabaseURL  string     `env:"DATABASE_URL,required"`
	GeminiAPIKey string     `env:"GEMINI_API_KEY"`
	LocalLLMURL  string     `env:"LOCAL_LLM_URL"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// HasGeminiKey reports whether a usable Gemini API key is configured.
func (c Config) HasGeminiKey() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != APIKeyPlaceholder
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Package config loads wayhome settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix namespaces every variable, e.g. WAYHOME_LOG_LEVEL.
const Prefix = "WAYHOME"

// Log output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds all settings loaded from environment variables.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"auto"` // auto, console or json

	// Optional YAML files; the embedded defaults are used when empty.
	SeedPath string `envconfig:"SEED"`
	JobsPath string `envconfig:"JOBS"`

	// Where to write Prometheus text metrics after a command; "-" is stderr.
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// IsDevelopment reports whether the environment is development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// ConsoleLogs reports whether logs should be human-readable.
func (c *Config) ConsoleLogs() bool {
	switch strings.ToLower(c.LogFormat) {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	default:
		return c.IsDevelopment()
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatAuto, FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q, expected auto, console or json", c.LogFormat)
	}
	return nil
}

// Load reads and validates configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

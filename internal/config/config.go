package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine settings that are not per-run CLI arguments.
// Every field has a usable default; a missing config file is not an error.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds compute-fleet defaults.
type EngineConfig struct {
	// Units is the default number of compute units when -n is not given.
	// Must be a multiple of 8.
	Units int `yaml:"units"`

	// Timing enables per-phase wall-clock accounting (kernel compute,
	// transfers, aggregation, population, result fetch), reported at the
	// end of a run.
	Timing bool `yaml:"timing"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // Options: "off", "error", "warn", "info", "debug"
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Engine:  EngineConfig{Units: 8},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Engine.Units <= 0 || c.Engine.Units%8 != 0 {
		return fmt.Errorf("engine units must be a positive multiple of 8, got %d", c.Engine.Units)
	}

	validLogLevels := map[string]bool{
		"off":     true,
		"error":   true,
		"warn":    true,
		"warning": true,
		"info":    true,
		"debug":   true,
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info" // Default to info if not specified
	} else if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (valid options: off, error, warn, info, debug)", c.Logging.Level)
	}

	return nil
}

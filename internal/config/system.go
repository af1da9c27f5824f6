// Package config holds the system configuration shared by every command.
// Values are populated from ~/.qimen.yaml, QIMEN_* env vars and CLI flags.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dunjia/qimen/internal/domain/entities"
)

// EnvPrefix is the environment variable prefix, e.g. QIMEN_FORMAT.
const EnvPrefix = "QIMEN"

// Built-in defaults.
const (
	DefaultFormat      = "text"
	DefaultColor       = true
	DefaultConcurrency = 4
)

// SystemConfig represents the global configuration file (~/.qimen.yaml).
type SystemConfig struct {
	// Output format used when --format is not given
	Format string `mapstructure:"format"`

	// Colour in table and grid output
	Color bool `mapstructure:"color"`

	// Text written for empty palace slots
	Placeholder string `mapstructure:"placeholder"`

	// Maximum charts computed in parallel by batch (0 = no limit)
	Concurrency int `mapstructure:"concurrency"`
}

// SetDefaults registers the built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("format", DefaultFormat)
	viper.SetDefault("color", DefaultColor)
	viper.SetDefault("placeholder", entities.DefaultPlaceholder)
	viper.SetDefault("concurrency", DefaultConcurrency)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (*SystemConfig, error) {
	SetDefaults()

	var cfg SystemConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode system config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. Format names are checked by the formatter
// factory, which owns the list.
func (c *SystemConfig) Validate() error {
	if c.Format == "" {
		return fmt.Errorf("format must not be empty")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.Placeholder == "" {
		return fmt.Errorf("placeholder must not be empty")
	}
	return nil
}

// Package config loads ticketscan configuration from files, environment
// variables, and defaults.
package config

import (
	"fmt"

	"github.com/seatswap/ticketscan/internal/engine"
	"github.com/seatswap/ticketscan/internal/pipeline"
)

// Config is the top-level application configuration.
type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
}

// EngineConfig configures the recognition backends.
type EngineConfig struct {
	Language       string `mapstructure:"language" yaml:"language"`
	DPI            int    `mapstructure:"dpi" yaml:"dpi"`
	Whitelist      string `mapstructure:"whitelist" yaml:"whitelist"`
	PreserveSpaces bool   `mapstructure:"preserve_spaces" yaml:"preserve_spaces"`
}

// PipelineConfig configures the strategy thresholds.
type PipelineConfig struct {
	FastPassThreshold float64 `mapstructure:"fast_pass_threshold" yaml:"fast_pass_threshold"`
	AdvancedThreshold float64 `mapstructure:"advanced_threshold" yaml:"advanced_threshold"`
	MaxVariants       int     `mapstructure:"max_variants" yaml:"max_variants"`
	QRMinFields       int     `mapstructure:"qr_min_fields" yaml:"qr_min_fields"`
}

// Default returns the default configuration.
func Default() Config {
	pc := pipeline.DefaultConfig()
	ec := engine.DefaultConfig()
	return Config{
		LogLevel: "info",
		Engine: EngineConfig{
			Language:       ec.Language,
			DPI:            ec.DPI,
			Whitelist:      ec.Whitelist,
			PreserveSpaces: ec.PreserveSpaces,
		},
		Pipeline: PipelineConfig{
			FastPassThreshold: pc.FastPassThreshold,
			AdvancedThreshold: pc.AdvancedThreshold,
			MaxVariants:       pc.MaxVariants,
			QRMinFields:       pc.QRMinFields,
		},
	}
}

// Validate checks the configuration for coherent values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Pipeline.FastPassThreshold < 0 || c.Pipeline.FastPassThreshold > 100 {
		return fmt.Errorf("fast_pass_threshold out of range: %v", c.Pipeline.FastPassThreshold)
	}
	if c.Pipeline.AdvancedThreshold < 0 || c.Pipeline.AdvancedThreshold > 100 {
		return fmt.Errorf("advanced_threshold out of range: %v", c.Pipeline.AdvancedThreshold)
	}
	if c.Pipeline.MaxVariants < 1 {
		return fmt.Errorf("max_variants must be >= 1, got %d", c.Pipeline.MaxVariants)
	}
	if c.Engine.DPI < 0 {
		return fmt.Errorf("dpi must be >= 0, got %d", c.Engine.DPI)
	}
	return nil
}

// ToPipelineConfig maps the loaded configuration onto pipeline settings.
func (c *Config) ToPipelineConfig() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.FastPassThreshold = c.Pipeline.FastPassThreshold
	pc.AdvancedThreshold = c.Pipeline.AdvancedThreshold
	pc.MaxVariants = c.Pipeline.MaxVariants
	if c.Pipeline.QRMinFields > 0 {
		pc.QRMinFields = c.Pipeline.QRMinFields
	}
	if c.Engine.Language != "" {
		pc.Engine.Language = c.Engine.Language
	}
	if c.Engine.DPI > 0 {
		pc.Engine.DPI = c.Engine.DPI
	}
	if c.Engine.Whitelist != "" {
		pc.Engine.Whitelist = c.Engine.Whitelist
	}
	pc.Engine.PreserveSpaces = c.Engine.PreserveSpaces
	return pc
}

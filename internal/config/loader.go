package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "ticketscan"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "TICKETSCAN"
)

// Loader handles loading configuration from files and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader backed by the global viper instance so that
// CLI flag bindings participate.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewLoaderWith creates a loader with a dedicated viper instance, used by
// tests to avoid global state.
func NewLoaderWith(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load reads configuration from files, environment variables, and defaults,
// then validates it. A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// SetConfigFile pins an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	if path != "" {
		l.v.SetConfigFile(path)
	}
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "ticketscan"))
	}
	l.v.AddConfigPath("/etc/ticketscan")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	def := Default()
	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("engine.language", def.Engine.Language)
	l.v.SetDefault("engine.dpi", def.Engine.DPI)
	l.v.SetDefault("engine.whitelist", def.Engine.Whitelist)
	l.v.SetDefault("engine.preserve_spaces", def.Engine.PreserveSpaces)
	l.v.SetDefault("pipeline.fast_pass_threshold", def.Pipeline.FastPassThreshold)
	l.v.SetDefault("pipeline.advanced_threshold", def.Pipeline.AdvancedThreshold)
	l.v.SetDefault("pipeline.max_variants", def.Pipeline.MaxVariants)
	l.v.SetDefault("pipeline.qr_min_fields", def.Pipeline.QRMinFields)
}

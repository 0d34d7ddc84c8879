package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere on the search path: defaults apply.
	cfg, err := NewLoaderWith(viper.New()).Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.LogLevel, cfg.LogLevel)
	assert.Equal(t, def.Engine.Language, cfg.Engine.Language)
	assert.Equal(t, def.Pipeline.FastPassThreshold, cfg.Pipeline.FastPassThreshold)
}

func TestLoad_ConfigFile(t *testing.T) {
	fileCfg := Config{
		LogLevel: "debug",
		Engine: EngineConfig{
			Language:       "deu",
			DPI:            150,
			PreserveSpaces: true,
		},
		Pipeline: PipelineConfig{
			FastPassThreshold: 85,
			AdvancedThreshold: 55,
			MaxVariants:       2,
			QRMinFields:       4,
		},
	}
	data, err := yaml.Marshal(&fileCfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ticketscan.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loader := NewLoaderWith(viper.New())
	loader.SetConfigFile(path)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "deu", cfg.Engine.Language)
	assert.Equal(t, 150, cfg.Engine.DPI)
	assert.Equal(t, 85.0, cfg.Pipeline.FastPassThreshold)
	assert.Equal(t, 55.0, cfg.Pipeline.AdvancedThreshold)
	assert.Equal(t, 2, cfg.Pipeline.MaxVariants)
	assert.Equal(t, 4, cfg.Pipeline.QRMinFields)
	// Values the file omits fall back to defaults.
	assert.Equal(t, Default().Engine.Whitelist, cfg.Engine.Whitelist)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticketscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shout\n"), 0o644))

	loader := NewLoaderWith(viper.New())
	loader.SetConfigFile(path)

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("TICKETSCAN_LOG_LEVEL", "warn")

	cfg, err := NewLoaderWith(viper.New()).Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Pipeline.FastPassThreshold = 150
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Pipeline.MaxVariants = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Engine.DPI = -1
	assert.Error(t, cfg.Validate())
}

func TestConfig_ToPipelineConfig(t *testing.T) {
	cfg := Default()
	cfg.Engine.Language = "fra"
	cfg.Pipeline.FastPassThreshold = 75
	cfg.Pipeline.QRMinFields = 2

	pc := cfg.ToPipelineConfig()
	assert.Equal(t, "fra", pc.Engine.Language)
	assert.Equal(t, 75.0, pc.FastPassThreshold)
	assert.Equal(t, 2, pc.QRMinFields)
	// Settings outside the file's reach keep pipeline defaults.
	assert.Equal(t, 10, pc.TemplateBoost)
	assert.Equal(t, 95, pc.QRConfidence)
}

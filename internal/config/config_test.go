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

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, InitConfig(""))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Prefix)
	assert.False(t, cfg.NoVerify)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.APIBase)
}

func TestInitConfigReadsFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	raw, err := yaml.Marshal(map[string]any{
		"prefix":    "WIP:",
		"no_verify": true,
		"model":     "gpt-4o",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stagehand.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0644))

	require.NoError(t, InitConfig(path))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "WIP:", cfg.Prefix)
	assert.True(t, cfg.NoVerify)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestInitConfigMissingFileTolerated(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HOME", t.TempDir())
	assert.NoError(t, InitConfig(""))
}

func TestSetConfigValue(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, InitConfig(""))

	SetConfigValue("prefix", "feat:")
	SetConfigValue("api_key", "secret")

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "feat:", cfg.Prefix)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestSaveConfigCreatesFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, InitConfig(""))
	SetConfigValue("prefix", "chore:")
	require.NoError(t, SaveConfig())

	written, err := os.ReadFile(filepath.Join(home, DefaultConfigName+".yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "chore:")
}

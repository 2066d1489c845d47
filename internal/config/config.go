// Package config loads and persists stagehand settings through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the persisted stagehand settings.
type Config struct {
	Prefix   string `mapstructure:"prefix"`
	NoVerify bool   `mapstructure:"no_verify"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	APIBase  string `mapstructure:"api_base"`
}

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultConfigName = ".stagehand"
)

// InitConfig wires viper to the config file. A missing file is not an error;
// defaults and environment variables still apply.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("prefix", "")
	viper.SetDefault("no_verify", false)
	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")

	viper.SetEnvPrefix("stagehand")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// GetConfig unmarshals the current viper state.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// SetConfigValue updates a single key in the viper state.
func SetConfigValue(key string, value any) {
	viper.Set(key, value)
}

// SaveConfig writes the current viper state back to the config file,
// creating it next to the user's home directory when none exists yet.
func SaveConfig() error {
	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr != nil {
				return fmt.Errorf("failed to locate home directory: %w", homeErr)
			}
			return viper.WriteConfigAs(filepath.Join(home, DefaultConfigName+".yaml"))
		}
		return err
	}
	return nil
}

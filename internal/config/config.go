package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds user-tunable application settings. Everything has a default;
// the file is optional.
type Config struct {
	// DBPath overrides the quest/ledger database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// DefaultWindow is the aggregation horizon used when a command is run
	// without --window (weekly, monthly or all).
	DefaultWindow string `mapstructure:"default_window" yaml:"default_window"`

	// BoardRefreshSec is the TUI board tick interval in seconds. The tick
	// also drives the day-boundary reset and missed-quest check.
	BoardRefreshSec int `mapstructure:"board_refresh_sec" yaml:"board_refresh_sec"`
}

// DefaultPath returns ~/.config/lifequest/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "lifequest", "config.yaml")
}

func defaults() *Config {
	return &Config{
		DefaultWindow:   "weekly",
		BoardRefreshSec: 1,
	}
}

// Load reads configuration from the given YAML file path using Viper. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("default_window", "weekly")
	v.SetDefault("board_refresh_sec", 1)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.BoardRefreshSec <= 0 {
		cfg.BoardRefreshSec = 1
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file at path, creating parent
// directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("default_window", cfg.DefaultWindow)
	v.Set("board_refresh_sec", cfg.BoardRefreshSec)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

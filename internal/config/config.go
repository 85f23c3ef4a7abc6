// Public domain.

// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Slack settings stay empty unless
// notification delivery is requested.
type Config struct {
	DataPath         string `env:"KINDER_DATA_PATH"`
	SlackBotToken    string `env:"SLACK_BOT_TOKEN"`
	SlackControlRoom string `env:"SLACK_CHANNEL_ID_CONTROL_ROOM"`
}

// Load reads the environment and ensures the data directory exists. The
// data path defaults to ~/Documents/Kinder_Trigger, where target sets and
// generated artifacts live.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		cfg.DataPath = filepath.Join(home, "Documents", "Kinder_Trigger")
	}
	if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
		return Config{}, fmt.Errorf("creating data directory: %w", err)
	}
	return cfg, nil
}

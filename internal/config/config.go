package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional ~/.lifequest.yaml file.
type Config struct {
	// DBPath overrides the database location.
	DBPath string `yaml:"db_path"`
	// DailyQuests disables daily quest generation when set to false.
	DailyQuests *bool `yaml:"daily_quests"`
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".lifequest.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error; the
// zero Config means all defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DailyQuestsEnabled defaults to true.
func (c *Config) DailyQuestsEnabled() bool {
	return c.DailyQuests == nil || *c.DailyQuests
}

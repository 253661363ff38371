// Package config handles the application's dotdir configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat microfarm configuration.
type Config struct {
	Version string `json:"version"`
	// DBPath overrides the default database location when set.
	DBPath string `json:"db_path,omitempty"`
	// AllowSundayProduction is the default for the Sunday checkbox on new
	// orders; each created series still stores its own decision.
	AllowSundayProduction bool `json:"allow_sunday_production,omitempty"`
	// RefreshThrottleMs bounds how often data-change notifications fan out
	// to the report views. Zero means no throttle.
	RefreshThrottleMs int `json:"refresh_throttle_ms,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:           "1",
		RefreshThrottleMs: 500,
	}
}

// Dir returns the configuration directory, ~/.microfarm.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".microfarm"), nil
}

// LoadConfig reads config.json from the given directory. A missing file is
// not an error; the defaults apply.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes config.json to the given directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

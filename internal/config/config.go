// Package config persists the browser's UI preference file.
//
// Exactly one preference survives across sessions: the display theme.
// Filter state deliberately lives in the shareable link instead (see
// the urlstate package), so this file stays a single flag.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Theme names. The default is dark; there is no terminal-background
// auto-detection.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the persistent application configuration.
type Config struct {
	Theme string `json:"theme"`
}

// DefaultConfig returns the fixed startup defaults.
func DefaultConfig() *Config {
	return &Config{Theme: ThemeDark}
}

// Path returns the config file location, honoring dataDir when set
// and falling back to ~/.paperscope otherwise.
func Path(dataDir string) string {
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".paperscope")
	}
	return filepath.Join(dataDir, "config.json")
}

// Load reads the config from disk, or returns defaults. A corrupt or
// missing file is not an error - the browser must always start.
func Load(dataDir string) *Config {
	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		return DefaultConfig()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	if cfg.Theme != ThemeLight && cfg.Theme != ThemeDark {
		cfg.Theme = ThemeDark
	}
	return &cfg
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save(dataDir string) error {
	path := Path(dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToggleTheme flips between light and dark.
func (c *Config) ToggleTheme() {
	if c.Theme == ThemeDark {
		c.Theme = ThemeLight
	} else {
		c.Theme = ThemeDark
	}
}

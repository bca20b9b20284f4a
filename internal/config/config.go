// Package config defines the StepProgress demo preferences and helpers for
// loading or saving them to disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edward-ap/stepprogress/internal/style"
)

const (
	// AppID is the stable application identifier used for config storage.
	AppID = "io.github.edward-ap.stepprogress"
	// AppConfigSubdir is the OS-specific directory that holds the config file.
	AppConfigSubdir = "StepProgress"
	// AppConfigName is the JSON file stored on disk.
	AppConfigName = "config.json"

	// DefaultWidth is the preferred window width when no persisted value exists.
	DefaultWidth = 420
	// DefaultHeight is the preferred window height.
	DefaultHeight = 160
	// MinWindowWidth keeps the default bar and its labels visible.
	MinWindowWidth = 360
	// DefaultPreset names the color preset used on first launch.
	DefaultPreset = "Classic"
)

// Config aggregates every user-facing preference persisted between sessions.
type Config struct {
	StylePath       string `json:"stylePath,omitempty"`
	Preset          string `json:"preset"`
	CurrentProgress int    `json:"currentProgress"`
	WindowW         int    `json:"windowW"`
	WindowH         int    `json:"windowH"`
	Trace           bool   `json:"trace,omitempty"`
}

// ConfigDir resolves the writable directory that should contain the config file.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppConfigSubdir), nil
}

// ConfigPath is a helper that returns the full path to config.json.
func ConfigPath() (string, error) {
	d, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, AppConfigName), nil
}

// Load reads the config from disk, applying defaults when necessary.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := newDefaultConfig()
			// Try saving an initial config, but still return defaults even if it fails.
			_ = cfg.Save()
			return cfg, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config parse error: %w", err)
	}
	cfg.applyRuntimeDefaults()
	return cfg, nil
}

// Save persists the configuration to disk, creating directories as needed.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// AppID returns the stable identifier used by the GUI framework.
func (c *Config) AppID() string { return AppID }

// newDefaultConfig builds an in-memory config populated with safe defaults.
func newDefaultConfig() *Config {
	cfg := &Config{
		Preset:  DefaultPreset,
		WindowW: DefaultWidth,
		WindowH: DefaultHeight,
	}
	cfg.applyRuntimeDefaults()
	return cfg
}

// applyRuntimeDefaults normalizes config values after a load or when defaults
// are constructed, ensuring the UI always receives sane inputs.
func (c *Config) applyRuntimeDefaults() {
	c.StylePath = strings.TrimSpace(c.StylePath)
	if p, ok := style.FindPreset(c.Preset); ok {
		c.Preset = p.Name
	} else {
		c.Preset = DefaultPreset
	}
	if c.CurrentProgress < 0 {
		c.CurrentProgress = 0
	}
	if c.WindowW == 0 {
		c.WindowW = DefaultWidth
	}
	if c.WindowW < MinWindowWidth {
		c.WindowW = MinWindowWidth
	}
	if c.WindowH <= 0 {
		c.WindowH = DefaultHeight
	}
}

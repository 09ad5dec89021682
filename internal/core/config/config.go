// Package config handles configuration loading and validation for ait.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. The data directory is
// injected by the caller (flag or environment), never read from a
// process-wide constant, so tests and scripted runs can point the tracker
// at any location.
type Config struct {
	ReportsDir string        `yaml:"reports_dir"`
	Tracker    TrackerConfig `yaml:"tracker"`
	Remind     RemindConfig  `yaml:"remind"`
	TUI        TUIConfig     `yaml:"tui"`
	DataDir    string        `yaml:"-"` // set by caller, not from config file
}

// TrackerConfig holds item tracking defaults.
type TrackerConfig struct {
	// ExpectedDays is the default expected completion offset for new items.
	ExpectedDays int `yaml:"expected_days"`
}

// RemindConfig holds the overdue reminder schedule.
type RemindConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string `yaml:"schedule"`
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tracker: TrackerConfig{ExpectedDays: 7},
		Remind:  RemindConfig{Schedule: "0 9 * * *"},
		TUI:     TUIConfig{Theme: "tokyo-night"},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Tracker.ExpectedDays == 0 {
		c.Tracker.ExpectedDays = defaults.Tracker.ExpectedDays
	}
	if c.Remind.Schedule == "" {
		c.Remind.Schedule = defaults.Remind.Schedule
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.ReportsDir == "" {
		c.ReportsDir = filepath.Join(c.DataDir, "logs")
	}
}

// ItemsPath returns the action item document location.
func (c *Config) ItemsPath() string {
	return filepath.Join(c.DataDir, "tracker", "action-items.json")
}

// MetricsPath returns the growth metrics document location.
func (c *Config) MetricsPath() string {
	return filepath.Join(c.DataDir, "tracker", "growth-metrics.json")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, 7, cfg.Tracker.ExpectedDays)
	assert.Equal(t, "0 9 * * *", cfg.Remind.Schedule)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, filepath.Join(dataDir, "logs"), cfg.ReportsDir)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Tracker.ExpectedDays)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	reports := t.TempDir()

	content := `
reports_dir: ` + reports + `
tracker:
  expected_days: 3
remind:
  schedule: "30 8 * * 1-5"
tui:
  theme: gruvbox
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, reports, cfg.ReportsDir)
	assert.Equal(t, 3, cfg.Tracker.ExpectedDays)
	assert.Equal(t, "30 8 * * 1-5", cfg.Remind.Schedule)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracker:\n  expected_days: 14\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Tracker.ExpectedDays)
	assert.Equal(t, "0 9 * * *", cfg.Remind.Schedule)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tracker: [not\n"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = " " },
			wantErr: "data_dir",
		},
		{
			name:    "expected days below one",
			mutate:  func(c *Config) { c.Tracker.ExpectedDays = 0 },
			wantErr: "tracker.expected_days",
		},
		{
			name:    "bad cron expression",
			mutate:  func(c *Config) { c.Remind.Schedule = "every tuesday" },
			wantErr: "remind.schedule",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.TUI.Theme = "solarized" },
			wantErr: "tui.theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ReportsDir = file

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestPaths(t *testing.T) {
	cfg := Config{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "tracker", "action-items.json"), cfg.ItemsPath())
	assert.Equal(t, filepath.Join("/data", "tracker", "growth-metrics.json"), cfg.MetricsPath())
}

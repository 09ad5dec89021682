package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/robfig/cron/v3"

	"github.com/colonyops/ait/internal/core/styles"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, nonEmpty),
		criterio.Run("reports_dir", c.ReportsDir, isDirectoryOrNotExist),
		criterio.Run("tracker.expected_days", c.Tracker.ExpectedDays, atLeastOneDay),
		criterio.Run("remind.schedule", c.Remind.Schedule, validCronSchedule),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
	)
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // created on first use
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func atLeastOneDay(days int) error {
	if days < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validCronSchedule(expr string) error {
	if expr == "" {
		return nil
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

func knownTheme(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

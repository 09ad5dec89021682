package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/data/stores"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// MetricsCmd implements the ait metrics command group.
type MetricsCmd struct {
	flags *Flags
	app   *tracker.App

	reader iojson.FileReader[map[string]json.RawMessage]
}

// NewMetricsCmd creates a new metrics command.
func NewMetricsCmd(flags *Flags, app *tracker.App) *MetricsCmd {
	return &MetricsCmd{flags: flags, app: app}
}

// Register adds the metrics command to the application.
func (cmd *MetricsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "metrics",
		Usage:     "Manage longitudinal growth metrics",
		UsageText: "ait metrics <show|update|sync>",
		Description: `Growth metrics are a loosely structured record of aggregate statistics
across review periods, stored alongside the action items.

Examples:
  ait metrics show
  ait metrics update -f patch.json
  ait metrics sync`,
		Commands: []*cli.Command{
			cmd.showCmd(),
			cmd.updateCmd(),
			cmd.syncCmd(),
		},
	})

	return app
}

func (cmd *MetricsCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the growth metrics document",
		UsageText: "ait metrics show",
		Action:    cmd.runShow,
	}
}

func (cmd *MetricsCmd) updateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Merge a JSON patch into the metrics document",
		UsageText: "ait metrics update [-f <file>]",
		Description: `Performs a shallow key-wise merge: top-level keys in the patch overwrite
the existing value wholesale. The patch shape is not validated beyond
being a JSON object.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.runUpdate,
	}
}

func (cmd *MetricsCmd) syncCmd() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Recompute derivable metrics",
		UsageText: "ait metrics sync",
		Description: `Scans the reports directory for dated daily reports and refreshes the
learning days, the current week's completion rate, and the current
month's rollup entry.`,
		Action: cmd.runSync,
	}
}

func (cmd *MetricsCmd) runShow(ctx context.Context, c *cli.Command) error {
	metrics, err := cmd.app.Metrics.Load(ctx)
	if err != nil {
		return fmt.Errorf("load growth metrics: %w", err)
	}
	return iojson.Write(c.Root().Writer, metrics)
}

func (cmd *MetricsCmd) runUpdate(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read metrics patch: %w", err)
	}

	patch, err := patchFromRaw(raw)
	if err != nil {
		return err
	}

	merged, err := cmd.app.Metrics.Update(ctx, patch)
	if err != nil {
		return err
	}

	return iojson.Write(c.Root().Writer, merged)
}

func (cmd *MetricsCmd) runSync(ctx context.Context, c *cli.Command) error {
	merged, err := cmd.app.Metrics.Sync(ctx, cmd.app.Config.ReportsDir)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "synced: %d learning days, %d weekly rates, %d monthly stats\n",
		len(merged.LearningDays), len(merged.WeeklyCompletionRates), len(merged.MonthlyStats))
	return nil
}

// patchFromRaw converts a decoded JSON object into a typed metrics patch,
// routing known keys to typed fields and everything else to Extra.
func patchFromRaw(raw map[string]json.RawMessage) (stores.MetricsPatch, error) {
	var patch stores.MetricsPatch

	for key, value := range raw {
		var err error
		switch key {
		case "learning_days":
			patch.LearningDays, err = decodePatchKey[[]string](key, value)
		case "weekly_completion_rates":
			patch.WeeklyCompletionRates, err = decodePatchKey[[]stores.WeeklyRate](key, value)
		case "monthly_stats":
			patch.MonthlyStats, err = decodePatchKey[[]stores.MonthlyStat](key, value)
		case "tech_areas_covered":
			patch.TechAreasCovered, err = decodePatchKey[[]string](key, value)
		case "updated_at":
			// stamped by the store, never taken from the patch
		default:
			if patch.Extra == nil {
				patch.Extra = map[string]json.RawMessage{}
			}
			patch.Extra[key] = value
		}
		if err != nil {
			return stores.MetricsPatch{}, err
		}
	}

	return patch, nil
}

func decodePatchKey[T any](key string, raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("metrics patch key %q: %w", key, err)
	}
	return &v, nil
}

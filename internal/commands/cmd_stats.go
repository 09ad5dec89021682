package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// StatsCmd implements the ait stats command.
type StatsCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command.
func NewStatsCmd(flags *Flags, app *tracker.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application.
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show summary statistics",
		UsageText: "ait stats [--json]",
		Description: `Prints the store-wide summary: per-status counts, completion rate, and a
preview of overdue items.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output summary as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// Run executes the stats action directly. Used as the root command's
// default action.
func (cmd *StatsCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	summary, err := cmd.app.Items.Summary(ctx)
	if err != nil {
		return fmt.Errorf("load summary: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.Write(out, summary)
	}

	_, _ = fmt.Fprintln(out, styles.Title.Render("Action Item Tracker — Summary"))
	_, _ = fmt.Fprintf(out, "  total:       %d\n", summary.Total)
	_, _ = fmt.Fprintf(out, "  pending:     %d\n", summary.Pending)
	_, _ = fmt.Fprintf(out, "  in progress: %d\n", summary.InProgress)
	_, _ = fmt.Fprintf(out, "  done:        %d\n", summary.Done)
	_, _ = fmt.Fprintf(out, "  dropped:     %d\n", summary.Dropped)
	_, _ = fmt.Fprintf(out, "  completion:  %.0f%%\n", summary.CompletionRate*100)

	overdue, err := cmd.app.Items.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("load overdue items: %w", err)
	}
	if len(overdue) > 0 {
		_, _ = fmt.Fprintf(out, "\n%s\n", styles.Warning.Render(fmt.Sprintf("Overdue: %d", len(overdue))))
		preview := overdue
		if len(preview) > 5 {
			preview = preview[:5]
		}
		for _, it := range preview {
			_, _ = fmt.Fprintf(out, "  - [%s] %s (expected by %s)\n", it.ID, it.Title, it.ExpectedBy)
		}
	}

	return nil
}

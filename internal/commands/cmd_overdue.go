package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// OverdueCmd implements the ait overdue command.
type OverdueCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewOverdueCmd creates a new overdue command.
func NewOverdueCmd(flags *Flags, app *tracker.App) *OverdueCmd {
	return &OverdueCmd{flags: flags, app: app}
}

// Register adds the overdue command to the application.
func (cmd *OverdueCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "overdue",
		Usage:       "List overdue action items",
		UsageText:   "ait overdue [--json]",
		Description: `Lists open items (pending or in progress) whose expected completion date has passed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *OverdueCmd) run(ctx context.Context, c *cli.Command) error {
	overdue, err := cmd.app.Items.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("load overdue items: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, it := range overdue {
			if err := iojson.WriteLine(out, it); err != nil {
				return fmt.Errorf("encode item: %w", err)
			}
		}
		return nil
	}

	if len(overdue) == 0 {
		_, _ = fmt.Fprintln(out, styles.Success.Render("No overdue action items"))
		return nil
	}

	for _, it := range overdue {
		_, _ = fmt.Fprintf(out, "%s [%s] %s — expected by %s\n",
			styles.Warning.Render("!"), it.ID, it.Title, it.ExpectedBy)
	}
	return nil
}

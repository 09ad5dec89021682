package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/tracker"
)

// StatusCmd implements the ait status command.
type StatusCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	note string
}

// NewStatusCmd creates a new status command.
func NewStatusCmd(flags *Flags, app *tracker.App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application.
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Update an action item's status",
		UsageText: "ait status <id> <status> [--note <text>]",
		Description: `Sets the status of an action item. Moving to done stamps the completion
time. An unknown id is reported but does not fail the command.

Examples:
  ait status AI-20260220-001 done
  ait status AI-20260220-002 dropped --note "superseded by AI-20260221-001"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "note",
				Aliases:     []string{"n"},
				Usage:       "note appended to the item's log",
				Destination: &cmd.note,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: ait status <id> <status>")
	}

	id := c.Args().Get(0)
	status := item.Status(c.Args().Get(1))

	updated, err := cmd.app.Items.UpdateStatus(ctx, id, status, cmd.note)
	if err != nil {
		// Unknown ids are a logical outcome, not a process failure: report
		// and exit zero so scripted reviewers can continue.
		if errors.Is(err, item.ErrNotFound) {
			_, _ = fmt.Fprintf(c.Root().Writer, "action item not found: %s\n", id)
			return nil
		}
		return fmt.Errorf("update status: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "updated %s to %s\n", updated.ID, updated.Status)
	return nil
}

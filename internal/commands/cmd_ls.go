package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// LsCmd implements the ait ls command.
type LsCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	status     string
	jsonOutput bool
}

// NewLsCmd creates a new ls command.
func NewLsCmd(flags *Flags, app *tracker.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application.
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List action items",
		UsageText: "ait ls [--status <status>] [--json]",
		Description: `Displays a table of all action items with their id, priority, title, and status.

Use --status to filter by lifecycle status, and --json for line-oriented
JSON output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (pending, in_progress, done, dropped)",
				Destination: &cmd.status,
			},
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

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	items, err := cmd.app.Items.List(ctx)
	if err != nil {
		return fmt.Errorf("list action items: %w", err)
	}

	if cmd.status != "" {
		status := item.Status(cmd.status)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q: must be one of pending, in_progress, done, dropped", cmd.status)
		}
		filtered := items[:0:0]
		for _, it := range items {
			if it.Status == status {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, it := range items {
			if err := iojson.WriteLine(out, it); err != nil {
				return fmt.Errorf("encode item: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No action items found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPRIORITY\tTITLE\tSTATUS\tEXPECTED")
	for _, it := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			it.ID,
			styles.PriorityStyle(it.Priority).Render(string(it.Priority)),
			it.Title,
			tracker.Marker(it.Status),
			styles.StatusStyle(it.Status).Render(string(it.Status)),
			it.ExpectedBy,
		)
	}
	return w.Flush()
}

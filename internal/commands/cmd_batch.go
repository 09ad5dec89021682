package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// BatchCmd implements the ait batch command, the append path used by the
// daily analyzer to file its recommendations.
type BatchCmd struct {
	flags *Flags
	app   *tracker.App

	reader iojson.FileReader[[]tracker.ItemSpec]
}

// NewBatchCmd creates a new batch command.
func NewBatchCmd(flags *Flags, app *tracker.App) *BatchCmd {
	return &BatchCmd{flags: flags, app: app}
}

// Register adds the batch command to the application.
func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "batch",
		Usage:     "Add action items in bulk from JSON",
		UsageText: "ait batch [-f <file>]",
		Description: `Reads a JSON array of item specs from a file or stdin and appends one
action item per spec. Identifier sequences are assigned in input order.

Spec shape:
  [{"title": "...", "priority": "high", "steps": ["..."], "expected_days": 3}, ...]

Examples:
  ait batch -f recommendations.json
  tech-analyzer | ait batch`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	specs, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read item specs: %w", err)
	}

	if len(specs) == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, "no item specs provided")
		return nil
	}

	created, err := cmd.app.Items.BatchAdd(ctx, specs)
	if err != nil {
		return fmt.Errorf("batch add: %w", err)
	}

	out := c.Root().Writer
	for _, it := range created {
		_, _ = fmt.Fprintf(out, "added %s — %s\n", it.ID, it.Title)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/period"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/iojson"
)

// ReviewCmd implements the ait review command group used by the weekly and
// monthly reviewers.
type ReviewCmd struct {
	flags *Flags
	app   *tracker.App

	// shared flags
	jsonOutput bool
	render     bool
}

// NewReviewCmd creates a new review command.
func NewReviewCmd(flags *Flags, app *tracker.App) *ReviewCmd {
	return &ReviewCmd{flags: flags, app: app}
}

// Register adds the review command to the application.
func (cmd *ReviewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "review",
		Usage:     "Query action items by review period",
		UsageText: "ait review <week|month|range> ...",
		Description: `Period-scoped queries over the item store.

Weekly scoping matches the ISO review week derived from creation time;
month and range scoping match the item's source date.

Examples:
  ait review week 2026-W08
  ait review month 2026-02 --render
  ait review range 2026-02-01 2026-02-15 --json`,
		Commands: []*cli.Command{
			cmd.weekCmd(),
			cmd.monthCmd(),
			cmd.rangeCmd(),
		},
	})

	return app
}

func (cmd *ReviewCmd) sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output the full scoped result as JSON",
			Destination: &cmd.jsonOutput,
		},
		&cli.BoolFlag{
			Name:        "render",
			Usage:       "render the markdown review section in the terminal",
			Destination: &cmd.render,
		},
	}
}

func (cmd *ReviewCmd) weekCmd() *cli.Command {
	return &cli.Command{
		Name:      "week",
		Usage:     "Summarize a review week",
		UsageText: "ait review week <YYYY-W##> [--json|--render]",
		Flags:     cmd.sharedFlags(),
		Action:    cmd.runWeek,
	}
}

func (cmd *ReviewCmd) monthCmd() *cli.Command {
	return &cli.Command{
		Name:      "month",
		Usage:     "Summarize a calendar month",
		UsageText: "ait review month <YYYY-MM> [--json|--render]",
		Flags:     cmd.sharedFlags(),
		Action:    cmd.runMonth,
	}
}

func (cmd *ReviewCmd) rangeCmd() *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "Summarize an inclusive date range",
		UsageText: "ait review range <start> <end> [--json|--render]",
		Flags:     cmd.sharedFlags(),
		Action:    cmd.runRange,
	}
}

func (cmd *ReviewCmd) runWeek(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: ait review week <YYYY-W##>")
	}
	label := c.Args().Get(0)
	if !period.ValidWeekLabel(label) {
		return fmt.Errorf("invalid week label %q: expected YYYY-W## (e.g. 2026-W08)", label)
	}

	rep, err := cmd.app.Items.QueryWeek(ctx, label)
	if err != nil {
		return fmt.Errorf("query week: %w", err)
	}

	out := c.Root().Writer
	switch {
	case cmd.jsonOutput:
		return iojson.Write(out, rep)
	case cmd.render:
		return renderMarkdown(out, rep.Markdown(period.FromTime(time.Now())))
	default:
		_, _ = fmt.Fprintf(out, "%s: total %d, done %d, pending %d, in progress %d, dropped %d, overdue %d\n",
			rep.Scope, rep.Total, rep.Done, rep.Pending, rep.InProgress, rep.Dropped, rep.Overdue)
		_, _ = fmt.Fprintf(out, "completion rate: %.0f%%\n", rep.CompletionRate*100)
	}
	return nil
}

func (cmd *ReviewCmd) runMonth(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: ait review month <YYYY-MM>")
	}
	label := c.Args().Get(0)
	if !period.ValidMonthLabel(label) {
		return fmt.Errorf("invalid month label %q: expected YYYY-MM (e.g. 2026-02)", label)
	}

	sc, err := cmd.app.Items.QueryMonth(ctx, label)
	if err != nil {
		return fmt.Errorf("query month: %w", err)
	}

	return cmd.writeScoped(c, sc)
}

func (cmd *ReviewCmd) runRange(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: ait review range <start> <end>")
	}

	start, err := period.Parse(c.Args().Get(0))
	if err != nil {
		return err
	}
	end, err := period.Parse(c.Args().Get(1))
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("range end %s is before start %s", end, start)
	}

	sc, err := cmd.app.Items.QueryRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("query range: %w", err)
	}

	return cmd.writeScoped(c, sc)
}

func (cmd *ReviewCmd) writeScoped(c *cli.Command, sc tracker.Scoped) error {
	out := c.Root().Writer
	switch {
	case cmd.jsonOutput:
		return iojson.Write(out, sc)
	case cmd.render:
		return renderMarkdown(out, sc.Markdown())
	default:
		_, _ = fmt.Fprintf(out, "%s: total %d, done %d, pending %d, in progress %d, dropped %d\n",
			sc.Scope, sc.Total, sc.Done, sc.Pending, sc.InProgress, sc.Dropped)
		_, _ = fmt.Fprintf(out, "completion rate: %.0f%%\n", sc.CompletionRate*100)
	}
	return nil
}

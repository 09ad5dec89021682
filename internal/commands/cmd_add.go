package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/tracker"
)

// AddCmd implements the ait add command.
type AddCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	title        string
	priority     string
	source       string
	steps        []string
	expectedDays int
}

// NewAddCmd creates a new add command.
func NewAddCmd(flags *Flags, app *tracker.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application.
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add an action item",
		UsageText: "ait add [--title <title>] [--priority <p>] [--source <s>] [--step <s>...] [--expected-days <n>]",
		Description: `Adds a single action item to the tracker.

When --title is omitted an interactive form collects the fields instead.

Examples:
  ait add --title "Read the raft paper" --priority high --expected-days 3
  ait add --title "Ship v2 config" --step "write migration" --step "update docs"
  ait add`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "title for the action item",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (high, medium, low)",
				Value:       string(item.PriorityMedium),
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "source",
				Usage:       "reviewer that produced the item (daily, weekly, monthly)",
				Value:       string(item.SourceDaily),
				Destination: &cmd.source,
			},
			&cli.StringSliceFlag{
				Name:        "step",
				Usage:       "checklist step (repeatable, order-significant)",
				Destination: &cmd.steps,
			},
			&cli.IntFlag{
				Name:        "expected-days",
				Usage:       "expected completion offset in days",
				Destination: &cmd.expectedDays,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.title == "" {
		if err := cmd.promptUser(); err != nil {
			return err
		}
	}

	priority := item.Priority(cmd.priority)
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority %q: must be one of high, medium, low", cmd.priority)
	}

	expectedDays := cmd.expectedDays
	if expectedDays == 0 {
		expectedDays = cmd.app.Config.Tracker.ExpectedDays
	}

	created, err := cmd.app.Items.Add(ctx, tracker.ItemSpec{
		Title:        cmd.title,
		Priority:     priority,
		Source:       item.Source(cmd.source),
		Steps:        cmd.steps,
		ExpectedDays: expectedDays,
	})
	if err != nil {
		return fmt.Errorf("add action item: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "added %s — %s (expected by %s)\n", created.ID, created.Title, created.ExpectedBy)
	return nil
}

// promptUser collects item fields interactively.
func (cmd *AddCmd) promptUser() error {
	days := strconv.Itoa(cmd.app.Config.Tracker.ExpectedDays)
	var stepsText string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validateTitle).
				Value(&cmd.title),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("high", string(item.PriorityHigh)),
					huh.NewOption("medium", string(item.PriorityMedium)),
					huh.NewOption("low", string(item.PriorityLow)),
				).
				Value(&cmd.priority),
			huh.NewSelect[string]().
				Title("Source").
				Options(
					huh.NewOption("daily", string(item.SourceDaily)),
					huh.NewOption("weekly", string(item.SourceWeekly)),
					huh.NewOption("monthly", string(item.SourceMonthly)),
				).
				Value(&cmd.source),
			huh.NewText().
				Title("Steps").
				Description("One checklist step per line").
				Value(&stepsText),
			huh.NewInput().
				Title("Expected days").
				Validate(validateDays).
				Value(&days),
		),
	).Run()
	if err != nil {
		return err
	}

	for _, line := range strings.Split(stepsText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cmd.steps = append(cmd.steps, line)
		}
	}
	cmd.expectedDays, _ = strconv.Atoi(days)
	return nil
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func validateDays(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive number of days")
	}
	return nil
}

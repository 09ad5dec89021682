package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/core/logging"
	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/kv"
)

// RemindCmd implements the ait remind command: a long-running scheduler
// that periodically surfaces overdue items.
type RemindCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	schedule string
	once     bool
}

// NewRemindCmd creates a new remind command.
func NewRemindCmd(flags *Flags, app *tracker.App) *RemindCmd {
	return &RemindCmd{flags: flags, app: app}
}

// Register adds the remind command to the application.
func (cmd *RemindCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "remind",
		Usage:     "Run the overdue reminder scheduler",
		UsageText: "ait remind [--schedule <cron>] [--once]",
		Description: `Runs until interrupted, printing overdue action items on the configured
cron schedule. Each item is announced once per process; items that stay
overdue are not repeated on later ticks.

Examples:
  ait remind                      # use the configured schedule
  ait remind --schedule "0 9 * * 1-5"
  ait remind --once               # single check, then exit`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "schedule",
				Usage:       "cron expression overriding remind.schedule from config",
				Destination: &cmd.schedule,
			},
			&cli.BoolFlag{
				Name:        "once",
				Usage:       "check once and exit instead of scheduling",
				Destination: &cmd.once,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RemindCmd) run(ctx context.Context, c *cli.Command) error {
	log := logging.Component("remind")
	seen := kv.New[string, time.Time]()

	if cmd.once {
		return cmd.check(ctx, c, seen)
	}

	schedule := cmd.schedule
	if schedule == "" {
		schedule = cmd.app.Config.Remind.Schedule
	}

	runner := cron.New()
	_, err := runner.AddFunc(schedule, func() {
		if err := cmd.check(ctx, c, seen); err != nil {
			log.Error().Err(err).Msg("remind check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	log.Info().Str("schedule", schedule).Msg("reminder scheduler started")
	runner.Start()
	defer runner.Stop()

	<-ctx.Done()
	return nil
}

func (cmd *RemindCmd) check(ctx context.Context, c *cli.Command, seen *kv.Store[string, time.Time]) error {
	log := logging.Component("remind")
	overdue, err := cmd.app.Items.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("load overdue items: %w", err)
	}

	out := c.Root().Writer
	for _, it := range overdue {
		if !seen.SetIfAbsent(it.ID, time.Now()) {
			continue // already announced this run
		}
		_, _ = fmt.Fprintf(out, "%s [%s] %s — expected by %s\n",
			styles.Warning.Render("overdue"), it.ID, it.Title, it.ExpectedBy)
		log.Info().Str("id", it.ID).Str("expected_by", it.ExpectedBy.String()).Msg("overdue reminder")
	}

	return nil
}

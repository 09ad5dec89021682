package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/commands"
	"github.com/colonyops/ait/internal/core/config"
	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/data/stores"
	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &tracker.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "ait",
		Usage:     "Track action items across daily, weekly, and monthly reviews",
		UsageText: "ait [global options] command [command options]",
		Description: `ait files recommendations from the daily analysis pipeline as trackable
action items and rolls them up into weekly and monthly reviews.

Run 'ait' with no arguments to print the summary statistics.
Run 'ait tui' to browse items interactively.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("AIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/ait.log)",
				Sources:     cli.EnvVars("AIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("AIT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("AIT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/ait.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "ait.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			itemStore := stores.NewItemStore(cfg.ItemsPath())
			metricsStore := stores.NewMetricsStore(cfg.MetricsPath())

			items := tracker.NewService(itemStore, log.Logger)
			metrics := tracker.NewMetricsService(metricsStore, items, log.Logger)

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *tracker.NewApp(items, metrics, cfg)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	statsCmd := commands.NewStatsCmd(flags, app)

	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewAddCmd(flags, app).Register(root)
	root = commands.NewBatchCmd(flags, app).Register(root)
	root = commands.NewStatusCmd(flags, app).Register(root)
	root = statsCmd.Register(root)
	root = commands.NewOverdueCmd(flags, app).Register(root)
	root = commands.NewReviewCmd(flags, app).Register(root)
	root = commands.NewMetricsCmd(flags, app).Register(root)
	root = commands.NewRemindCmd(flags, app).Register(root)
	root = commands.NewTuiCmd(flags, app).Register(root)

	// Print the summary when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'ait --help' for usage", c.Args().First())
		}
		return statsCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

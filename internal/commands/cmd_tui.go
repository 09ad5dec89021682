package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/ait/internal/tracker"
	"github.com/colonyops/ait/internal/tui"
)

// TuiCmd implements the ait tui command.
type TuiCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewTuiCmd creates a new tui command.
func NewTuiCmd(flags *Flags, app *tracker.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Browse action items interactively",
		UsageText: "ait tui",
		Description: `Opens an interactive browser over the item store. Items can be marked
done, dropped, or in progress without leaving the table.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	model := tui.New(cmd.app.Items)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

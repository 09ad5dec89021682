// Package styles provides shared lipgloss styles for CLI and TUI output.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/ait/internal/core/item"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette = themes[DefaultTheme]

// SetTheme activates the named palette and rebuilds derived styles.
func SetTheme(p Palette) {
	CurrentPalette = p
	rebuild()
}

// Derived styles, rebuilt whenever the theme changes.
var (
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
)

func rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(CurrentPalette.Primary)
	Muted = lipgloss.NewStyle().Foreground(CurrentPalette.Muted)
	Success = lipgloss.NewStyle().Foreground(CurrentPalette.Success)
	Warning = lipgloss.NewStyle().Foreground(CurrentPalette.Warning)
	Error = lipgloss.NewStyle().Foreground(CurrentPalette.Error)
}

func init() { rebuild() }

// StatusStyle returns the style used when rendering a status.
func StatusStyle(s item.Status) lipgloss.Style {
	switch s {
	case item.StatusDone:
		return Success
	case item.StatusInProgress:
		return Warning
	case item.StatusDropped:
		return Muted
	default:
		return lipgloss.NewStyle().Foreground(CurrentPalette.Foreground)
	}
}

// PriorityStyle returns the style used when rendering a priority.
func PriorityStyle(p item.Priority) lipgloss.Style {
	switch p {
	case item.PriorityHigh:
		return Error
	case item.PriorityLow:
		return Muted
	default:
		return Warning
	}
}

// Package tui implements the interactive action item browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/core/styles"
	"github.com/colonyops/ait/internal/tracker"
)

type keyMap struct {
	Done       key.Binding
	Dropped    key.Binding
	InProgress key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Done:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "mark done")),
		Dropped:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop")),
		InProgress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "in progress")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Dropped, k.InProgress, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type itemsLoadedMsg struct {
	items []item.Item
	err   error
}

type statusUpdatedMsg struct {
	updated item.Item
	err     error
}

// Model is the bubbletea model for the item browser.
type Model struct {
	svc    *tracker.Service
	table  table.Model
	items  []item.Item
	keys   keyMap
	help   help.Model
	notice string
	width  int
}

// New creates a browser model over the tracker service.
func New(svc *tracker.Service) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CurrentPalette.Surface).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.CurrentPalette.Foreground).
		Background(styles.CurrentPalette.Surface).
		Bold(false)
	t.SetStyles(ts)

	return Model{
		svc:   svc,
		table: t,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

func columns(width int) []table.Column {
	title := width - 52
	if title < 20 {
		title = 20
	}
	return []table.Column{
		{Title: "ID", Width: 15},
		{Title: "Priority", Width: 8},
		{Title: "Title", Width: title},
		{Title: "Status", Width: 12},
		{Title: "Expected", Width: 10},
	}
}

// Init loads the items.
func (m Model) Init() tea.Cmd {
	return m.loadItems
}

func (m Model) loadItems() tea.Msg {
	items, err := m.svc.List(context.Background())
	return itemsLoadedMsg{items: items, err: err}
}

func (m Model) updateStatus(id string, status item.Status) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.svc.UpdateStatus(context.Background(), id, status, "")
		return statusUpdatedMsg{updated: updated, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(msg.Height - 6)
		m.help.Width = msg.Width

	case itemsLoadedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		m.table.SetRows(rows(msg.items))

	case statusUpdatedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("updated %s to %s", msg.updated.ID, msg.updated.Status)
		return m, m.loadItems

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadItems
		case key.Matches(msg, m.keys.Done):
			return m.selectedTransition(item.StatusDone)
		case key.Matches(msg, m.keys.Dropped):
			return m.selectedTransition(item.StatusDropped)
		case key.Matches(msg, m.keys.InProgress):
			return m.selectedTransition(item.StatusInProgress)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) selectedTransition(status item.Status) (tea.Model, tea.Cmd) {
	row := m.table.SelectedRow()
	if row == nil {
		return m, nil
	}
	return m, m.updateStatus(row[0], status)
}

// View renders the browser.
func (m Model) View() string {
	header := styles.Title.Render("Action Items")
	notice := styles.Muted.Render(m.notice)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.table.View(),
		notice,
		m.help.View(m.keys),
	)
}

func rows(items []item.Item) []table.Row {
	out := make([]table.Row, 0, len(items))
	for _, it := range items {
		out = append(out, table.Row{
			it.ID,
			string(it.Priority),
			it.Title,
			string(it.Status),
			it.ExpectedBy.String(),
		})
	}
	return out
}

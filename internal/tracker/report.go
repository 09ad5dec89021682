package tracker

import (
	"fmt"
	"strings"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/core/period"
)

// statusMarker maps statuses to their report markers.
var statusMarker = map[item.Status]string{
	item.StatusPending:    "⏳",
	item.StatusInProgress: "🔄",
	item.StatusDone:       "✅",
	item.StatusDropped:    "🗑️",
}

// Marker returns the report marker for a status, or "?" for unknown values
// read from hand-edited documents.
func Marker(s item.Status) string {
	if m, ok := statusMarker[s]; ok {
		return m
	}
	return "?"
}

// Markdown renders the week report as a review section: an item table, the
// completion rate, and the list of overdue items.
func (r WeekReport) Markdown(today period.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Action Item Review — %s\n\n", r.Scope)
	writeItemSection(&b, r.Scoped)

	if r.Overdue > 0 {
		fmt.Fprintf(&b, "\n## Overdue (%d)\n\n", r.Overdue)
		for _, it := range r.Items {
			if it.OverdueAt(today) {
				fmt.Fprintf(&b, "- [%s] %s — expected by %s\n", it.ID, it.Title, it.ExpectedBy)
			}
		}
	}

	return b.String()
}

// Markdown renders a month or range summary as a review section.
func (s Scoped) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Action Item Review — %s\n\n", s.Scope)
	writeItemSection(&b, s)
	return b.String()
}

func writeItemSection(b *strings.Builder, s Scoped) {
	b.WriteString("## Action Items\n\n")

	if len(s.Items) == 0 {
		b.WriteString("No action items recorded for this period.\n")
		return
	}

	b.WriteString("| Item | Priority | Status | Expected |\n")
	b.WriteString("|------|----------|--------|----------|\n")
	for _, it := range s.Items {
		fmt.Fprintf(b, "| %s | %s | %s %s | %s |\n",
			truncate(it.Title, 40), it.Priority, Marker(it.Status), it.Status, orDash(it.ExpectedBy.String()))
	}

	fmt.Fprintf(b, "\n**Completion rate**: %.0f%% (%d/%d)\n", s.CompletionRate*100, s.Done, s.Total)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

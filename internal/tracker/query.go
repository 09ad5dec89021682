package tracker

import (
	"context"
	"strings"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/core/period"
)

// Scoped is a summary over the subset of items matching a period filter.
// Items preserve store order.
type Scoped struct {
	Scope          string      `json:"scope"`
	Items          []item.Item `json:"items"`
	Total          int         `json:"total"`
	Done           int         `json:"done"`
	Pending        int         `json:"pending"`
	InProgress     int         `json:"in_progress"`
	Dropped        int         `json:"dropped"`
	CompletionRate float64     `json:"completion_rate"`
}

// WeekReport is the week-scoped summary. It additionally carries the count
// of open items already past their expected completion date.
type WeekReport struct {
	Scoped
	Overdue int `json:"overdue"`
}

// QueryWeek returns the summary for items whose review week equals label.
// The review week is derived from creation time, not source date.
func (s *Service) QueryWeek(ctx context.Context, label string) (WeekReport, error) {
	doc, err := s.store.Load()
	if err != nil {
		return WeekReport{}, err
	}

	matched := filter(doc.Items, func(it item.Item) bool {
		return it.ReviewWeek == label
	})

	today := period.FromTime(s.now())
	overdue := 0
	for _, it := range matched {
		if it.OverdueAt(today) {
			overdue++
		}
	}

	return WeekReport{
		Scoped:  scoped(label, matched),
		Overdue: overdue,
	}, nil
}

// QueryMonth returns the summary for items whose source date falls in the
// given YYYY-MM month.
func (s *Service) QueryMonth(ctx context.Context, label string) (Scoped, error) {
	doc, err := s.store.Load()
	if err != nil {
		return Scoped{}, err
	}

	matched := filter(doc.Items, func(it item.Item) bool {
		return strings.HasPrefix(it.SourceDate.String(), label)
	})

	return scoped(label, matched), nil
}

// QueryRange returns the summary for items whose source date falls within
// [start, end] inclusive. Comparison is lexical, which is chronological for
// zero-padded dates.
func (s *Service) QueryRange(ctx context.Context, start, end period.Date) (Scoped, error) {
	doc, err := s.store.Load()
	if err != nil {
		return Scoped{}, err
	}

	matched := filter(doc.Items, func(it item.Item) bool {
		return start <= it.SourceDate && it.SourceDate <= end
	})

	return scoped(start.String()+" ~ "+end.String(), matched), nil
}

func scoped(scope string, matched []item.Item) Scoped {
	sum := item.Summarize(matched)
	return Scoped{
		Scope:          scope,
		Items:          matched,
		Total:          sum.Total,
		Done:           sum.Done,
		Pending:        sum.Pending,
		InProgress:     sum.InProgress,
		Dropped:        sum.Dropped,
		CompletionRate: sum.CompletionRate,
	}
}

func filter(items []item.Item, keep func(item.Item) bool) []item.Item {
	matched := []item.Item{}
	for _, it := range items {
		if keep(it) {
			matched = append(matched, it)
		}
	}
	return matched
}

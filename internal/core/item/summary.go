package item

import "math"

// Summary holds per-status counts plus the derived completion rate.
// Dropped items are excluded from the completion rate denominator so that
// abandoning work does not lower the visible success rate.
type Summary struct {
	Total          int     `json:"total"`
	Pending        int     `json:"pending"`
	InProgress     int     `json:"in_progress"`
	Done           int     `json:"done"`
	Dropped        int     `json:"dropped"`
	CompletionRate float64 `json:"completion_rate"`
}

// Summarize recomputes the summary from scratch over items.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		case StatusDropped:
			s.Dropped++
		}
	}
	s.CompletionRate = CompletionRate(s.Done, s.Total, s.Dropped)
	return s
}

// CompletionRate computes round(done / max(total - dropped, 1), 2). The
// denominator floor of 1 avoids division by zero and yields 0.0 when
// nothing is done.
func CompletionRate(done, total, dropped int) float64 {
	denom := total - dropped
	if denom < 1 {
		denom = 1
	}
	return math.Round(float64(done)/float64(denom)*100) / 100
}

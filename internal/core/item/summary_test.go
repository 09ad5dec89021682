package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	items := []Item{
		{Status: StatusPending},
		{Status: StatusInProgress},
		{Status: StatusDone},
		{Status: StatusDone},
		{Status: StatusDropped},
	}

	got := Summarize(items)

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, got.Pending)
	assert.Equal(t, 1, got.InProgress)
	assert.Equal(t, 2, got.Done)
	assert.Equal(t, 1, got.Dropped)
	assert.InDelta(t, 0.5, got.CompletionRate, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, Summary{}, got)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name    string
		done    int
		total   int
		dropped int
		want    float64
	}{
		{name: "no items", done: 0, total: 0, dropped: 0, want: 0},
		{name: "all done", done: 4, total: 4, dropped: 0, want: 1},
		{name: "half done", done: 2, total: 4, dropped: 0, want: 0.5},
		{name: "dropped excluded from denominator", done: 2, total: 4, dropped: 1, want: 0.67},
		{name: "everything dropped floors denominator", done: 0, total: 3, dropped: 3, want: 0},
		{name: "rounds to two decimals", done: 1, total: 3, dropped: 0, want: 0.33},
		{name: "rounds half up", done: 1, total: 8, dropped: 0, want: 0.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CompletionRate(tt.done, tt.total, tt.dropped), 1e-9)
		})
	}
}

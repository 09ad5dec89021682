package tracker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/data/stores"
)

func newTestMetricsService(t *testing.T, items []item.Item) *MetricsService {
	t.Helper()
	svc := newSeededService(t, items)
	store := stores.NewMetricsStore(filepath.Join(t.TempDir(), "growth-metrics.json"))
	ms := NewMetricsService(store, svc, zerolog.Nop())
	ms.now = func() time.Time { return testClock }
	return ms
}

func TestSync(t *testing.T) {
	ms := newTestMetricsService(t, febItems())

	reports := t.TempDir()
	writeReport(t, reports, "2026-02-18.md")
	writeReport(t, reports, "github-monitor-20260220.md")

	// pre-existing state that sync must merge with, not clobber
	_, err := ms.Update(context.Background(), stores.MetricsPatch{
		LearningDays: &[]string{"2026-01-30", "2026-02-18"},
		WeeklyCompletionRates: &[]stores.WeeklyRate{
			{Week: "2026-W05", Total: 2, Done: 2, Rate: 1},
			{Week: "2026-W08", Total: 1, Done: 0, Rate: 0},
		},
	})
	require.NoError(t, err)

	m, err := ms.Sync(context.Background(), reports)
	require.NoError(t, err)

	// scanned days union existing days, deduped and sorted
	assert.Equal(t, []string{"2026-01-30", "2026-02-18", "2026-02-20"}, m.LearningDays)

	// the stale W08 entry is replaced, W05 kept
	require.Len(t, m.WeeklyCompletionRates, 2)
	assert.Equal(t, "2026-W05", m.WeeklyCompletionRates[0].Week)
	current := m.WeeklyCompletionRates[1]
	assert.Equal(t, "2026-W08", current.Week)
	assert.Equal(t, 3, current.Total)
	assert.Equal(t, 1, current.Done)
	assert.InDelta(t, 0.5, current.Rate, 1e-9)

	require.Len(t, m.MonthlyStats, 1)
	month := m.MonthlyStats[0]
	assert.Equal(t, "2026-02", month.Month)
	assert.Equal(t, 2, month.LearningDays) // only feb days count
	assert.Equal(t, 28, month.TotalDays)
	assert.InDelta(t, 0.07, month.LearningRate, 1e-9)
	assert.Equal(t, 3, month.ActionItemsTotal)
	assert.Equal(t, 1, month.ActionItemsDone)
	assert.True(t, month.RecordedAt.Equal(testClock))

	require.NotNil(t, m.UpdatedAt)
	assert.True(t, m.UpdatedAt.Equal(testClock))
}

func TestSyncRerunReplacesCurrentPeriod(t *testing.T) {
	ms := newTestMetricsService(t, febItems())
	ctx := context.Background()

	_, err := ms.Sync(ctx, filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)

	m, err := ms.Sync(ctx, filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)

	assert.Len(t, m.WeeklyCompletionRates, 1)
	assert.Len(t, m.MonthlyStats, 1)
}

func TestSyncPreservesExtras(t *testing.T) {
	ms := newTestMetricsService(t, nil)
	ctx := context.Background()

	_, err := ms.Update(ctx, stores.MetricsPatch{
		Extra: map[string]json.RawMessage{"streak": json.RawMessage(`9`)},
	})
	require.NoError(t, err)

	m, err := ms.Sync(ctx, filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	assert.JSONEq(t, `9`, string(m.Extra["streak"]))
}

func TestUnionSorted(t *testing.T) {
	got := unionSorted(
		[]string{"2026-02-20", "2026-02-18"},
		[]string{"2026-02-18", "2026-01-05"},
	)
	assert.Equal(t, []string{"2026-01-05", "2026-02-18", "2026-02-20"}, got)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		t    time.Time
		want int
	}{
		{t: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), want: 28},
		{t: time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC), want: 29},
		{t: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), want: 31},
		{t: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), want: 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, daysInMonth(tt.t))
	}
}

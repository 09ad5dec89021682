package stores

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetricsStore(t *testing.T) *MetricsStore {
	t.Helper()
	return NewMetricsStore(filepath.Join(t.TempDir(), "tracker", "growth-metrics.json"))
}

func TestMetricsStoreLoadMissing(t *testing.T) {
	store := newTestMetricsStore(t)

	m, err := store.Load()
	require.NoError(t, err)

	assert.Empty(t, m.LearningDays)
	assert.Empty(t, m.WeeklyCompletionRates)
	assert.Empty(t, m.MonthlyStats)
	assert.Nil(t, m.UpdatedAt)
}

func TestMetricsStoreLoadCorrupt(t *testing.T) {
	store := newTestMetricsStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("[]nope"), 0o644))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestMetricsStoreUpdateStampsUpdatedAt(t *testing.T) {
	store := newTestMetricsStore(t)
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	days := []string{"2026-02-19", "2026-02-20"}
	m, err := store.UpdateAt(MetricsPatch{LearningDays: &days}, now)
	require.NoError(t, err)

	require.NotNil(t, m.UpdatedAt)
	assert.True(t, m.UpdatedAt.Equal(now))
	assert.Equal(t, days, m.LearningDays)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, days, loaded.LearningDays)
	require.NotNil(t, loaded.UpdatedAt)
	assert.True(t, loaded.UpdatedAt.Equal(now))
}

func TestMetricsStorePatchOverwritesWholesale(t *testing.T) {
	store := newTestMetricsStore(t)
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	first := []string{"2026-02-01", "2026-02-02"}
	_, err := store.UpdateAt(MetricsPatch{LearningDays: &first}, now)
	require.NoError(t, err)

	second := []string{"2026-02-20"}
	m, err := store.UpdateAt(MetricsPatch{LearningDays: &second}, now)
	require.NoError(t, err)

	// shallow merge: the new value replaces the old list, no union
	assert.Equal(t, second, m.LearningDays)
}

func TestMetricsStoreNilPatchFieldsUntouched(t *testing.T) {
	store := newTestMetricsStore(t)
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	days := []string{"2026-02-20"}
	_, err := store.UpdateAt(MetricsPatch{LearningDays: &days}, now)
	require.NoError(t, err)

	rates := []WeeklyRate{{Week: "2026-W08", Total: 3, Done: 2, Rate: 0.67}}
	m, err := store.UpdateAt(MetricsPatch{WeeklyCompletionRates: &rates}, now)
	require.NoError(t, err)

	assert.Equal(t, days, m.LearningDays)
	assert.Equal(t, rates, m.WeeklyCompletionRates)
}

func TestMetricsExtraRoundTrip(t *testing.T) {
	store := newTestMetricsStore(t)
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	_, err := store.UpdateAt(MetricsPatch{
		Extra: map[string]json.RawMessage{
			"focus_hours": json.RawMessage(`{"2026-02": 41.5}`),
			"streak":      json.RawMessage(`12`),
		},
	}, now)
	require.NoError(t, err)

	m, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"2026-02": 41.5}`, string(m.Extra["focus_hours"]))
	assert.JSONEq(t, `12`, string(m.Extra["streak"]))

	// unknown keys survive as flat top-level keys on disk
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "streak")
	assert.Contains(t, raw, "learning_days")
}

func TestMetricsExtraCannotShadowKnownKeys(t *testing.T) {
	var m Metrics
	m.Apply(MetricsPatch{
		Extra: map[string]json.RawMessage{
			"learning_days": json.RawMessage(`"not a list"`),
			"mood":          json.RawMessage(`"good"`),
		},
	})

	assert.Nil(t, m.LearningDays)
	assert.NotContains(t, m.Extra, "learning_days")
	assert.Contains(t, m.Extra, "mood")
}

func TestMetricsUnmarshalSplitsExtras(t *testing.T) {
	var m Metrics
	err := json.Unmarshal([]byte(`{
		"learning_days": ["2026-02-20"],
		"tech_areas_covered": ["go"],
		"custom_metric": {"a": 1}
	}`), &m)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-02-20"}, m.LearningDays)
	assert.Equal(t, []string{"go"}, m.TechAreasCovered)
	assert.JSONEq(t, `{"a": 1}`, string(m.Extra["custom_metric"]))
	assert.NotContains(t, m.Extra, "learning_days")
}

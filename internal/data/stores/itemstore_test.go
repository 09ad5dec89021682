package stores

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/ait/internal/core/item"
)

func newTestItemStore(t *testing.T) *ItemStore {
	t.Helper()
	return NewItemStore(filepath.Join(t.TempDir(), "tracker", "action-items.json"))
}

func TestItemStoreLoadMissing(t *testing.T) {
	store := newTestItemStore(t)

	doc, err := store.Load()
	require.NoError(t, err)

	assert.NotNil(t, doc.Items)
	assert.Empty(t, doc.Items)
	assert.Equal(t, item.Summarize(nil), doc.Stats)
}

func TestItemStoreLoadEmptyFile(t *testing.T) {
	store := newTestItemStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o644))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
}

func TestItemStoreLoadCorrupt(t *testing.T) {
	store := newTestItemStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
	assert.Contains(t, err.Error(), store.Path())
}

func TestItemStoreSaveRecomputesStats(t *testing.T) {
	store := newTestItemStore(t)

	err := store.Save(Document{
		Items: []item.Item{
			{ID: "AI-20260220-001", Status: item.StatusDone},
			{ID: "AI-20260220-002", Status: item.StatusPending},
		},
		// deliberately wrong, must be replaced on write
		Stats: item.Summary{Total: 99},
	})
	require.NoError(t, err)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Stats.Total)
	assert.Equal(t, 1, doc.Stats.Done)
	assert.InDelta(t, 0.5, doc.Stats.CompletionRate, 1e-9)
}

func TestItemStoreSaveLoadIdempotent(t *testing.T) {
	store := newTestItemStore(t)
	require.NoError(t, store.Append(item.Item{ID: "AI-20260220-001", Status: item.StatusPending}))

	first, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	doc, err := store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Save(doc))

	second, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestItemStoreSaveIsPrettyPrinted(t *testing.T) {
	store := newTestItemStore(t)
	require.NoError(t, store.Save(Document{}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"items\"")
	assert.True(t, json.Valid(data))
}

func TestItemStoreAppendRoundTrip(t *testing.T) {
	store := newTestItemStore(t)

	completed := time.Date(2026, 2, 20, 15, 4, 5, 0, time.UTC)
	it := item.Item{
		ID:          "AI-20260220-001",
		Title:       "read the raft paper",
		Source:      item.SourceDaily,
		SourceDate:  "2026-02-20",
		Priority:    item.PriorityHigh,
		Status:      item.StatusDone,
		ExpectedBy:  "2026-02-23",
		Steps:       []string{"print it", "read it"},
		CreatedAt:   time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
		CompletedAt: &completed,
		Notes:       []item.Note{{Time: completed, Content: "done over lunch"}},
		ReviewWeek:  "2026-W08",
	}
	require.NoError(t, store.Append(it))

	doc, err := store.Load()
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, it, doc.Items[0])
}

func TestItemStoreMutateErrorAbortsWrite(t *testing.T) {
	store := newTestItemStore(t)
	require.NoError(t, store.Append(item.Item{ID: "AI-20260220-001", Status: item.StatusPending}))

	err := store.Mutate(func(doc *Document) error {
		doc.Items = nil
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Items, 1)
}

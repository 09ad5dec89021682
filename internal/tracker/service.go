// Package tracker implements the action item tracking engine: item
// creation with per-day sequential identifiers, the status lifecycle,
// period-scoped queries, overdue detection, and growth metrics rollups.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/ait/internal/core/item"
	"github.com/colonyops/ait/internal/core/period"
	"github.com/colonyops/ait/internal/data/stores"
)

// DefaultExpectedDays is the expected completion offset applied when an
// item spec does not supply one.
const DefaultExpectedDays = 7

// ItemSpec is the caller-facing shape for creating an action item. The
// JSON tags match the batch input format produced by the daily analyzer.
type ItemSpec struct {
	Title        string        `json:"title"`
	Priority     item.Priority `json:"priority"`
	Source       item.Source   `json:"source"`
	Steps        []string      `json:"steps"`
	ExpectedDays int           `json:"expected_days"`
}

// Service owns all reads and writes against the item store.
type Service struct {
	store *stores.ItemStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a tracker service over the given store.
func NewService(store *stores.ItemStore, logger zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   logger.With().Str("component", "tracker").Logger(),
		now:   time.Now,
	}
}

// NextID derives the identifier for the next item created on sourceDate:
// AI-<YYYYMMDD>-<NNN>, where NNN is the 1-based per-day sequence zero-padded
// to three digits. The count is taken over the provided items, so callers
// that need a contiguous sequence must count and append under the same
// store mutation.
func NextID(items []item.Item, sourceDate period.Date) string {
	count := 0
	for _, it := range items {
		if it.SourceDate == sourceDate {
			count++
		}
	}
	return fmt.Sprintf("AI-%s-%03d", sourceDate.Compact(), count+1)
}

// Add creates a single action item from the spec and appends it to the
// store. Identifier generation and the append happen inside one store
// mutation, so in-process sequences stay contiguous. Sequences are still
// not safe against a second process racing the same day.
func (s *Service) Add(ctx context.Context, spec ItemSpec) (item.Item, error) {
	var created item.Item
	err := s.store.Mutate(func(doc *stores.Document) error {
		created = s.build(doc.Items, spec)
		doc.Items = append(doc.Items, created)
		return nil
	})
	if err != nil {
		return item.Item{}, fmt.Errorf("add action item: %w", err)
	}

	s.log.Info().Str("id", created.ID).Str("title", created.Title).Msg("action item added")
	return created, nil
}

// BatchAdd creates one item per spec in a single store mutation, in order.
func (s *Service) BatchAdd(ctx context.Context, specs []ItemSpec) ([]item.Item, error) {
	created := make([]item.Item, 0, len(specs))
	err := s.store.Mutate(func(doc *stores.Document) error {
		for _, spec := range specs {
			it := s.build(doc.Items, spec)
			doc.Items = append(doc.Items, it)
			created = append(created, it)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch add action items: %w", err)
	}

	s.log.Info().Int("count", len(created)).Msg("action items added")
	return created, nil
}

// build materializes a spec into an item using the current items for
// identifier scoping. Defaults: medium priority, daily source, 7-day
// expected completion offset, untitled title.
func (s *Service) build(existing []item.Item, spec ItemSpec) item.Item {
	now := s.now()
	today := period.FromTime(now)

	if spec.Title == "" {
		spec.Title = "untitled"
	}
	if spec.Priority == "" {
		spec.Priority = item.PriorityMedium
	}
	if spec.Source == "" {
		spec.Source = item.SourceDaily
	}
	if spec.ExpectedDays <= 0 {
		spec.ExpectedDays = DefaultExpectedDays
	}
	if spec.Steps == nil {
		spec.Steps = []string{}
	}

	return item.Item{
		ID:         NextID(existing, today),
		Title:      spec.Title,
		Source:     spec.Source,
		SourceDate: today,
		Priority:   spec.Priority,
		Status:     item.StatusPending,
		ExpectedBy: today.AddDays(spec.ExpectedDays),
		Steps:      spec.Steps,
		CreatedAt:  now,
		ReviewWeek: period.WeekLabel(now),
	}
}

// UpdateStatus sets the status of the item with the given ID. Any status
// may follow any other status; moving to done stamps completed_at, and
// moving away from done leaves the old timestamp in place. A non-empty
// note is appended to the item's note log. Returns item.ErrNotFound and
// leaves the store unmodified when no item matches.
func (s *Service) UpdateStatus(ctx context.Context, id string, status item.Status, note string) (item.Item, error) {
	if !status.IsValid() {
		return item.Item{}, fmt.Errorf("invalid status %q: must be one of pending, in_progress, done, dropped", status)
	}

	var updated item.Item
	err := s.store.Mutate(func(doc *stores.Document) error {
		for i := range doc.Items {
			if doc.Items[i].ID != id {
				continue
			}

			now := s.now()
			doc.Items[i].Status = status
			if status == item.StatusDone {
				doc.Items[i].CompletedAt = &now
			}
			if note != "" {
				doc.Items[i].Notes = append(doc.Items[i].Notes, item.Note{Time: now, Content: note})
			}

			updated = doc.Items[i]
			return nil
		}
		return item.ErrNotFound
	})
	if err != nil {
		return item.Item{}, err
	}

	s.log.Info().Str("id", id).Str("status", string(status)).Msg("action item updated")
	return updated, nil
}

// List returns all items in store order.
func (s *Service) List(ctx context.Context) ([]item.Item, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// Summary returns the store-wide summary statistics.
func (s *Service) Summary(ctx context.Context) (item.Summary, error) {
	doc, err := s.store.Load()
	if err != nil {
		return item.Summary{}, err
	}
	return doc.Stats, nil
}

// Overdue returns all open items whose expected completion date has
// passed, over the whole store. Pure read.
func (s *Service) Overdue(ctx context.Context) ([]item.Item, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	today := period.FromTime(s.now())
	var overdue []item.Item
	for _, it := range doc.Items {
		if it.OverdueAt(today) {
			overdue = append(overdue, it)
		}
	}
	return overdue, nil
}

package tracker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/ait/internal/core/period"
	"github.com/colonyops/ait/internal/data/stores"
)

// MetricsService maintains the longitudinal growth metrics document. It
// reads scoped summaries from the item service and merges them with
// learning days discovered from the daily report files.
type MetricsService struct {
	store *stores.MetricsStore
	items *Service
	log   zerolog.Logger
	now   func() time.Time
}

// NewMetricsService creates a metrics service.
func NewMetricsService(store *stores.MetricsStore, items *Service, logger zerolog.Logger) *MetricsService {
	return &MetricsService{
		store: store,
		items: items,
		log:   logger.With().Str("component", "metrics").Logger(),
		now:   time.Now,
	}
}

// Load returns the current growth metrics document.
func (m *MetricsService) Load(ctx context.Context) (stores.Metrics, error) {
	return m.store.Load()
}

// Update applies a shallow merge patch and returns the merged document.
// Patches are never validated beyond their shape; the metrics set evolves
// with its reviewers.
func (m *MetricsService) Update(ctx context.Context, patch stores.MetricsPatch) (stores.Metrics, error) {
	merged, err := m.store.UpdateAt(patch, m.now())
	if err != nil {
		return stores.Metrics{}, fmt.Errorf("update growth metrics: %w", err)
	}

	m.log.Info().Msg("growth metrics updated")
	return merged, nil
}

// Sync recomputes the derivable metrics: learning days from the reports
// directory, the current review week's completion rate, and the current
// month's rollup entry. Existing entries for the same week or month are
// replaced.
func (m *MetricsService) Sync(ctx context.Context, reportsDir string) (stores.Metrics, error) {
	days, err := ScanLearningDays(reportsDir)
	if err != nil {
		return stores.Metrics{}, err
	}

	existing, err := m.store.Load()
	if err != nil {
		return stores.Metrics{}, err
	}

	now := m.now()
	mergedDays := unionSorted(existing.LearningDays, days)

	weekLabel := period.WeekLabel(now)
	week, err := m.items.QueryWeek(ctx, weekLabel)
	if err != nil {
		return stores.Metrics{}, err
	}
	rates := upsertWeekly(existing.WeeklyCompletionRates, stores.WeeklyRate{
		Week:  weekLabel,
		Total: week.Total,
		Done:  week.Done,
		Rate:  week.CompletionRate,
	})

	monthLabel := period.MonthLabel(now)
	month, err := m.items.QueryMonth(ctx, monthLabel)
	if err != nil {
		return stores.Metrics{}, err
	}
	monthDays := countWithPrefix(mergedDays, monthLabel)
	totalDays := daysInMonth(now)
	monthly := upsertMonthly(existing.MonthlyStats, stores.MonthlyStat{
		Month:            monthLabel,
		LearningDays:     monthDays,
		TotalDays:        totalDays,
		LearningRate:     math.Round(float64(monthDays)/float64(totalDays)*100) / 100,
		ActionItemsTotal: month.Total,
		ActionItemsDone:  month.Done,
		CompletionRate:   month.CompletionRate,
		RecordedAt:       now,
	})

	merged, err := m.store.UpdateAt(stores.MetricsPatch{
		LearningDays:          &mergedDays,
		WeeklyCompletionRates: &rates,
		MonthlyStats:          &monthly,
	}, now)
	if err != nil {
		return stores.Metrics{}, fmt.Errorf("sync growth metrics: %w", err)
	}

	m.log.Info().
		Int("learning_days", len(mergedDays)).
		Str("week", weekLabel).
		Str("month", monthLabel).
		Msg("growth metrics synced")

	return merged, nil
}

func unionSorted(a, b []string) []string {
	seen := map[string]struct{}{}
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		seen[s] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func upsertWeekly(rates []stores.WeeklyRate, entry stores.WeeklyRate) []stores.WeeklyRate {
	out := make([]stores.WeeklyRate, 0, len(rates)+1)
	for _, r := range rates {
		if r.Week != entry.Week {
			out = append(out, r)
		}
	}
	return append(out, entry)
}

func upsertMonthly(statList []stores.MonthlyStat, entry stores.MonthlyStat) []stores.MonthlyStat {
	out := make([]stores.MonthlyStat, 0, len(statList)+1)
	for _, st := range statList {
		if st.Month != entry.Month {
			out = append(out, st)
		}
	}
	return append(out, entry)
}

func countWithPrefix(days []string, prefix string) int {
	n := 0
	for _, d := range days {
		if strings.HasPrefix(d, prefix) {
			n++
		}
	}
	return n
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

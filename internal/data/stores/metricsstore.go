package stores

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WeeklyRate records the action item completion rate for one review week.
type WeeklyRate struct {
	Week  string  `json:"week"`
	Total int     `json:"total"`
	Done  int     `json:"done"`
	Rate  float64 `json:"rate"`
}

// MonthlyStat is the longitudinal record appended by the monthly reviewer.
type MonthlyStat struct {
	Month            string    `json:"month"`
	LearningDays     int       `json:"learning_days"`
	TotalDays        int       `json:"total_days"`
	LearningRate     float64   `json:"learning_rate"`
	ActionItemsTotal int       `json:"action_items_total"`
	ActionItemsDone  int       `json:"action_items_done"`
	CompletionRate   float64   `json:"completion_rate"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// Metrics is the growth metrics document. Known fields are typed; Extra
// round-trips any other top-level keys so reviewers with evolving metric
// sets can still write through this store.
type Metrics struct {
	LearningDays          []string
	WeeklyCompletionRates []WeeklyRate
	MonthlyStats          []MonthlyStat
	TechAreasCovered      []string
	UpdatedAt             *time.Time
	Extra                 map[string]json.RawMessage
}

// metricsKnown carries the typed fields for JSON round-tripping.
type metricsKnown struct {
	LearningDays          []string      `json:"learning_days"`
	WeeklyCompletionRates []WeeklyRate  `json:"weekly_completion_rates"`
	MonthlyStats          []MonthlyStat `json:"monthly_stats"`
	TechAreasCovered      []string      `json:"tech_areas_covered"`
	UpdatedAt             *time.Time    `json:"updated_at"`
}

var metricsKnownKeys = map[string]struct{}{
	"learning_days":           {},
	"weekly_completion_rates": {},
	"monthly_stats":           {},
	"tech_areas_covered":      {},
	"updated_at":              {},
}

// MarshalJSON flattens Extra keys alongside the typed fields. Typed fields
// win on key collisions.
func (m Metrics) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(metricsKnown{
		LearningDays:          emptied(m.LearningDays),
		WeeklyCompletionRates: emptied(m.WeeklyCompletionRates),
		MonthlyStats:          emptied(m.MonthlyStats),
		TechAreasCovered:      emptied(m.TechAreasCovered),
		UpdatedAt:             m.UpdatedAt,
	})
	if err != nil {
		return nil, err
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, known := metricsKnownKeys[k]; !known {
			merged[k] = v
		}
	}

	return json.Marshal(merged)
}

// UnmarshalJSON splits typed fields from caller-supplied extras.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	var known metricsKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range metricsKnownKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*m = Metrics{
		LearningDays:          known.LearningDays,
		WeeklyCompletionRates: known.WeeklyCompletionRates,
		MonthlyStats:          known.MonthlyStats,
		TechAreasCovered:      known.TechAreasCovered,
		UpdatedAt:             known.UpdatedAt,
		Extra:                 raw,
	}
	return nil
}

func emptied[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MetricsPatch is a shallow merge applied to the metrics document. Nil
// fields are left untouched; set fields overwrite the existing value
// wholesale, never deep-merged. Extra keys are set individually.
type MetricsPatch struct {
	LearningDays          *[]string
	WeeklyCompletionRates *[]WeeklyRate
	MonthlyStats          *[]MonthlyStat
	TechAreasCovered      *[]string
	Extra                 map[string]json.RawMessage
}

// Apply merges the patch into m.
func (m *Metrics) Apply(p MetricsPatch) {
	if p.LearningDays != nil {
		m.LearningDays = *p.LearningDays
	}
	if p.WeeklyCompletionRates != nil {
		m.WeeklyCompletionRates = *p.WeeklyCompletionRates
	}
	if p.MonthlyStats != nil {
		m.MonthlyStats = *p.MonthlyStats
	}
	if p.TechAreasCovered != nil {
		m.TechAreasCovered = *p.TechAreasCovered
	}
	for k, v := range p.Extra {
		if _, known := metricsKnownKeys[k]; known {
			continue
		}
		if m.Extra == nil {
			m.Extra = map[string]json.RawMessage{}
		}
		m.Extra[k] = v
	}
}

// MetricsStore persists the growth metrics document at a single file path.
type MetricsStore struct {
	path string
	mu   sync.RWMutex
}

// NewMetricsStore creates a metrics store backed by the given file path.
func NewMetricsStore(path string) *MetricsStore {
	return &MetricsStore{path: path}
}

// Path returns the file path backing the store.
func (s *MetricsStore) Path() string { return s.path }

// Load returns the persisted metrics, or an initialized empty document when
// none exists. Decode failures wrap ErrCorrupt.
func (s *MetricsStore) Load() (Metrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

// Update loads the metrics, applies the patch, stamps updated_at, and
// persists the result. Returns the merged document.
func (s *MetricsStore) Update(patch MetricsPatch) (Metrics, error) {
	return s.UpdateAt(patch, time.Now())
}

// UpdateAt is Update with an explicit timestamp.
func (s *MetricsStore) UpdateAt(patch MetricsPatch, now time.Time) (Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return Metrics{}, err
	}

	m.Apply(patch)
	m.UpdatedAt = &now

	if err := s.save(m); err != nil {
		return Metrics{}, err
	}

	return m, nil
}

func (s *MetricsStore) load() (Metrics, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyMetrics(), nil
		}
		return Metrics{}, fmt.Errorf("read growth metrics: %w", err)
	}

	if len(data) == 0 {
		return emptyMetrics(), nil
	}

	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return Metrics{}, fmt.Errorf("decode %s: %w: %w", s.path, ErrCorrupt, err)
	}

	return m, nil
}

func (s *MetricsStore) save(m Metrics) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create tracker dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode growth metrics: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write growth metrics: %w", err)
	}

	return os.Rename(tmp, s.path)
}

func emptyMetrics() Metrics {
	return Metrics{
		LearningDays:          []string{},
		WeeklyCompletionRates: []WeeklyRate{},
		MonthlyStats:          []MonthlyStat{},
		TechAreasCovered:      []string{},
	}
}

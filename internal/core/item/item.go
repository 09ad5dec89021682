// Package item defines the action item domain model.
//
// An action item is a trackable unit of follow-up work produced by the
// daily analysis pipeline and reviewed by the weekly/monthly rollups. Items
// are append-only: they are created once, move through lifecycle statuses,
// and are never deleted.
package item

import (
	"errors"
	"time"

	"github.com/colonyops/ait/internal/core/period"
)

// ErrNotFound is returned when no action item matches the requested ID.
var ErrNotFound = errors.New("action item not found")

// Status represents the lifecycle state of an action item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusDropped    Status = "dropped"
)

// Statuses lists all valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone, StatusDropped}
}

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusDropped:
		return true
	}
	return false
}

// Open reports whether the item still requires attention. Only open items
// can be overdue.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// Priority classifies how urgent an action item is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Source identifies which reviewer produced an item. The set is open to
// extension, so no validation is enforced beyond the string itself.
type Source string

const (
	SourceDaily   Source = "daily"
	SourceWeekly  Source = "weekly"
	SourceMonthly Source = "monthly"
)

// Note is a free-text annotation appended during a status update.
type Note struct {
	Time    time.Time `json:"time"`
	Content string    `json:"content"`
}

// Item is a single action item.
//
// CompletedAt is set exactly when the status transitions to done and is not
// cleared if the status later moves away from done; the stale timestamp is
// part of the persisted record.
type Item struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Source      Source      `json:"source"`
	SourceDate  period.Date `json:"source_date"`
	Priority    Priority    `json:"priority"`
	Status      Status      `json:"status"`
	ExpectedBy  period.Date `json:"expected_by"`
	Steps       []string    `json:"steps"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	Notes       []Note      `json:"notes,omitempty"`
	ReviewWeek  string      `json:"review_week"`
}

// OverdueAt reports whether the item is open and past its expected
// completion date on the given day.
func (i Item) OverdueAt(today period.Date) bool {
	return i.Status.Open() && i.ExpectedBy != "" && i.ExpectedBy.Before(today)
}

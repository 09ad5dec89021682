// Package period provides date and review-period primitives.
//
// Dates are carried as zero-padded YYYY-MM-DD strings so that lexical
// comparison equals chronological comparison. The Date type exists to keep
// that invariant explicit: anything that enters the system as a date goes
// through Parse or FromTime.
package period

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout is the canonical date layout used across the tracker.
const Layout = "2006-01-02"

// Date is a validated YYYY-MM-DD date string.
type Date string

var (
	weekLabelRe  = regexp.MustCompile(`^\d{4}-W\d{2}$`)
	monthLabelRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// Parse validates s as a zero-padded YYYY-MM-DD date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	// time.Parse accepts some non-canonical forms; round-trip to be strict.
	if t.Format(Layout) != s {
		return "", fmt.Errorf("invalid date %q: not in YYYY-MM-DD form", s)
	}
	return Date(s), nil
}

// FromTime returns the Date for t in t's location.
func FromTime(t time.Time) Date {
	return Date(t.Format(Layout))
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string { return string(d) }

// Compact returns the date without separators (YYYYMMDD), as used in
// action item identifiers.
func (d Date) Compact() string {
	return strings.ReplaceAll(string(d), "-", "")
}

// Month returns the YYYY-MM prefix of the date.
func (d Date) Month() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

// Before reports whether d is strictly before other. Lexical comparison is
// chronological because both sides are zero-padded.
func (d Date) Before(other Date) bool { return d < other }

// AddDays returns the date offset by the given number of days.
func (d Date) AddDays(days int) Date {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return d
	}
	return FromTime(t.AddDate(0, 0, days))
}

// WeekLabel returns the ISO year-week label (e.g. "2026-W08") for t.
// The ISO year may differ from the calendar year around January 1st.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel returns the YYYY-MM label for t.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// ValidWeekLabel reports whether s looks like an ISO week label.
func ValidWeekLabel(s string) bool { return weekLabelRe.MatchString(s) }

// ValidMonthLabel reports whether s looks like a YYYY-MM label.
func ValidMonthLabel(s string) bool { return monthLabelRe.MatchString(s) }

package tracker

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/ait/internal/core/period"
)

// Daily report files carry a date either as a compact stamp suffix
// (github-monitor-20260220.md) or as the whole name (2026-02-20.md).
var (
	compactStampRe = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})\.md$`)
	dateNameRe     = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\.md$`)
)

// ScanLearningDays walks the reports directory for dated markdown files
// and returns the distinct dates found, sorted ascending. A day with at
// least one report file counts as a learning day. A missing directory
// yields no days rather than an error.
func ScanLearningDays(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("scan reports dir: %w", err)
	}

	seen := map[string]struct{}{}
	for _, path := range matches {
		date, ok := reportDate(path)
		if !ok {
			continue
		}
		seen[date] = struct{}{}
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days, nil
}

// reportDate extracts and validates the date encoded in a report filename.
func reportDate(path string) (string, bool) {
	var candidate string
	if m := dateNameRe.FindStringSubmatch(path); m != nil {
		candidate = m[1]
	} else if m := compactStampRe.FindStringSubmatch(path); m != nil {
		candidate = m[1] + "-" + m[2] + "-" + m[3]
	} else {
		return "", false
	}

	if _, err := period.Parse(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# report\n"), 0o644))
}

func TestScanLearningDays(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "github-monitor-20260218.md")
	writeReport(t, dir, "2026-02-19.md")
	writeReport(t, dir, "weekly/deep-dive-20260219.md") // same day, different file
	writeReport(t, dir, "nested/deeper/2026-02-20.md")
	writeReport(t, dir, "notes.md")            // no date
	writeReport(t, dir, "scratch-20261345.md") // not a real date
	writeReport(t, dir, "2026-02-20.txt")      // not markdown

	days, err := ScanLearningDays(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-02-18", "2026-02-19", "2026-02-20"}, days)
}

func TestScanLearningDaysMissingDir(t *testing.T) {
	days, err := ScanLearningDays(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, days)
}

func TestReportDate(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{path: "github-monitor-20260220.md", want: "2026-02-20", ok: true},
		{path: "2026-02-20.md", want: "2026-02-20", ok: true},
		{path: "a/b/report-20260101.md", want: "2026-01-01", ok: true},
		{path: "report.md", ok: false},
		{path: "20260230.md", ok: false}, // feb 30 fails validation
		{path: "2026-02-20.markdown", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := reportDate(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

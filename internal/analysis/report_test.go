package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gclens/internal/gclog"
)

func statsWithAvgPause(avg time.Duration, count int) RunningStats {
	return RunningStats{
		TotalCollections:  count,
		PausedCollections: count,
		TotalPause:        avg * time.Duration(count),
		MaxPause:          avg * 2,
		ByCollector:       map[gclog.CollectorKind]int{gclog.CollectorG1Young: count},
		ByGeneration:      map[gclog.Generation]int{gclog.GenerationYoung: count},
	}
}

func TestHealthClassification(t *testing.T) {
	thresholds := DefaultThresholds()

	tests := []struct {
		name     string
		avgPause time.Duration
		expected Health
	}{
		{"excellent at boundary", 10 * time.Millisecond, HealthExcellent},
		{"good", 20 * time.Millisecond, HealthGood},
		{"good at boundary", 50 * time.Millisecond, HealthGood},
		{"acceptable", 80 * time.Millisecond, HealthAcceptable},
		{"needs tuning", 200 * time.Millisecond, HealthNeedsTuning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := GenerateReport(statsWithAvgPause(tt.avgPause, 10), PausePercentiles{}, TrendStable, thresholds)
			assert.Equal(t, tt.expected, report.Health)
		})
	}
}

func TestReportEmptyStream(t *testing.T) {
	stats := RunningStats{
		ByCollector:  map[gclog.CollectorKind]int{},
		ByGeneration: map[gclog.Generation]int{},
	}
	report := GenerateReport(stats, PausePercentiles{}, TrendInsufficientData, DefaultThresholds())

	assert.Equal(t, 0, report.TotalCollections)
	assert.Equal(t, HealthExcellent, report.Health)
	assert.False(t, report.LeakSuspected)
	assert.Equal(t, "InsufficientData", report.TrendState)
	assert.Empty(t, report.Issues)
	assert.Zero(t, report.AveragePauseMs)
}

func TestReportLeakIssue(t *testing.T) {
	report := GenerateReport(statsWithAvgPause(5*time.Millisecond, 10), PausePercentiles{}, TrendSuspectedLeak, DefaultThresholds())

	assert.True(t, report.LeakSuspected)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, "critical", report.Issues[0].Severity)
	assert.Contains(t, report.Issues[0].Finding, "baseline")
}

func TestReportFullGCRatioIssue(t *testing.T) {
	stats := statsWithAvgPause(5*time.Millisecond, 10)
	stats.ByCollector[gclog.CollectorFullGC] = 4

	report := GenerateReport(stats, PausePercentiles{}, TrendStable, DefaultThresholds())

	var found bool
	for _, issue := range report.Issues {
		if issue.Severity == "warning" {
			found = true
		}
	}
	assert.True(t, found, "expected a full GC ratio warning")
}

func TestReportMalformedIssue(t *testing.T) {
	stats := statsWithAvgPause(5*time.Millisecond, 10)
	stats.MalformedLines = 3

	report := GenerateReport(stats, PausePercentiles{}, TrendStable, DefaultThresholds())
	assert.Equal(t, 3, report.MalformedLines)

	var found bool
	for _, issue := range report.Issues {
		if issue.Severity == "info" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReportRoundsPauses(t *testing.T) {
	stats := statsWithAvgPause(12345678*time.Nanosecond, 1)
	report := GenerateReport(stats, PausePercentiles{P50: 12.3456789}, TrendStable, DefaultThresholds())

	assert.InDelta(t, 12.346, report.AveragePauseMs, 0.0001)
	assert.InDelta(t, 12.346, report.PausePercentiles.P50, 0.0001)
}

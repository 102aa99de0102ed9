package analysis

import (
	"fmt"
	"math"
	"time"

	"gclens/internal/gclog"
	"gclens/utils"
)

// Health is the overall verdict on a log, driven by the average pause.
type Health int

const (
	HealthExcellent Health = iota
	HealthGood
	HealthAcceptable
	HealthNeedsTuning
)

func (h Health) String() string {
	switch h {
	case HealthExcellent:
		return "Excellent"
	case HealthGood:
		return "Good"
	case HealthAcceptable:
		return "Acceptable"
	default:
		return "NeedsTuning"
	}
}

func (h Health) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// Issue is one tuning finding with a concrete suggestion.
type Issue struct {
	Severity   string `json:"severity"`
	Finding    string `json:"finding"`
	Suggestion string `json:"suggestion"`
}

// HeapUtilization summarizes post-collection occupancy.
type HeapUtilization struct {
	AveragePct     float64 `json:"average_pct"`
	MaxPct         float64 `json:"max_pct"`
	HighUtilEvents int     `json:"high_utilization_event_count"`
}

// Report is the complete analysis result. It is a pure function of the
// aggregated statistics, so the same stream always reports the same way.
type Report struct {
	TotalCollections int            `json:"total_collections"`
	Collectors       map[string]int `json:"collectors"`
	Generations      map[string]int `json:"generations"`

	AveragePauseMs   float64          `json:"average_pause_ms"`
	MaxPauseMs       float64          `json:"max_pause_ms"`
	PausePercentiles PausePercentiles `json:"pause_percentiles"`

	Heap          HeapUtilization `json:"heap_utilization"`
	LeakSuspected bool            `json:"leak_suspected"`
	TrendState    string          `json:"trend_state"`

	MalformedLines int `json:"malformed_lines"`
	UnmatchedLines int `json:"unmatched_lines"`

	LogSpan string `json:"log_span,omitempty"`

	Health Health  `json:"health"`
	Issues []Issue `json:"issues"`
}

// GenerateReport classifies the stream and derives recommendations.
func GenerateReport(stats RunningStats, percentiles PausePercentiles, trend TrendState, thresholds Thresholds) *Report {
	report := &Report{
		TotalCollections: stats.TotalCollections,
		Collectors:       make(map[string]int, len(stats.ByCollector)),
		Generations:      make(map[string]int, len(stats.ByGeneration)),
		AveragePauseMs:   roundMs(stats.AveragePause()),
		MaxPauseMs:       roundMs(stats.MaxPause),
		PausePercentiles: sanitizePercentiles(percentiles),
		Heap: HeapUtilization{
			AveragePct:     math.Round(stats.AverageHeapUtil()*1000) / 10,
			MaxPct:         math.Round(stats.HeapUtilMax*1000) / 10,
			HighUtilEvents: stats.HighUtilCount,
		},
		LeakSuspected:  trend == TrendSuspectedLeak,
		TrendState:     trend.String(),
		MalformedLines: stats.MalformedLines,
		UnmatchedLines: stats.UnmatchedLines,
		Issues:         []Issue{},
	}

	for collector, count := range stats.ByCollector {
		report.Collectors[collector.String()] = count
	}
	for generation, count := range stats.ByGeneration {
		report.Generations[generation.String()] = count
	}

	if !stats.FirstEvent.IsZero() && stats.LastEvent.After(stats.FirstEvent) {
		report.LogSpan = utils.FormatDuration(stats.LastEvent.Sub(stats.FirstEvent))
	}

	report.Health = classifyHealth(stats, thresholds)
	report.Issues = deriveIssues(stats, trend, thresholds)

	return report
}

func classifyHealth(stats RunningStats, thresholds Thresholds) Health {
	avg := stats.AveragePause()
	switch {
	case stats.PausedCollections == 0:
		return HealthExcellent
	case avg <= thresholds.PauseExcellent:
		return HealthExcellent
	case avg <= thresholds.PauseGood:
		return HealthGood
	case avg <= thresholds.PauseAcceptable:
		return HealthAcceptable
	default:
		return HealthNeedsTuning
	}
}

func deriveIssues(stats RunningStats, trend TrendState, thresholds Thresholds) []Issue {
	issues := []Issue{}

	if trend == TrendSuspectedLeak {
		issues = append(issues, Issue{
			Severity:   "critical",
			Finding:    "Post-full-GC heap baseline is growing steadily",
			Suggestion: "Capture a heap dump (jmap -dump:live) and inspect dominator trees for the growing retained set",
		})
	}

	if avg := stats.AveragePause(); avg > thresholds.PauseAcceptable {
		issues = append(issues, Issue{
			Severity:   "critical",
			Finding:    fmt.Sprintf("Average pause %s exceeds %s", utils.FormatDuration(avg), utils.FormatDuration(thresholds.PauseAcceptable)),
			Suggestion: "Set a pause goal (-XX:MaxGCPauseMillis) or move to a low-pause collector such as ZGC",
		})
	} else if avg > thresholds.PauseGood {
		issues = append(issues, Issue{
			Severity:   "warning",
			Finding:    fmt.Sprintf("Average pause %s exceeds %s", utils.FormatDuration(avg), utils.FormatDuration(thresholds.PauseGood)),
			Suggestion: "Review young generation sizing; frequent long evacuations often mean survivors are promoted too early",
		})
	}

	if full := stats.ByCollector[gclog.CollectorFullGC]; stats.TotalCollections > 0 {
		if ratio := float64(full) / float64(stats.TotalCollections); ratio > 0.2 {
			issues = append(issues, Issue{
				Severity:   "warning",
				Finding:    fmt.Sprintf("Full GCs are %.0f%% of all collections", ratio*100),
				Suggestion: "Increase heap size or lower -XX:InitiatingHeapOccupancyPercent so concurrent cycles start earlier",
			})
		}
	}

	if stats.TotalCollections > 0 {
		if ratio := float64(stats.HighUtilCount) / float64(stats.TotalCollections); ratio > 0.5 {
			issues = append(issues, Issue{
				Severity:   "warning",
				Finding:    fmt.Sprintf("Heap stays above %.0f%% occupancy after most collections", thresholds.HighHeapUtil*100),
				Suggestion: "Grow -Xmx; a heap running near capacity collects constantly and pauses grow with it",
			})
		}
	}

	if stats.MalformedLines > 0 {
		issues = append(issues, Issue{
			Severity:   "info",
			Finding:    fmt.Sprintf("%d GC-shaped lines had unusable fields and were skipped", stats.MalformedLines),
			Suggestion: "Check for interleaved writers or truncation on the log file",
		})
	}

	return issues
}

func roundMs(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Millisecond)*1000) / 1000
}

func sanitizePercentiles(p PausePercentiles) PausePercentiles {
	clean := func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return math.Round(v*1000) / 1000
	}
	return PausePercentiles{
		P50:  clean(p.P50),
		P95:  clean(p.P95),
		P99:  clean(p.P99),
		P999: clean(p.P999),
	}
}

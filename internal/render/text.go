package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gclens/internal/analysis"
	"gclens/utils"
)

// Text prints the report in the human summary format.
func Text(w io.Writer, report *analysis.Report) error {
	fmt.Fprintf(w, "🔍 GC Log Analysis\n")
	if report.LogSpan != "" {
		fmt.Fprintf(w, "Collections: %d  |  Span: %s\n", report.TotalCollections, report.LogSpan)
	} else {
		fmt.Fprintf(w, "Collections: %d\n", report.TotalCollections)
	}
	fmt.Fprintln(w, strings.Repeat("═", 60))

	fmt.Fprintln(w, "\n⏱️  PAUSE TIMES")
	fmt.Fprintln(w, strings.Repeat("─", 35))
	fmt.Fprintf(w, "Average:  %.3fms\n", report.AveragePauseMs)
	fmt.Fprintf(w, "Maximum:  %.3fms\n", report.MaxPauseMs)
	fmt.Fprintf(w, "p50: %.3fms   p95: %.3fms   p99: %.3fms   p99.9: %.3fms\n",
		report.PausePercentiles.P50, report.PausePercentiles.P95,
		report.PausePercentiles.P99, report.PausePercentiles.P999)

	fmt.Fprintln(w, "\n🔄 COLLECTION BREAKDOWN")
	fmt.Fprintln(w, strings.Repeat("─", 35))
	for _, name := range sortedKeys(report.Collectors) {
		fmt.Fprintf(w, "%-10s %d\n", name, report.Collectors[name])
	}

	fmt.Fprintln(w, "\n📊 HEAP")
	fmt.Fprintln(w, strings.Repeat("─", 35))
	fmt.Fprintf(w, "Post-collection occupancy: %.1f%% avg, %.1f%% max\n",
		report.Heap.AveragePct, report.Heap.MaxPct)
	if report.Heap.HighUtilEvents > 0 {
		fmt.Fprintf(w, "High-occupancy events: %d\n", report.Heap.HighUtilEvents)
	}
	fmt.Fprintf(w, "Baseline trend: %s\n", report.TrendState)

	if report.MalformedLines > 0 || report.UnmatchedLines > 0 {
		fmt.Fprintf(w, "\nSkipped lines: %d malformed, %d unmatched\n",
			report.MalformedLines, report.UnmatchedLines)
	}

	fmt.Fprintf(w, "\n🎯 Overall: %s\n", healthStyle(report.Health).Render(report.Health.String()))

	if len(report.Issues) > 0 {
		fmt.Fprintln(w, "\n💡 RECOMMENDATIONS")
		fmt.Fprintln(w, strings.Repeat("─", 35))
		for _, issue := range report.Issues {
			fmt.Fprintf(w, "%s %s\n", severityIcon(issue.Severity), issue.Finding)
			fmt.Fprintf(w, "   → %s\n", issue.Suggestion)
		}
	}

	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func severityIcon(severity string) string {
	switch severity {
	case "critical":
		return "🔴"
	case "warning":
		return "🟡"
	default:
		return "ℹ️ "
	}
}

func healthStyle(h analysis.Health) lipgloss.Style {
	switch h {
	case analysis.HealthExcellent, analysis.HealthGood:
		return utils.GoodStyle
	case analysis.HealthAcceptable:
		return utils.WarningStyle
	default:
		return utils.CriticalStyle
	}
}

package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"gclens/internal/analysis"
)

// Table prints the report as aligned tables, one for the pause figures and
// one per-collector breakdown.
func Table(w io.Writer, report *analysis.Report) error {
	summary := tablewriter.NewWriter(w)
	summary.Header([]string{"Metric", "Value"})
	summary.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := [][]string{
		{"Collections", strconv.Itoa(report.TotalCollections)},
		{"Average pause (ms)", fmtFloat(report.AveragePauseMs)},
		{"Max pause (ms)", fmtFloat(report.MaxPauseMs)},
		{"p50 (ms)", fmtFloat(report.PausePercentiles.P50)},
		{"p95 (ms)", fmtFloat(report.PausePercentiles.P95)},
		{"p99 (ms)", fmtFloat(report.PausePercentiles.P99)},
		{"p99.9 (ms)", fmtFloat(report.PausePercentiles.P999)},
		{"Avg heap util (%)", fmtFloat(report.Heap.AveragePct)},
		{"Max heap util (%)", fmtFloat(report.Heap.MaxPct)},
		{"High-util events", strconv.Itoa(report.Heap.HighUtilEvents)},
		{"Baseline trend", report.TrendState},
		{"Malformed lines", strconv.Itoa(report.MalformedLines)},
		{"Unmatched lines", strconv.Itoa(report.UnmatchedLines)},
		{"Health", report.Health.String()},
	}
	if report.LogSpan != "" {
		rows = append(rows, []string{"Log span", report.LogSpan})
	}
	if err := summary.Bulk(rows); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	if len(report.Collectors) > 0 {
		breakdown := tablewriter.NewWriter(w)
		breakdown.Header([]string{"Collector", "Count"})
		breakdown.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, name := range sortedKeys(report.Collectors) {
			data = append(data, []string{name, strconv.Itoa(report.Collectors[name])})
		}
		if err := breakdown.Bulk(data); err != nil {
			return err
		}
		if err := breakdown.Render(); err != nil {
			return err
		}
	}

	for _, issue := range report.Issues {
		fmt.Fprintf(w, "[%s] %s: %s\n", issue.Severity, issue.Finding, issue.Suggestion)
	}
	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gclens/internal/analysis"
	"gclens/utils"
)

func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderTabs())
	sections = append(sections, "")

	switch m.currentTab {
	case EventsTab:
		sections = append(sections, m.renderEvents())
	case IssuesTab:
		sections = append(sections, m.renderIssues())
	default:
		sections = append(sections, m.renderDashboard())
	}

	sections = append(sections, "", m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	status := "live"
	switch {
	case m.closed:
		status = "stream closed"
	case m.paused:
		status = "paused"
	}
	title := utils.TitleStyle.Render("gclens tail")
	return fmt.Sprintf("%s %s  %s", title, m.path, utils.MutedStyle.Render("["+status+"]"))
}

func (m *Model) renderTabs() string {
	var tabs []string
	for tab := DashboardTab; tab <= IssuesTab; tab++ {
		if tab == m.currentTab {
			tabs = append(tabs, utils.TabActiveStyle.Render(tab.String()))
		} else {
			tabs = append(tabs, utils.TabInactiveStyle.Render(tab.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderDashboard() string {
	stats, percentiles := m.analyzer.Snapshot()

	var rows []string
	rows = append(rows, utils.TitleStyle.Render("Pause Times"))
	rows = append(rows, fmt.Sprintf("%-12s %s", "Average", utils.FormatDuration(stats.AveragePause())))
	rows = append(rows, fmt.Sprintf("%-12s %s", "Maximum", utils.FormatDuration(stats.MaxPause)))
	rows = append(rows, fmt.Sprintf("%-12s p50 %.2fms  p95 %.2fms  p99 %.2fms",
		"Percentiles", nanToZero(percentiles.P50), nanToZero(percentiles.P95), nanToZero(percentiles.P99)))
	rows = append(rows, "")

	m.pauseChart.Draw()
	rows = append(rows, utils.TitleStyle.Render("Recent Pauses (ms)"))
	rows = append(rows, m.pauseChart.View())
	rows = append(rows, "")

	rows = append(rows, utils.TitleStyle.Render("Heap"))
	utilPct := stats.AverageHeapUtil()
	rows = append(rows, fmt.Sprintf("%-12s %s %.1f%%", "Occupancy",
		utils.CreateProgressBar(utilPct, 30, occupancyColor(utilPct)), utilPct*100))
	rows = append(rows, fmt.Sprintf("%-12s %s", "Capacity", stats.HeapCapacity))
	rows = append(rows, fmt.Sprintf("%-12s %s", "Trend", renderTrend(m.analyzer.TrendState())))
	rows = append(rows, "")

	rows = append(rows, utils.TitleStyle.Render("Stream"))
	rows = append(rows, fmt.Sprintf("%-12s %d collections, %d malformed, %d unmatched",
		"Lines", stats.TotalCollections, stats.MalformedLines, stats.UnmatchedLines))

	return strings.Join(rows, "\n")
}

func (m *Model) renderEvents() string {
	if len(m.recent) == 0 {
		return utils.MutedStyle.Render("No collections observed yet.")
	}

	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}

	start := len(m.recent) - visible - m.scroll
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(m.recent) {
		end = len(m.recent)
	}

	var rows []string
	rows = append(rows, utils.MutedStyle.Render(
		fmt.Sprintf("%-24s %-9s %-6s %10s %22s", "TIME", "COLLECTOR", "GEN", "PAUSE", "HEAP")))
	for _, ev := range m.recent[start:end] {
		pause := "-"
		if ev.HasPause {
			pause = utils.FormatDuration(ev.Pause)
		}
		ts := "-"
		if !ev.Timestamp.IsZero() {
			ts = ev.Timestamp.Format("2006-01-02T15:04:05.000")
		}
		rows = append(rows, fmt.Sprintf("%-24s %-9s %-6s %10s %9s->%s(%s)",
			ts, ev.Collector, ev.Generation, pause,
			ev.HeapBefore, ev.HeapAfter, ev.HeapCapacity))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderIssues() string {
	report := m.analyzer.Report()
	if len(report.Issues) == 0 {
		return utils.GoodStyle.Render("No issues detected.")
	}

	var rows []string
	for _, issue := range report.Issues {
		style := utils.InfoStyle
		switch issue.Severity {
		case "critical":
			style = utils.CriticalStyle
		case "warning":
			style = utils.WarningStyle
		}
		rows = append(rows, style.Render(strings.ToUpper(issue.Severity))+" "+issue.Finding)
		rows = append(rows, "  "+utils.MutedStyle.Render(issue.Suggestion))
	}
	return strings.Join(rows, "\n")
}

func renderTrend(state analysis.TrendState) string {
	switch state {
	case analysis.TrendSuspectedLeak:
		return utils.CriticalStyle.Render(state.String())
	case analysis.TrendStable:
		return utils.GoodStyle.Render(state.String())
	default:
		return utils.MutedStyle.Render(state.String())
	}
}

func occupancyColor(util float64) lipgloss.Color {
	switch {
	case util >= 0.9:
		return utils.CriticalColor
	case util >= 0.75:
		return utils.WarningColor
	default:
		return utils.GoodColor
	}
}

func nanToZero(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}

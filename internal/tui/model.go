package tui

import (
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"gclens/internal/analysis"
	"gclens/internal/gclog"
	"gclens/utils"
)

type TabType int

const (
	DashboardTab TabType = iota
	EventsTab
	IssuesTab
)

func (t TabType) String() string {
	switch t {
	case EventsTab:
		return "Events"
	case IssuesTab:
		return "Issues"
	default:
		return "Dashboard"
	}
}

const maxRecentEvents = 200

type lineMsg string

type streamClosedMsg struct{ err error }

// Model is the live tail view. Lines arrive as messages from the follower;
// each one runs through the analyzer and the view re-renders from a fresh
// snapshot.
type Model struct {
	analyzer *analysis.Analyzer
	lines    <-chan string
	path     string

	currentTab TabType
	recent     []*gclog.CollectionEvent
	scroll     int
	paused     bool
	closed     bool
	streamErr  error

	pauseChart sparkline.Model
	keys       KeyMap
	help       help.Model
	width      int
	height     int
}

func newModel(path string, lines <-chan string, format gclog.Format, thresholds analysis.Thresholds) *Model {
	return &Model{
		analyzer:   analysis.NewAnalyzer(format, thresholds),
		lines:      lines,
		path:       path,
		pauseChart: sparkline.New(60, 4),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForLine()
}

func (m *Model) waitForLine() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-m.lines
		if !ok {
			return streamClosedMsg{}
		}
		return lineMsg(line)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		chartWidth := msg.Width - 4
		if chartWidth < 10 {
			chartWidth = 10
		}
		m.pauseChart.Resize(chartWidth, 4)

	case lineMsg:
		if !m.paused {
			m.ingest(string(msg))
		}
		return m, m.waitForLine()

	case streamClosedMsg:
		m.closed = true
		m.streamErr = msg.err

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) ingest(line string) {
	ev := m.analyzer.ProcessLine(line)
	if ev == nil {
		return
	}
	m.recent = append(m.recent, ev)
	if len(m.recent) > maxRecentEvents {
		m.recent = m.recent[1:]
	}
	if ev.HasPause {
		m.pauseChart.Push(float64(ev.Pause.Microseconds()) / 1000)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.NextTab):
		m.currentTab = utils.GetNextEnum(m.currentTab, IssuesTab)
		m.scroll = 0
	case keyMatches(msg, m.keys.PrevTab):
		m.currentTab = utils.GetPrevEnum(m.currentTab, IssuesTab)
		m.scroll = 0
	case keyMatches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}
	case keyMatches(msg, m.keys.Down):
		m.scroll++
	case keyMatches(msg, m.keys.Pause):
		m.paused = !m.paused
	case keyMatches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

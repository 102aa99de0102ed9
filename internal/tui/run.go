package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gclens/internal/analysis"
	"gclens/internal/gclog"
	"gclens/internal/source"
)

// Run follows path and drives the live dashboard until the user quits.
func Run(ctx context.Context, path string, format gclog.Format, thresholds analysis.Thresholds) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 256)
	followErr := make(chan error, 1)
	go func() {
		followErr <- source.Follow(ctx, path, 250*time.Millisecond, lines)
	}()

	model := newModel(path, lines, format, thresholds)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	cancel()

	if err := <-followErr; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// loadArticles runs the loader off the UI goroutine.
func loadArticles(ctx context.Context, load Loader) tea.Cmd {
	return func() tea.Msg {
		if ctx == nil {
			ctx = context.Background()
		}
		t, err := load(ctx)
		return LoadedMsg{Articles: t, Err: err}
	}
}

package tui

import (
	"context"

	"newscorpus/corpus"
	"newscorpus/types"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the browser's current screen.
type State string

const (
	StateLoading State = "loading"
	StateList    State = "list"
	StateDetail  State = "detail"
	StateError   State = "error"
)

// Loader produces the table to browse.
type Loader func(ctx context.Context) (corpus.Table, error)

const defaultPageSize = 20

// Model is the bubbletea model for browsing a table of articles.
type Model struct {
	loader   Loader
	ctx      context.Context
	Title    string
	State    State
	Articles corpus.Table
	Cursor   int
	Offset   int
	PageSize int
	Width    int
	Err      error
}

// NewModel creates a browser that runs load on start.
func NewModel(ctx context.Context, title string, load Loader) Model {
	return Model{
		loader:   load,
		ctx:      ctx,
		Title:    title,
		State:    StateLoading,
		PageSize: defaultPageSize,
	}
}

// NewTableModel creates a browser over an already loaded table.
func NewTableModel(title string, t corpus.Table) Model {
	return Model{Title: title, State: StateList, Articles: t, PageSize: defaultPageSize}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.State != StateLoading || m.loader == nil {
		return nil
	}
	return loadArticles(m.ctx, m.loader)
}

// Selected returns the article under the cursor, if any.
func (m Model) Selected() (types.Article, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Articles) {
		return types.Article{}, false
	}
	return m.Articles[m.Cursor], true
}

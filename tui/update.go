package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		// title, counter and footer take six lines
		if msg.Height > 8 {
			m.PageSize = msg.Height - 6
		}
		m = m.clamp()
		return m, nil
	case LoadedMsg:
		return m.handleLoaded(msg)
	}
	return m, nil
}

func (m Model) handleLoaded(msg LoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Articles = msg.Articles
	m.State = StateList
	m.Cursor, m.Offset = 0, 0
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.State {
	case StateList:
		m = m.listKey(msg.String())
	case StateDetail:
		m = m.detailKey(msg.String())
	}
	return m, nil
}

func (m Model) listKey(key string) Model {
	switch key {
	case "up", "k":
		m.Cursor--
	case "down", "j":
		m.Cursor++
	case "pgup", "b":
		m.Cursor -= m.PageSize
	case "pgdown", " ", "f":
		m.Cursor += m.PageSize
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = len(m.Articles) - 1
	case "enter":
		if _, ok := m.Selected(); ok {
			m.State = StateDetail
		}
	}
	return m.clamp()
}

func (m Model) detailKey(key string) Model {
	switch key {
	case "esc", "backspace":
		m.State = StateList
	case "left", "h":
		m.Cursor--
	case "right", "l":
		m.Cursor++
	}
	return m.clamp()
}

// clamp keeps the cursor inside the table and on the visible page.
func (m Model) clamp() Model {
	if m.Cursor >= len(m.Articles) {
		m.Cursor = len(m.Articles) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.PageSize < 1 {
		m.PageSize = 1
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.PageSize {
		m.Offset = m.Cursor - m.PageSize + 1
	}
	return m
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const previewRunes = 1200

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title()))
	b.WriteString("\n")

	switch m.State {
	case StateLoading:
		b.WriteString(StatusStyle.Render(TextLoading))
		b.WriteString("\n")
	case StateError:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(TextFooterError))
	case StateList:
		b.WriteString(m.listView())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterList))
	case StateDetail:
		b.WriteString(m.detailView())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterDetail))
	}
	return b.String()
}

func (m Model) title() string {
	if m.Title == "" {
		return TextTitle
	}
	return TextTitle + ": " + m.Title
}

func (m Model) listView() string {
	if len(m.Articles) == 0 {
		return InfoStyle.Render(TextEmpty) + "\n"
	}

	var b strings.Builder
	end := min(m.Offset+m.PageSize, len(m.Articles))
	for i := m.Offset; i < end; i++ {
		a := m.Articles[i]
		line := fmt.Sprintf("%-10s %-20s %s", dateOnly(a.PublishDate), truncate(a.Source, 20), a.Title)
		if m.Width > 0 {
			line = truncate(line, m.Width-2)
		}
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d-%d of %d", m.Offset+1, end, len(m.Articles))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView() string {
	a, ok := m.Selected()
	if !ok {
		return InfoStyle.Render(TextEmpty) + "\n"
	}

	var b strings.Builder
	b.WriteString(StatusStyle.Render(a.Title))
	b.WriteString("\n")
	if a.Header != "" {
		b.WriteString(a.Header)
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%s | %s | %s", a.Source, dateOnly(a.PublishDate), strings.Join(a.Authors, ", "))))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(a.URL))
	b.WriteString("\n\n")
	b.WriteString(truncate(a.Text, previewRunes))

	box := BoxStyle
	if m.Width > 4 {
		box = box.Width(m.Width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(b.String()),
		InfoStyle.Render(fmt.Sprintf("%d of %d", m.Cursor+1, len(m.Articles))),
	) + "\n"
}

func dateOnly(s string) string {
	if s == "" {
		return "-"
	}
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

package main

import (
	"fmt"
	"io"
	"strings"

	"newscorpus/corpus"
	"newscorpus/tui"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	valueStyle = lipgloss.NewStyle().Bold(true)
)

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, tui.TitleStyle.Render(s))
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("%-18s", label))+" "+valueStyle.Render(fmt.Sprint(value)))
}

// printArticles lists up to limit articles, one per line.
func printArticles(w io.Writer, t corpus.Table, limit int) {
	shown := t.Head(limit)
	for _, a := range shown {
		date := a.PublishDate
		if len(date) > 10 {
			date = date[:10]
		}
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%-10s  %-24s  %s\n", date, a.Source, a.Title)
	}
	if len(t) > len(shown) {
		fmt.Fprintln(w, tui.InfoStyle.Render(fmt.Sprintf("... %d more", len(t)-len(shown))))
	}
}

// formatCount groups thousands the way the summary lines expect (12,345).
func formatCount(n int) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

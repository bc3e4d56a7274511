package main

import (
	"context"
	"io"

	"newscorpus/corpus"
	"newscorpus/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		filters       filterFlags
		term          string
		caseSensitive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the selected articles in a terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			// resolve storage and credentials before the alternate screen takes over
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			a.log.SetOutput(io.Discard)
			load := func(context.Context) (corpus.Table, error) {
				return a.filteredTable(cmd, &filters, term, caseSensitive)
			}
			m := tui.NewModel(cmd.Context(), "files "+a.files, load)
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&term, "term", "", "only show articles matching this pattern")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match --term case exactly")
	return cmd
}

package main

import (
	"fmt"

	"newscorpus/config"
	"newscorpus/corpus"
	"newscorpus/tui"

	"github.com/spf13/cobra"
)

func newLoadCmd(a *app) *cobra.Command {
	var force, noCache bool

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the selected files and report what was read",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []corpus.LoadOption
			if force {
				opts = append(opts, corpus.WithForceReload())
			}
			if noCache {
				opts = append(opts, corpus.WithoutCache())
			}

			t, err := a.load(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			heading(a.out, "Load summary")
			field(a.out, "Articles", formatCount(len(t)))
			skipped := 0
			for _, e := range a.cache.Entries() {
				skipped += e.Skipped
			}
			field(a.out, "Files cached", a.cache.Len())
			if skipped > 0 {
				fmt.Fprintln(a.out, tui.ErrorStyle.Render(fmt.Sprintf("%d malformed lines skipped", skipped)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "refetch files even if cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "fetch without reading or writing the cache")
	return cmd
}

func newFilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the file indices present in storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			indices, err := a.source.Available(cmd.Context())
			if err != nil {
				return err
			}

			heading(a.out, a.source.Location())
			for _, i := range indices {
				fmt.Fprintln(a.out, config.FileName(i))
			}
			field(a.out, "Files", len(indices))
			return nil
		},
	}
}

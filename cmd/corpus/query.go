package main

import (
	"fmt"

	"newscorpus/config"
	"newscorpus/corpus"

	"github.com/spf13/cobra"
)

var defaultTerms = []string{"illegal alien", "undocumented immigrant"}

// filterFlags are the table filters shared by search, stats, export and browse.
type filterFlags struct {
	sources []string
	start   string
	end     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.sources, "source", nil, "keep only these sources (repeatable)")
	cmd.Flags().StringVar(&f.start, "start", "", "earliest publish date, inclusive")
	cmd.Flags().StringVar(&f.end, "end", "", "latest publish date, inclusive")
}

func (f *filterFlags) apply(t corpus.Table) (corpus.Table, error) {
	if len(f.sources) > 0 {
		t = corpus.FilterBySource(t, f.sources)
	}
	if f.start == "" && f.end == "" {
		return t, nil
	}
	return corpus.FilterByDate(t, f.start, f.end)
}

// filteredTable loads the selection, applies filters and an optional term.
func (a *app) filteredTable(cmd *cobra.Command, f *filterFlags, term string, caseSensitive bool) (corpus.Table, error) {
	t, err := a.load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if t, err = f.apply(t); err != nil {
		return nil, err
	}
	if term == "" {
		return t, nil
	}
	return corpus.SearchTerm(t, term, caseSensitive)
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		filters       filterFlags
		caseSensitive bool
		literal       bool
		limit         int
	)

	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Find articles whose text matches TERM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]
			if literal {
				term = corpus.EscapeTerm(term)
			}
			t, err := a.filteredTable(cmd, &filters, term, caseSensitive)
			if err != nil {
				return err
			}

			heading(a.out, fmt.Sprintf("%s articles match %q", formatCount(len(t)), args[0]))
			printArticles(a.out, t, limit)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")
	cmd.Flags().BoolVar(&literal, "literal", false, "treat TERM as plain text rather than a pattern")
	cmd.Flags().IntVar(&limit, "limit", 20, "articles to print")
	return cmd
}

func newCountsCmd(a *app) *cobra.Command {
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "counts [TERM...]",
		Short: "Count articles mentioning each term",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := args
			if len(terms) == 0 {
				terms = defaultTerms
			}
			t, err := a.filteredTable(cmd, &filters, "", false)
			if err != nil {
				return err
			}
			counts, err := corpus.TermCounts(t, terms)
			if err != nil {
				return err
			}

			heading(a.out, fmt.Sprintf("Term counts over %s articles", formatCount(len(t))))
			for _, term := range terms {
				c := counts[term]
				field(a.out, term, fmt.Sprintf("%s (%.2f%%)", formatCount(c.Count), c.Percentage))
			}
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		top     int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the selected articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}
			t, err := a.filteredTable(cmd, &filters, "", false)
			if err != nil {
				return err
			}
			stats := corpus.GetStats(t)

			heading(a.out, "Dataset statistics")
			field(a.out, "Total articles", formatCount(stats.TotalArticles))
			field(a.out, "Unique sources", formatCount(stats.UniqueSources))
			if stats.DateRange != nil {
				from, to := stats.DateRange.Days()
				field(a.out, "Date range", from+" to "+to)
			} else {
				field(a.out, "Date range", "n/a")
			}
			field(a.out, "With dates", formatCount(stats.ArticlesWithDates))
			field(a.out, "Avg text length", fmt.Sprintf("%.0f chars", stats.AvgTextLength))

			sources := stats.TopSources
			if top > config.DefaultTopSources {
				sources = corpus.RankSources(t)
			}
			if top < len(sources) {
				sources = sources[:top]
			}
			fmt.Fprintln(a.out)
			heading(a.out, fmt.Sprintf("Top %d sources", len(sources)))
			for _, s := range sources {
				field(a.out, s.Source, formatCount(s.Count))
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().IntVar(&top, "top", config.DefaultTopSources, "sources to list")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		filters       filterFlags
		term          string
		caseSensitive bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the selected articles to FILE as JSONL or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := corpus.ParseFormat(format)
			if err != nil {
				return err
			}
			t, err := a.filteredTable(cmd, &filters, term, caseSensitive)
			if err != nil {
				return err
			}
			if err := corpus.Export(t, args[0], f); err != nil {
				return err
			}
			a.log.WithField("file", args[0]).WithField("articles", len(t)).Info("exported")
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&term, "term", "", "only export articles matching this pattern")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match --term case exactly")
	cmd.Flags().StringVar(&format, "format", string(corpus.FormatJSONL), "jsonl or json")
	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		n     int
		seed  int64
		limit int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a reproducible random sample from the baseline file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			t, err := a.cache.LoadSample(cmd.Context(), n, seed)
			if err != nil {
				return err
			}
			if out != "" {
				return corpus.Export(t, out, corpus.FormatJSONL)
			}

			heading(a.out, fmt.Sprintf("Sample of %s articles (seed %d)", formatCount(len(t)), seed))
			printArticles(a.out, t, limit)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", config.DefaultSampleSize, "sample size")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSampleSeed, "random seed")
	cmd.Flags().IntVar(&limit, "limit", 20, "articles to print")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the sample to this JSONL file instead")
	return cmd
}


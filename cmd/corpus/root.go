package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"newscorpus/config"
	"newscorpus/corpus"
	"newscorpus/logging"
	"newscorpus/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	out io.Writer

	configPath  string
	logLevel    string
	credentials string
	localDir    string
	concurrency int
	files       string

	cfg    *config.Config
	log    *logrus.Logger
	source storage.Source
	cache  *corpus.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}

	root := &cobra.Command{
		Use:           "corpus",
		Short:         "Query the immigration news article corpus",
		Long:          "corpus loads JSONL article files from S3 (or a local mirror), caches them in memory and runs searches, term counts, statistics and exports over them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.credentials, "credentials", "", "credential source: default, profile, env or prompt")
	flags.StringVar(&a.localDir, "local-dir", "", "read files from this directory instead of S3")
	flags.IntVar(&a.concurrency, "concurrency", 0, "parallel file fetches")
	flags.StringVar(&a.files, "files", "0", `file selection, e.g. "0-2,7" or "all"`)

	root.AddCommand(
		newLoadCmd(a),
		newSampleCmd(a),
		newSearchCmd(a),
		newCountsCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newFilesCmd(a),
		newBrowseCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger. The storage source is
// opened lazily so commands like version never touch the network.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.credentials != "" {
		cfg.Credentials = config.CredentialSource(a.credentials)
	}
	if a.localDir != "" {
		cfg.LocalDir = a.localDir
	}
	if a.concurrency > 0 {
		cfg.Concurrency = a.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(cfg.LogLevel, logging.FormatText, cmd.ErrOrStderr())
	return nil
}

// open connects to the configured storage and creates the cache.
func (a *app) open(ctx context.Context) error {
	if a.cache != nil {
		return nil
	}

	source, err := storage.Open(ctx, a.cfg, config.TerminalPrompter(), a.log)
	if err != nil {
		return err
	}

	a.source = source
	a.cache = corpus.NewCache(source,
		corpus.WithLogger(a.log),
		corpus.WithConcurrency(a.cfg.Concurrency),
	)
	a.log.WithField("location", source.Location()).Debug("storage opened")
	return nil
}

// load opens storage and loads the --files selection.
func (a *app) load(ctx context.Context, opts ...corpus.LoadOption) (corpus.Table, error) {
	indices, err := corpus.ParseIndices(a.files)
	if err != nil {
		return nil, err
	}
	if err := a.open(ctx); err != nil {
		return nil, err
	}
	return a.cache.Load(ctx, indices, opts...)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corpus %s (commit: %s)\n", version, commit)
		},
	}
}

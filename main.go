package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"newscorpus/api"
	"newscorpus/config"
	"newscorpus/corpus"
	"newscorpus/logging"
	"newscorpus/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		logging.New("info", logging.FormatJSON, os.Stderr).WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, logging.FormatJSON, os.Stderr)

	source, err := storage.Open(ctx, cfg, config.TerminalPrompter(), log)
	if err != nil {
		log.WithError(err).Fatal("opening storage")
	}
	cache := corpus.NewCache(source, corpus.WithLogger(log), corpus.WithConcurrency(cfg.Concurrency))

	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(cache, log)
	log.WithField("location", source.Location()).Info("API endpoints available: /api/health /api/articles /api/terms /api/stats /api/sample /api/export /api/cache")

	if err := api.Serve(ctx, cfg.Addr(), r, logging.Service(log, "server")); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

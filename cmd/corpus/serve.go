package main

import (
	"newscorpus/api"
	"newscorpus/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve corpus queries over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			a.log = logging.New(a.cfg.LogLevel, logging.FormatJSON, cmd.ErrOrStderr())
			if err := a.open(cmd.Context()); err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(a.cache, a.log)
			return api.Serve(cmd.Context(), a.cfg.Addr(), router, logging.Service(a.log, "server"))
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default from PORT or 8080)")
	return cmd
}

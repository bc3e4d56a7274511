package api

import (
	"fmt"
	"net/http"

	"newscorpus/corpus"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerExportRoutes(g *gin.RouterGroup) {
	g.GET("/export", s.handleExport)
}

var contentTypes = map[corpus.Format]string{
	corpus.FormatJSONL: "application/x-ndjson",
	corpus.FormatJSON:  "application/json",
}

// handleExport streams the filtered table as a download.
func (s *Server) handleExport(c *gin.Context) {
	format, err := corpus.ParseFormat(c.DefaultQuery("format", string(corpus.FormatJSONL)))
	if err != nil {
		badRequest(c, err)
		return
	}
	t, ok := s.loadTable(c, true)
	if !ok {
		return
	}

	c.Header("Content-Type", contentTypes[format])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=articles.%s", format))
	c.Status(http.StatusOK)
	if err := corpus.WriteTable(c.Writer, t, format); err != nil {
		// Headers are gone; the middleware logs it.
		_ = c.Error(err)
	}
}

package api

import (
	"errors"
	"net/http"

	"newscorpus/corpus"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerStatsRoutes(g *gin.RouterGroup) {
	g.GET("/stats", s.handleStats)
	g.GET("/terms", s.handleTermCounts)
}

// TermCountsResponse reports mentions per term over the filtered table.
type TermCountsResponse struct {
	Total  int                         `json:"total"`
	Counts map[string]corpus.TermCount `json:"counts"`
}

func (s *Server) handleStats(c *gin.Context) {
	t, ok := s.loadTable(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, corpus.GetStats(t))
}

func (s *Server) handleTermCounts(c *gin.Context) {
	terms := c.QueryArray("term")
	if len(terms) == 0 {
		badRequest(c, errors.New("at least one term is required"))
		return
	}
	t, ok := s.loadTable(c, false)
	if !ok {
		return
	}

	counts, err := corpus.TermCounts(t, terms)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TermCountsResponse{Total: len(t), Counts: counts})
}

package api

import (
	"net/http"

	"newscorpus/corpus"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerCacheRoutes(g *gin.RouterGroup) {
	g.GET("/cache", s.handleCacheInfo)
	g.DELETE("/cache", s.handleClearCache)
}

// CacheResponse lists the file units held in memory.
type CacheResponse struct {
	Loaded int                `json:"loaded"`
	Files  []corpus.EntryInfo `json:"files"`
}

func (s *Server) handleCacheInfo(c *gin.Context) {
	files := s.cache.Entries()
	if files == nil {
		files = []corpus.EntryInfo{}
	}
	c.JSON(http.StatusOK, CacheResponse{Loaded: len(files), Files: files})
}

func (s *Server) handleClearCache(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cleared": s.cache.Clear()})
}

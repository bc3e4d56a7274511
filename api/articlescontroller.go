package api

import (
	"fmt"
	"net/http"
	"strconv"

	"newscorpus/config"
	"newscorpus/corpus"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerArticleRoutes(g *gin.RouterGroup) {
	g.GET("/articles", s.handleListArticles)
	g.GET("/sample", s.handleSample)
}

// ArticlesResponse is one page of a filtered table.
type ArticlesResponse struct {
	Total    int          `json:"total"`
	Returned int          `json:"returned"`
	Articles corpus.Table `json:"articles"`
}

// tableQuery holds the filters shared by every table endpoint.
type tableQuery struct {
	Files         string   `form:"files"`
	Term          string   `form:"term"`
	CaseSensitive bool     `form:"case_sensitive"`
	Sources       []string `form:"source"`
	Start         string   `form:"start"`
	End           string   `form:"end"`
}

// loadTable loads the selected files and applies source, date and (when
// search is set) term filters. On failure it writes the response itself.
func (s *Server) loadTable(c *gin.Context, search bool) (corpus.Table, bool) {
	var q tableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return nil, false
	}
	indices, err := corpus.ParseIndices(q.Files)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}

	t, err := s.cache.Load(c.Request.Context(), indices)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	if len(q.Sources) > 0 {
		t = corpus.FilterBySource(t, q.Sources)
	}
	if q.Start != "" || q.End != "" {
		if t, err = corpus.FilterByDate(t, q.Start, q.End); err != nil {
			respondWithError(c, err)
			return nil, false
		}
	}
	if search && q.Term != "" {
		if t, err = corpus.SearchTerm(t, q.Term, q.CaseSensitive); err != nil {
			respondWithError(c, err)
			return nil, false
		}
	}
	return t, true
}

func (s *Server) handleListArticles(c *gin.Context) {
	limit, err := intQuery(c, "limit", config.DefaultResultLimit)
	if err != nil {
		badRequest(c, err)
		return
	}
	t, ok := s.loadTable(c, true)
	if !ok {
		return
	}
	page := t.Head(limit)
	c.JSON(http.StatusOK, ArticlesResponse{Total: len(t), Returned: len(page), Articles: page})
}

func (s *Server) handleSample(c *gin.Context) {
	n, err := intQuery(c, "n", config.DefaultSampleSize)
	if err != nil {
		badRequest(c, err)
		return
	}
	seed, err := intQuery(c, "seed", config.DefaultSampleSeed)
	if err != nil {
		badRequest(c, err)
		return
	}

	t, err := s.cache.LoadSample(c.Request.Context(), n, int64(seed))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ArticlesResponse{Total: len(t), Returned: len(t), Articles: t})
}

// intQuery reads a non-negative integer query parameter.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

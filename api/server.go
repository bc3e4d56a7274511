package api

import (
	"errors"
	"net/http"
	"time"

	"newscorpus/corpus"
	"newscorpus/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Server serves read-only queries over a corpus cache.
type Server struct {
	cache *corpus.Cache
	log   *logrus.Entry
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(cache *corpus.Cache, log logrus.FieldLogger) *gin.Engine {
	s := &Server{cache: cache, log: log.WithField("component", "api")}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	g := r.Group("/api")
	g.GET("/health", handleHealth)
	s.registerArticleRoutes(g)
	s.registerStatsRoutes(g)
	s.registerExportRoutes(g)
	s.registerCacheRoutes(g)
	return r
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		entry := s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// statusFor maps corpus errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		patternErr *types.InvalidPatternError
		dateErr    *types.DateError
		indexErr   *types.IndexError
		notFound   *types.NotFoundError
		credErr    *types.CredentialError
	)
	switch {
	case errors.As(err, &patternErr), errors.As(err, &dateErr), errors.As(err, &indexErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &credErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

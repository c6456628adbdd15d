package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_requests_total":   GetAPIRequests(),
		"api_failures_total":   GetAPIFailures(),
		"cache_hits_total":     GetCacheHits(),
		"cache_misses_total":   GetCacheMisses(),
		"fetches_total":        GetFetches(),
		"fetch_failures_total": GetFetchFailures(),
		"movies_crawled_total": GetMoviesCrawled(),
		"active_connections":   GetActiveConnections(),
		"system":               GetSystemMetrics(),
	})
}

// Middleware counts requests, 5xx responses and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		IncrementAPIRequests()
		if c.Writer.Status() >= http.StatusInternalServerError {
			IncrementAPIFailures()
		}
		RecordLatency(time.Since(start))
	}
}

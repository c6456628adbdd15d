package crawler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

// Invalidator drops derived data once new movies are stored.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Handler struct {
	crawler     *Crawler
	invalidator Invalidator
	log         *logger.Logger
}

func NewHandler(crawler *Crawler, invalidator Invalidator) *Handler {
	return &Handler{
		crawler:     crawler,
		invalidator: invalidator,
		log:         logger.GetLogger().WithContext("component", "crawl_handler"),
	}
}

type crawlRequest struct {
	Pages int `json:"pages" binding:"omitempty,min=1,max=10"`
}

// Crawl runs a crawl synchronously and reports the counts.
func (h *Handler) Crawl(c *gin.Context) {
	var req crawlRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.crawler.Run(c.Request.Context(), req.Pages)
	if err != nil {
		h.log.Error("crawl_failed", "subject", c.GetString("subject"), "error", err.Error())
		c.JSON(errors.StatusCode(err), gin.H{"error": err.Error(), "result": result})
		return
	}

	if h.invalidator != nil && result.Saved > 0 {
		if err := h.invalidator.Invalidate(c.Request.Context()); err != nil {
			h.log.Warn("cache_invalidate_failed", "error", err.Error())
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crawl completed", "result": result})
}

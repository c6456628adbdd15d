package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binhbb2204/movie-stats-viz/pkg/database"
)

// Pinger is an optional dependency checked by Readyz, such as the redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	cache Pinger
}

func NewHandler(cache Pinger) *Handler {
	return &Handler{cache: cache}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *Handler) Readyz(c *gin.Context) {
	if database.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "database_not_initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "database_ping_failed"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "cache_ping_failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

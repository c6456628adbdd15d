package distribution

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const endpointSuffix = "-distribution"

// Handler serves the aggregate endpoints under /api/movies.
type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		log:     logger.GetLogger().WithContext("component", "distribution_handler"),
	}
}

// RegisterRoutes mounts GET /:kind on the /api/movies group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:kind", h.GetDistribution)
}

// GetDistribution answers /api/movies/{rating|year|country}-distribution.
func (h *Handler) GetDistribution(c *gin.Context) {
	kind := c.Param("kind")
	if !strings.HasSuffix(kind, endpointSuffix) {
		c.JSON(http.StatusNotFound, models.DistributionResponse{
			Status:  models.StatusError,
			Message: "not found",
		})
		return
	}

	category, err := models.ParseCategory(strings.TrimSuffix(kind, endpointSuffix))
	if err != nil {
		c.JSON(http.StatusNotFound, models.DistributionResponse{
			Status:  models.StatusError,
			Message: err.Error(),
		})
		return
	}

	points, err := h.service.Distribution(c.Request.Context(), category)
	if err != nil {
		h.log.Error("distribution_query_failed",
			"category", category,
			"status", errors.StatusCode(err),
			"error", err.Error())
		c.JSON(http.StatusInternalServerError, models.DistributionResponse{
			Status:  models.StatusError,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DistributionResponse{
		Status: models.StatusSuccess,
		Data:   points,
	})
}

package handler

import (
	"context"
	"net/http"

	"parcel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// StatsHandler handles aggregate statistics requests
type StatsHandler struct {
	service StatsService
}

// Service interface for dependency injection
type StatsService interface {
	Stats(ctx context.Context) (*models.ParcelStats, error)
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Stats handles GET /api/stats requests
//
//	@Summary	Aggregate parcel statistics
//	@Produce	json
//	@Success	200	{object}	models.ParcelStats
//	@Failure	500	{object}	map[string]string
//	@Router		/api/stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

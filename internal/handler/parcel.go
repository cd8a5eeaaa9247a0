package handler

import (
	"context"
	"net/http"
	"strconv"

	"parcel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ParcelHandler handles single-parcel lookups
type ParcelHandler struct {
	service ParcelService
}

// Service interface for dependency injection
type ParcelService interface {
	GetParcel(ctx context.Context, id int64) (*models.ParcelDetail, error)
}

// NewParcelHandler creates a new parcel handler
func NewParcelHandler(svc ParcelService) *ParcelHandler {
	return &ParcelHandler{service: svc}
}

// GetParcel handles GET /api/parcels/:id requests
//
//	@Summary	Full detail for one parcel
//	@Produce	json
//	@Param		id	path		int	true	"Parcel ID"
//	@Success	200	{object}	models.ParcelDetail
//	@Failure	404	{object}	map[string]string
//	@Router		/api/parcels/{id} [get]
func (h *ParcelHandler) GetParcel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parcel id"})
		return
	}

	detail, err := h.service.GetParcel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

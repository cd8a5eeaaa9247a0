package handler

import (
	"context"
	"net/http"

	"parcel-api/internal/filter"
	"parcel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles filtered parcel search requests
type SearchHandler struct {
	service SearchService
}

// Service interface for dependency injection
type SearchService interface {
	Search(ctx context.Context, f *filter.SearchFilter) (*models.SearchResult, error)
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Search handles GET /api/parcels/search requests
//
//	@Summary	Filtered, paginated parcel search
//	@Produce	json
//	@Param		min_area_acres		query		number	false	"Minimum area in acres"
//	@Param		max_area_acres		query		number	false	"Maximum area in acres"
//	@Param		min_price			query		number	false	"Minimum latest estimated price"
//	@Param		max_price			query		number	false	"Maximum latest estimated price"
//	@Param		zoning_codes		query		[]string	false	"Zoning codes (any of)"
//	@Param		soil_types			query		[]string	false	"Soil types (any of)"
//	@Param		cropland_classes	query		[]string	false	"Cropland classes (any of)"
//	@Param		water_access		query		bool	false	"Require water access"
//	@Param		road_access			query		bool	false	"Require road access"
//	@Param		city				query		string	false	"City substring, case-insensitive"
//	@Param		limit				query		int		false	"Page size (default 100, max 500)"
//	@Param		offset				query		int		false	"Page offset"
//	@Success	200					{object}	models.SearchResult
//	@Failure	400					{object}	map[string]string
//	@Router		/api/parcels/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	var f filter.SearchFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed search filter"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), &f)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Rows == nil {
		result.Rows = []models.ParcelRow{}
	}

	c.JSON(http.StatusOK, result)
}

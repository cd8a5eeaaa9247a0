package handler

import (
	"context"
	"net/http"
	"strconv"

	"parcel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SpatialHandler handles viewport and radius queries
type SpatialHandler struct {
	service SpatialService
}

// Service interface for dependency injection
type SpatialService interface {
	BBoxFeatures(ctx context.Context, north, south, east, west float64, zoom *int) ([]models.ParcelFeature, error)
	BBoxList(ctx context.Context, north, south, east, west float64) ([]models.ParcelRow, error)
	NearPoint(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]models.ParcelDistance, error)
}

// NewSpatialHandler creates a new spatial handler
func NewSpatialHandler(svc SpatialService) *SpatialHandler {
	return &SpatialHandler{service: svc}
}

func parseBounds(c *gin.Context) (north, south, east, west float64, ok bool) {
	var err error
	for _, p := range []struct {
		name string
		dest *float64
	}{
		{"north", &north},
		{"south", &south},
		{"east", &east},
		{"west", &west},
	} {
		raw := c.Query(p.name)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter '" + p.name + "'"})
			return 0, 0, 0, 0, false
		}
		*p.dest, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for '" + p.name + "'"})
			return 0, 0, 0, 0, false
		}
	}
	return north, south, east, west, true
}

// BBoxFeatures handles GET /api/parcels/bbox requests
//
//	@Summary	Parcels in viewport with geometry
//	@Produce	json
//	@Param		north	query		number	true	"North latitude"
//	@Param		south	query		number	true	"South latitude"
//	@Param		east	query		number	true	"East longitude"
//	@Param		west	query		number	true	"West longitude"
//	@Param		zoom	query		int		false	"Map zoom level (0-22)"
//	@Success	200		{array}		models.ParcelFeature
//	@Failure	400		{object}	map[string]string
//	@Router		/api/parcels/bbox [get]
func (h *SpatialHandler) BBoxFeatures(c *gin.Context) {
	north, south, east, west, ok := parseBounds(c)
	if !ok {
		return
	}

	var zoom *int
	if raw := c.Query("zoom"); raw != "" {
		z, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for 'zoom'"})
			return
		}
		zoom = &z
	}

	features, err := h.service.BBoxFeatures(c.Request.Context(), north, south, east, west, zoom)
	if err != nil {
		respondError(c, err)
		return
	}
	if features == nil {
		features = []models.ParcelFeature{}
	}

	c.JSON(http.StatusOK, features)
}

// BBoxList handles GET /api/parcels/bbox/list requests
//
//	@Summary	Parcels in viewport, attributes only
//	@Produce	json
//	@Param		north	query		number	true	"North latitude"
//	@Param		south	query		number	true	"South latitude"
//	@Param		east	query		number	true	"East longitude"
//	@Param		west	query		number	true	"West longitude"
//	@Success	200		{array}		models.ParcelRow
//	@Failure	400		{object}	map[string]string
//	@Router		/api/parcels/bbox/list [get]
func (h *SpatialHandler) BBoxList(c *gin.Context) {
	north, south, east, west, ok := parseBounds(c)
	if !ok {
		return
	}

	parcels, err := h.service.BBoxList(c.Request.Context(), north, south, east, west)
	if err != nil {
		respondError(c, err)
		return
	}
	if parcels == nil {
		parcels = []models.ParcelRow{}
	}

	c.JSON(http.StatusOK, parcels)
}

// NearPoint handles GET /api/parcels/near requests
//
//	@Summary	Parcels near a point, nearest first
//	@Produce	json
//	@Param		lat			query		number	true	"Center latitude"
//	@Param		lng			query		number	true	"Center longitude"
//	@Param		radius_m	query		number	true	"Radius in meters"
//	@Param		limit		query		int		false	"Max rows (default 100, cap 500)"
//	@Success	200			{array}		models.ParcelDistance
//	@Failure	400			{object}	map[string]string
//	@Router		/api/parcels/near [get]
func (h *SpatialHandler) NearPoint(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	radiusStr := c.Query("radius_m")

	if latStr == "" || lngStr == "" || radiusStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat', 'lng' and 'radius_m'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius format"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit format"})
			return
		}
	}

	parcels, err := h.service.NearPoint(c.Request.Context(), lat, lng, radius, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if parcels == nil {
		parcels = []models.ParcelDistance{}
	}

	c.JSON(http.StatusOK, parcels)
}

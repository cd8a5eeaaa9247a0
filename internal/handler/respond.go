package handler

import (
	"errors"
	"net/http"

	"parcel-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps the service error taxonomy onto HTTP statuses. Validation
// failures carry their message; anything store-level stays opaque.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

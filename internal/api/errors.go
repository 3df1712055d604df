package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/validation"
)

// respondError maps service errors to a status code and a JSON body.
// Unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperr.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, apperr.ErrUnavailable):
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Content store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content store unavailable"})
	case errors.Is(err, apperr.ErrMailDelivery):
		log.Error().Err(err).Msg("Email delivery failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "message could not be delivered"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

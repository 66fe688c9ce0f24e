package handlers

import (
	"errors"
	"net/http"

	"tasklist/internal/httpmw"
	"tasklist/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// writeError maps service errors to HTTP status codes. Anything unexpected is
// a 500 carrying the raw error text.
func writeError(c *gin.Context, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error().
			Err(err).
			Str("request_id", httpmw.RequestIDFromContext(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

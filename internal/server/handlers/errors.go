package handlers

import (
	"errors"
	"net/http"

	"rotape-service/internal/server/service"

	"github.com/gin-gonic/gin"
)

// abortWithError maps service errors onto HTTP responses
func abortWithError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrPoolExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": "nickname pool exhausted for this event"})
	case errors.Is(err, service.ErrTransientAllocation):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "nickname allocation is contended, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

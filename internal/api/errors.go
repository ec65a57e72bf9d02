package api

import (
	"errors"
	"net/http"

	"fraudconfig/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto the HTTP boundary: unknown entities are
// 404, rejected input is 400 with the reason, anything else is a 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

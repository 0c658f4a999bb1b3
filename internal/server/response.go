package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	riskdomain "github.com/spendguardlabs/spendguard/internal/risk/domain"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// AbortWithError maps domain errors onto HTTP statuses.
func AbortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, riskdomain.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
	case errors.Is(err, riskdomain.ErrRunKindMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "run kind mismatch"})
	case errors.Is(err, riskdomain.ErrInvalidTargetMonth):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"benchreg/internal/core/domain"
)

// respondError maps domain sentinels to HTTP statuses. Unrecognized errors
// surface as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "association already decided"})
	case errors.Is(err, domain.ErrIncompatibleAssociation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "incompatible association"})
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/covenant-backend/internal/domain"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "1"

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUser returns the identity placed in the context by the identity middleware.
func currentUser(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return "", false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses. fallback is the message
// used for unexpected failures so internals do not leak to clients.
func writeError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Warn("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "service temporarily unavailable"})
	default:
		logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

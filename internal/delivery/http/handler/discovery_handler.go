package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/usecase/discovery"
)

type DiscoveryHandler struct {
	discoveryUseCase *discovery.DiscoveryUseCase
	logger           *zap.Logger
}

func NewDiscoveryHandler(discoveryUseCase *discovery.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUseCase: discoveryUseCase,
		logger:           logger,
	}
}

// Discover handles GET /discover
// @Summary Ranked discovery
// @Description Candidates matching the filters ranked by covenant score
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param gender query string false "Gender filter"
// @Param min_age query int false "Minimum age"
// @Param max_age query int false "Maximum age"
// @Param limit query int false "Result limit"
// @Success 200 {array} discovery.RankedProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /discover [get]
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req discovery.DiscoverRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query parameters",
		})
		return
	}

	ranked, err := h.discoveryUseCase.RankDiscovery(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, h.logger, err, "failed to rank profiles")
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Nearby handles GET /nearby
// @Summary Nearby profiles
// @Description Profiles within a radius of a coordinate, nearest first
// @Tags discovery
// @Security BearerAuth
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in meters"
// @Param limit query int false "Result limit"
// @Success 200 {array} discovery.NearbyProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /nearby [get]
func (h *DiscoveryHandler) Nearby(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req discovery.NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query parameters",
		})
		return
	}

	profiles, err := h.discoveryUseCase.Nearby(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, h.logger, err, "failed to find nearby profiles")
		return
	}

	c.JSON(http.StatusOK, profiles)
}

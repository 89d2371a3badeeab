package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/usecase/stats"
)

type AdminHandler struct {
	statsUseCase *stats.StatsUseCase
	logger       *zap.Logger
}

func NewAdminHandler(statsUseCase *stats.StatsUseCase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		statsUseCase: statsUseCase,
		logger:       logger,
	}
}

// GetStats handles GET /admin/stats
// @Summary Platform counters
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} stats.Stats
// @Failure 503 {object} ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	s, err := h.statsUseCase.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "failed to get stats")
		return
	}
	c.JSON(http.StatusOK, s)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *zap.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Description Get current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetProfile handles GET /profile/:identity
// @Summary Get user profile
// @Description Get another user's profile with the distance from the caller
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param identity path string true "Profile identity"
// @Success 200 {object} profile.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/{identity} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.profileUseCase.GetProfile(c.Request.Context(), c.Param("identity"), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}

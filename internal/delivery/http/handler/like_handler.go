package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/usecase/like"
)

type LikeHandler struct {
	likeUseCase *like.LikeUseCase
	logger      *zap.Logger
}

func NewLikeHandler(likeUseCase *like.LikeUseCase, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likeUseCase: likeUseCase,
		logger:      logger,
	}
}

// Like handles POST /likes
// @Summary Like a profile
// @Description Record a like; a mutual like becomes a match
// @Tags likes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body like.LikeRequest true "Liked profile"
// @Success 200 {object} like.LikeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /likes [post]
func (h *LikeHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req like.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	resp, err := h.likeUseCase.Like(c.Request.Context(), userID, req.ToUserID)
	if err != nil {
		writeError(c, h.logger, err, "failed to like profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Unlike handles DELETE /likes/:to_user_id
// @Summary Remove a like
// @Tags likes
// @Security BearerAuth
// @Produce json
// @Param to_user_id path string true "Liked profile identity"
// @Success 200 {object} like.UnlikeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /likes/{to_user_id} [delete]
func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.likeUseCase.Unlike(c.Request.Context(), userID, c.Param("to_user_id"))
	if err != nil {
		writeError(c, h.logger, err, "failed to remove like")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetLikesReceived handles GET /likes/received
// @Summary Likes received
// @Tags likes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} like.ReceivedLike
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /likes/received [get]
func (h *LikeHandler) GetLikesReceived(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	likes, err := h.likeUseCase.GetReceivedLikes(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get received likes")
		return
	}

	c.JSON(http.StatusOK, likes)
}

// GetLikesSent handles GET /likes/sent
// @Summary Likes sent
// @Tags likes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} string
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /likes/sent [get]
func (h *LikeHandler) GetLikesSent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sent, err := h.likeUseCase.GetSentLikes(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get sent likes")
		return
	}

	c.JSON(http.StatusOK, sent)
}

// GetMatches handles GET /matches
// @Summary Matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} like.MatchView
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /matches [get]
func (h *LikeHandler) GetMatches(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	matches, err := h.likeUseCase.GetMatches(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err, "failed to get matches")
		return
	}

	c.JSON(http.StatusOK, matches)
}

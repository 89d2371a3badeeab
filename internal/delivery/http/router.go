package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gdugdh24/covenant-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/covenant-backend/internal/delivery/http/middleware"
)

type Router struct {
	discoveryHandler *handler.DiscoveryHandler
	likeHandler      *handler.LikeHandler
	profileHandler   *handler.ProfileHandler
	adminHandler     *handler.AdminHandler
	authMiddleware   *middleware.AuthMiddleware
	requestTimeout   time.Duration
	logger           *zap.Logger
}

func NewRouter(
	discoveryHandler *handler.DiscoveryHandler,
	likeHandler *handler.LikeHandler,
	profileHandler *handler.ProfileHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *Router {
	return &Router{
		discoveryHandler: discoveryHandler,
		likeHandler:      likeHandler,
		profileHandler:   profileHandler,
		adminHandler:     adminHandler,
		authMiddleware:   authMiddleware,
		requestTimeout:   requestTimeout,
		logger:           logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(r.authMiddleware.RequireAuth(), middleware.RequestTimeout(r.requestTimeout))
	{
		protected.GET("/discover", r.discoveryHandler.Discover)
		protected.GET("/nearby", r.discoveryHandler.Nearby)

		likes := protected.Group("/likes")
		{
			likes.POST("", r.likeHandler.Like)
			likes.DELETE("/:to_user_id", r.likeHandler.Unlike)
			likes.GET("/received", r.likeHandler.GetLikesReceived)
			likes.GET("/sent", r.likeHandler.GetLikesSent)
		}

		protected.GET("/matches", r.likeHandler.GetMatches)

		profile := protected.Group("/profile")
		{
			profile.GET("/me", r.profileHandler.GetMyProfile)
			profile.GET("/:identity", r.profileHandler.GetProfile)
		}

		protected.GET("/admin/stats", r.adminHandler.GetStats)
	}

	return router
}

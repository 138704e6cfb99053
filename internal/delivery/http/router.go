package http

import (
	"github.com/bliinmaker/dating-bot/internal/delivery/http/handler"
	"github.com/bliinmaker/dating-bot/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler        *handler.AuthHandler
	profileHandler     *handler.ProfileHandler
	feedHandler        *handler.FeedHandler
	interactionHandler *handler.InteractionHandler
	statsHandler       *handler.StatsHandler
	sessionHandler     *handler.SessionHandler
	authMiddleware     *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	interactionHandler *handler.InteractionHandler,
	statsHandler *handler.StatsHandler,
	sessionHandler *handler.SessionHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:        authHandler,
		profileHandler:     profileHandler,
		feedHandler:        feedHandler,
		interactionHandler: interactionHandler,
		statsHandler:       statsHandler,
		sessionHandler:     sessionHandler,
		authMiddleware:     authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/telegram", r.authHandler.TelegramAuth)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("/users/me", r.authHandler.Me)

			profile := protected.Group("/profile")
			{
				profile.POST("/me", r.profileHandler.CreateMyProfile)
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/me/photos", r.profileHandler.UploadPhoto)
				profile.GET("/me/photos", r.profileHandler.ListMyPhotos)
				profile.GET("/:profile_id", r.profileHandler.GetProfileDetail)
				profile.GET("/:profile_id/rating", r.profileHandler.GetProfileRating)
			}

			feed := protected.Group("/feed")
			{
				feed.GET("/next", r.feedHandler.GetNext)
				feed.POST("/refresh", r.feedHandler.Refresh)
			}

			protected.POST("/interactions", r.interactionHandler.Create)

			matches := protected.Group("/matches")
			{
				matches.GET("", r.interactionHandler.ListMatches)
				matches.POST("/:match_id/chat-initiated", r.interactionHandler.MarkChatInitiated)
			}

			session := protected.Group("/session")
			{
				session.GET("", r.sessionHandler.Get)
				session.POST("/events", r.sessionHandler.Advance)
				session.DELETE("", r.sessionHandler.Reset)
			}

			protected.GET("/stats", r.statsHandler.Overview)
		}
	}

	return router
}

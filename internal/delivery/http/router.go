package http

import (
	"net/http"

	"github.com/gdugdh24/insightsphere-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/insightsphere-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	collabHandler     *handler.CollabHandler
	trendHandler      *handler.TrendHandler
	alertHandler      *handler.AlertHandler
	competitorHandler *handler.CompetitorHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	collabHandler *handler.CollabHandler,
	trendHandler *handler.TrendHandler,
	alertHandler *handler.AlertHandler,
	competitorHandler *handler.CompetitorHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		collabHandler:     collabHandler,
		trendHandler:      trendHandler,
		alertHandler:      alertHandler,
		competitorHandler: competitorHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Metrics())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/google", r.authHandler.Google)
			auth.POST("/github", r.authHandler.GitHub)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
			auth.PUT("/phone", r.authMiddleware.RequireAuth(), r.authHandler.UpdatePhone)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			collab := protected.Group("/collab")
			{
				collab.POST("/profile", r.profileHandler.UpsertMyProfile)
				collab.GET("/profile", r.profileHandler.GetMyProfile)
				collab.GET("/profile/:id", r.profileHandler.GetProfile)

				collab.GET("/matches", r.collabHandler.FindMatches)
				collab.GET("/compatibility/:id", r.collabHandler.Compatibility)
				collab.POST("/pitch", r.collabHandler.Pitch)
				collab.POST("/ideas", r.collabHandler.Ideas)

				collab.POST("/requests", r.collabHandler.CreateRequest)
				collab.GET("/requests", r.collabHandler.ListRequests)
				collab.PUT("/requests/:id", r.collabHandler.Respond)
				collab.GET("/history", r.collabHandler.History)
			}

			trends := protected.Group("/trends")
			{
				trends.POST("/analyze", r.trendHandler.Analyze)
				trends.GET("/history", r.trendHandler.History)
			}

			alerts := protected.Group("/alerts")
			{
				alerts.POST("/rules", r.alertHandler.CreateRule)
				alerts.GET("/rules", r.alertHandler.ListRules)
				alerts.PUT("/rules/:id", r.alertHandler.UpdateRule)
				alerts.DELETE("/rules/:id", r.alertHandler.DeleteRule)
			}

			competitors := protected.Group("/competitors")
			{
				competitors.POST("", r.competitorHandler.Add)
				competitors.GET("", r.competitorHandler.List)
				competitors.GET("/gaps", r.competitorHandler.Gaps)
				competitors.GET("/:id", r.competitorHandler.Get)
				competitors.POST("/:id/sync", r.competitorHandler.Sync)
				competitors.GET("/:id/viral", r.competitorHandler.Viral)
				competitors.DELETE("/:id", r.competitorHandler.Delete)
			}
		}
	}

	return router
}

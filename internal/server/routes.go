package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rotape-service/internal/ports/models"
	"rotape-service/internal/server/handlers"
	"rotape-service/internal/server/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	appHandler *handlers.ApplicationHandler,
	prefHandler *handlers.PreferenceHandler,
	matchHandler *handlers.MatchHandler,
) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes (require JWT authentication)
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		events := protected.Group("/events/:event_id")
		{
			events.POST("/applications", appHandler.Apply)
			// Self-service routes live under the singular segment so they
			// cannot collide with the :app_key wildcard below.
			events.GET("/application", appHandler.GetMine)
			events.POST("/application/nickname", appHandler.AssignNickname)
			events.POST("/preferences", prefHandler.Submit)
			events.GET("/preferences/me", prefHandler.GetMine)
		}

		// Organizer-only routes
		organizer := protected.Group("/events/:event_id")
		organizer.Use(middleware.RequireRole(models.RoleOrganizer))
		{
			organizer.PATCH("/applications/:app_key/status", appHandler.UpdateStatus)
			organizer.POST("/matches/resolve", matchHandler.Resolve)
			organizer.GET("/matches", matchHandler.List)
			organizer.GET("/tally", matchHandler.Tally)
		}
	}
}

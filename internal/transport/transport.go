package transport

import (
	"github.com/ds124wfegd/eventhub/internal/entity"
	"github.com/ds124wfegd/eventhub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	jwtSecret string,
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	locationHandler *LocationHandler,
	userHandler *UserHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		// Public auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Everything below requires a verified bearer token; role allow-lists
		// are declared per route.
		authorized := api.Group("")
		authorized.Use(middleware.Auth(jwtSecret))

		events := authorized.Group("/events")
		{
			events.POST("", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), eventHandler.Create)
			events.GET("", eventHandler.GetAll)
			events.GET("/:id", eventHandler.GetByID)
			events.PUT("/:id", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), eventHandler.Update)
			events.DELETE("/:id", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), eventHandler.Delete)
			events.POST("/:id/register", eventHandler.RegisterAttendee)
			events.GET("/:id/attendees", eventHandler.GetAttendees)
		}

		locations := authorized.Group("/locations")
		{
			locations.POST("", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), locationHandler.Create)
			locations.GET("", locationHandler.GetAll)
			locations.GET("/:id", locationHandler.GetByID)
			locations.PUT("/:id", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), locationHandler.Update)
			locations.DELETE("/:id", middleware.RequireRoles(entity.RoleEventManager, entity.RoleAdmin), locationHandler.Delete)
		}

		users := authorized.Group("/users")
		users.Use(middleware.RequireRoles(entity.RoleAdmin))
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.GetAll)
			users.GET("/:id", userHandler.GetByID)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}

	return router
}

package api

import (
	"log"

	"github.com/airpong/backend/internal/api/handlers"
	"github.com/airpong/backend/internal/config"
	"github.com/airpong/backend/internal/middleware"
	"github.com/airpong/backend/internal/ws"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, host handlers.MatchHost, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		match := v1.Group("/match")
		{
			match.GET("", handlers.GetMatchState(host))
			match.POST("/serve", handlers.RequestServe(host))
			match.POST("/paddle/:player", handlers.UpdatePaddle(host))
			match.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleMatchWebSocket(hub))
		}
	}
}

package server

import (
	"time"

	httpHandler "tube-chat/interfaces/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	chatHandler httpHandler.IChatHandler,
	transcriptHandler httpHandler.ITranscriptHandler,
	healthHandler httpHandler.IHealthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/transcript", transcriptHandler.Extract)
		api.GET("/cache/stats", transcriptHandler.CacheStats)
		api.GET("/ratelimit/status", transcriptHandler.RateLimitStatus)
	}

	return router
}

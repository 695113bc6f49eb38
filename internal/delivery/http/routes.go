package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoplens/backend/config"
	"github.com/shoplens/backend/internal/metrics"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(metrics.HTTPMetrics())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Liveness and health
	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)

	// Click analytics
	router.GET("/clicks", handler.Clicks)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Redirect endpoint, rate limited per IP
	router.GET("/go",
		RateLimitMiddleware(cfg.RateLimit.RedirectPerMinute, time.Minute),
		handler.Redirect,
	)

	// Inbound chat updates
	router.POST("/webhook", handler.Webhook)

	return router
}

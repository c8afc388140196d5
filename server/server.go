package server

import (
	"os"
	"strings"
	"time"

	"github.com/dealbridge/billing-engine/handlers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New builds the gin router with the billing preview routes wired against
// the given provider.
func New(provider interfaces.BillingProvider, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.L()
	}

	engine := services.NewBillingEngine(provider, nil, logger)
	review := services.NewReviewService()

	billingHandler := handlers.NewBillingHandler(engine, review, provider, logger)
	healthHandler := handlers.NewHealthHandler()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(cors.New(corsConfig()))

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/opportunities/preview", billingHandler.PreviewOpportunity)
	}

	return r
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.AllowOrigins = strings.Split(origins, ",")
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	return config
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

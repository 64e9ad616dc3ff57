package api

import (
	"github.com/Conceptual-Machines/chordgen-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/chordgen-api/internal/api/middleware"
	"github.com/Conceptual-Machines/chordgen-api/internal/config"
	"github.com/Conceptual-Machines/chordgen-api/internal/engine"
	"github.com/Conceptual-Machines/chordgen-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, cloudwatch *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(version)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cfg.MaxBars)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// API routes v1
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware(cfg))
	{
		progressionHandler := handlers.NewProgressionHandler(engine.New(engine.WithMaxBars(cfg.MaxBars)), cloudwatch)
		v1.POST("/progressions", progressionHandler.Generate)

		theoryHandler := handlers.NewTheoryHandler()
		v1.GET("/theory", theoryHandler.Catalog)
		v1.GET("/theory/diatonic", theoryHandler.Diatonic)
	}

	return router
}

// authMiddleware selects authentication by AUTH_MODE
func authMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsGatewayMode():
		return apimiddleware.GatewayAuth()
	case cfg.IsJWTMode():
		return apimiddleware.JWTAuth(cfg.JWTSecret)
	default:
		return apimiddleware.NoAuth()
	}
}

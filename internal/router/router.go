package router

import (
	"github.com/gin-gonic/gin"

	"claimlens/internal/config"
	"claimlens/internal/handler"
	"claimlens/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	documentH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	documents := v1.Group("/documents")
	documents.POST("/extract", documentH.Extract)
	documents.POST("/ask", documentH.Ask)
	documents.GET("", documentH.List)
	documents.GET("/export", documentH.Export)
	documents.GET("/:id", documentH.GetByID)

	return r
}

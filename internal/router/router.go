package router

import (
	"github.com/gin-gonic/gin"

	"billscan/internal/config"
	"billscan/internal/handler"
	"billscan/internal/middleware"
	"billscan/internal/observability/metrics"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	billH *handler.BillHandler,
	healthH *handler.HealthHandler,
	m *metrics.HTTPServerMetrics,
) *gin.Engine {
	r := gin.New()

	// Global middleware. RequestID runs first so the recovery handler and
	// access log both see it.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(m.Middleware())

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := r.Group("/api/v1")

	bills := v1.Group("/bills")
	bills.POST("/scan", billH.Scan)
	bills.POST("/parse", billH.Parse)
	bills.GET("", billH.List)
	bills.GET("/export", billH.Export)
	bills.GET("/:id", billH.GetByID)
	bills.GET("/:id/file", billH.File)
	bills.DELETE("/:id", billH.Delete)

	return r
}

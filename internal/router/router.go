package router

import (
	"github.com/gin-gonic/gin"

	"equitylens/internal/handler"
	"equitylens/internal/middleware"
)

// Options holds the middleware settings of the engine.
type Options struct {
	AllowedOrigins []string
	MaxFileSize    int64
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	statementH *handler.StatementHandler,
	healthH *handler.HealthHandler,
	opts Options,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	statements := v1.Group("/statements")
	statements.POST("/analyze", middleware.BodyLimit(opts.MaxFileSize), statementH.Analyze)

	analyses := v1.Group("/analyses")
	analyses.GET("", statementH.List)
	analyses.GET("/export", statementH.Export)
	analyses.GET("/:id", statementH.GetByID)
	analyses.GET("/:id/export", statementH.ExportDetail)

	return r
}

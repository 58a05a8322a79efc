package routes

import (
	"github.com/osa911/folio/internal/api/middleware"
	"github.com/osa911/folio/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health, h.Version)

	// The contact form posts here
	SetupTestRoute(router, h.Contact, m)

	v1 := router.Group("/api/v1")
	SetupContactRoutes(v1, h.Contact, m)
	SetupAdminRoutes(v1, h.Admin, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts GlobalOptions) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: opts.AllowedOrigins}))
	router.Use(middleware.SecurityHeaders(opts.Production))
	router.Use(middleware.PreserveRequestBody(middleware.DefaultMaxBodySize))
	router.Use(middleware.RateLimitMiddleware(opts.GlobalRate))
}

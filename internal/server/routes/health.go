package routes

import (
	"github.com/osa911/folio/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check and version endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, version *handlers.VersionHandler) {
	router.GET("/health", health.Check)
	router.GET("/api/v1/version", version.GetVersion)
}

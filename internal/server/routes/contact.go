package routes

import (
	"github.com/osa911/folio/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	public := router.Group("/contact")
	{
		// Public endpoint, limited per client IP
		public.POST("/submit",
			m.ContactLimit.Middleware(),
			m.Validation.ValidateContactRequest(),
			contact.Submit,
		)
	}
}

// SetupTestRoute mounts the same submission endpoint at /api/test. Both
// paths share one per-client bucket.
func SetupTestRoute(router *gin.Engine, contact *handlers.ContactHandler, m *Middleware) {
	router.POST("/api/test",
		m.ContactLimit.Middleware(),
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}

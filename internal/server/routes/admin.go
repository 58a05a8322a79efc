package routes

import (
	"github.com/osa911/folio/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes configures admin routes (requires the admin bearer token)
func SetupAdminRoutes(v1Group *gin.RouterGroup, admin *handlers.AdminHandler, m *Middleware) {
	adminGroup := v1Group.Group("/admin")
	adminGroup.Use(m.Admin.RequireAdmin())

	contacts := adminGroup.Group("/contacts")
	{
		contacts.GET("", m.Validation.ValidateListContactsRequest(), admin.ListContacts)
		contacts.PATCH("/:id", m.Validation.ValidateUpdateStatusRequest(), admin.UpdateContactStatus)
	}
}

package routes

import (
	"github.com/osa911/folio/internal/api/handlers"
	"github.com/osa911/folio/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Admin   *handlers.AdminHandler
	Health  *handlers.HealthHandler
	Version *handlers.VersionHandler
}

// Middleware contains the middleware shared between route groups
type Middleware struct {
	Validation   *middleware.ValidationMiddleware
	Admin        *middleware.AdminMiddleware
	ContactLimit *middleware.ClientRateLimiter
}

// GlobalOptions configures middleware that applies to every route
type GlobalOptions struct {
	ServiceName    string
	AllowedOrigins []string
	Production     bool
	GlobalRate     middleware.RateLimitConfig
}

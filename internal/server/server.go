package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/folio/internal/api/handlers"
	"github.com/osa911/folio/internal/api/middleware"
	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/server/routes"
	"github.com/osa911/folio/internal/service"

	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
const shutdownTimeout = 15 * time.Second

// globalRate protects the whole API, well above any honest client
var globalRate = middleware.RateLimitConfig{RPS: 50, Burst: 100}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if deps.Contact == nil {
		return nil, errors.New("contact service is required")
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.RedirectTrailingSlash = false

	return &Server{
		router: router,
		cfg:    cfg,
		deps:   deps,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Init wires middleware, handlers and routes
func (s *Server) Init() error {
	routes.SetupGlobalMiddleware(s.router, s.logger, routes.GlobalOptions{
		ServiceName:    s.cfg.ServiceName,
		AllowedOrigins: s.cfg.AllowedOrigins,
		Production:     s.cfg.IsProduction(),
		GlobalRate:     globalRate,
	})

	audit := service.NewAuditService(s.logger)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(s.deps.Contact, s.deps.Recaptcha, s.cfg.RecaptchaMinScore),
		Admin:   handlers.NewAdminHandler(s.deps.Contact, audit),
		Health:  handlers.NewHealthHandler(s.deps.Contact),
		Version: handlers.NewVersionHandler(),
	}

	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(contact.NewValidator()),
		Admin:      middleware.NewAdminMiddleware(s.cfg.AdminToken, audit),
		ContactLimit: middleware.NewClientRateLimiter(middleware.RateLimitConfig{
			RPS:   s.cfg.ContactRateRPS,
			Burst: s.cfg.ContactRateBurst,
		}),
	}

	routes.Setup(s.router, h, m)
	return nil
}

// Handler returns the root handler. Trailing slashes are trimmed before
// routing so /api/test/ and /api/test match the same route.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimRight(p, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		s.router.ServeHTTP(w, r)
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

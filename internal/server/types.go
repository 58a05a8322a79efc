package server

import (
	"net/http"

	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/service"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	cfg        *config.Config
	deps       Dependencies
	logger     *logging.Logger
}

// Dependencies holds the services the routes are built on
type Dependencies struct {
	Contact   service.ContactService
	Recaptcha *service.RecaptchaService
}

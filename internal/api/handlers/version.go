package handlers

import (
	"github.com/osa911/folio/internal/utils"
	"github.com/osa911/folio/internal/version"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct{}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// GetVersion returns the build info and whether client_version is outdated
func (h *VersionHandler) GetVersion(c *gin.Context) {
	utils.HandleSuccess(c, version.ServerInfo(c.Query("client_version")))
}

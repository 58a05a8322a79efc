package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeUnavailable, "Database connection error")
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(common.StatusResponse{Status: "ok"}))
}

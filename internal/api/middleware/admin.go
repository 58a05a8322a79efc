package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards the admin API with a static bearer token
type AdminMiddleware struct {
	token string
	audit *service.AuditService
}

// NewAdminMiddleware creates a new admin middleware. An empty token
// rejects every request. audit may be nil.
func NewAdminMiddleware(token string, audit *service.AuditService) *AdminMiddleware {
	return &AdminMiddleware{token: token, audit: audit}
}

// RequireAdmin ensures the request carries "Authorization: Bearer <token>"
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := logging.GetGlobalLogger()

		if m.token == "" {
			logger.Warn("Admin access attempted but ADMIN_TOKEN is not configured")
			c.AbortWithStatusJSON(http.StatusNotFound,
				common.NewErrorResponse(common.ErrCodeNotFound, "Not found", nil))
			return
		}

		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			m.audit.LogFailedAdminAttempt(c.Request.Context(), utils.GetRealIP(c), "missing bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse(common.ErrCodeUnauthorized, "Authentication required", nil))
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(m.token)) != 1 {
			m.audit.LogFailedAdminAttempt(c.Request.Context(), utils.GetRealIP(c), "invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse(common.ErrCodeUnauthorized, "Invalid token", nil))
			return
		}

		c.Next()
	}
}

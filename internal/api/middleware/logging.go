package middleware

import (
	"time"

	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through logger. Output is gated
// by the logger's request flag (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}

package middleware

import (
	"github.com/osa911/folio/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRequestIDLength caps client supplied ids
const maxRequestIDLength = 128

// RequestID tags every request with an id, reusing a sane X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		c.Next()
	}
}

package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds request bodies. A maximal contact message is
// far below it.
const DefaultMaxBodySize int64 = 64 * 1024

// PreserveRequestBody reads the request body once and restores it so
// validators and handlers can both read it. The raw bytes are also stored
// under constants.ContextKeyRawBody.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || !hasBody(c.Request.Method) {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize+1))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Error reading request body", nil))
			return
		}

		if int64(len(bodyBytes)) > maxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Request body too large", nil))
			return
		}

		// A short body means the client lied about Content-Length
		if c.Request.ContentLength > 0 && int64(len(bodyBytes)) != c.Request.ContentLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Malformed request body", nil))
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		c.Set(constants.ContextKeyRawBody, bodyBytes)

		c.Next()
	}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

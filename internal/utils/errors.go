package utils

import (
	"errors"
	"net/http"

	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/service"

	"github.com/gin-gonic/gin"
)

// HandleAPIError is a utility function for consistent error handling across the API.
// Service sentinels are mapped to their status, everything else uses the given
// default. Error details are only exposed outside gin release mode.
func HandleAPIError(c *gin.Context, err error, defaultStatus int, defaultCode common.ErrorCode, defaultMessage string) {
	status, code, message := defaultStatus, defaultCode, defaultMessage
	switch {
	case errors.Is(err, service.ErrNotFound):
		status, code, message = http.StatusNotFound, common.ErrCodeNotFound, "Resource not found"
	case errors.Is(err, service.ErrValidation):
		status, code, message = http.StatusBadRequest, common.ErrCodeValidation, "Validation failed"
	}

	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	var errorDetails interface{}
	if err != nil && gin.Mode() != gin.ReleaseMode {
		errorDetails = err.Error()
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(code, message, errorDetails))
}

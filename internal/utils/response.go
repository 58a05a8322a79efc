package utils

import (
	"net/http"

	"github.com/osa911/folio/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends a success response with data
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

// HandleValidationError sends a 400 with per-field details
func HandleValidationError(c *gin.Context, fields []common.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.NewValidationResponse(fields))
}

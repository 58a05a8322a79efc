package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	contactdto "github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/api/validation"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware handles request validation. Validated requests are
// stored in the gin context for the handler.
type ValidationMiddleware struct {
	validator *contact.Validator
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(v *contact.Validator) *ValidationMiddleware {
	if v == nil {
		v = contact.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateContactRequest validates a contact form submission
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactdto.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortMalformed(c, err)
			return
		}

		if errs := m.validator.Validate(req.ToSubmission()); errs != nil {
			utils.HandleValidationError(c, validation.FormatFieldErrors(errs))
			return
		}

		c.Set(constants.ContextKeyContact, req)
		c.Next()
	}
}

// ValidateUpdateStatusRequest validates an admin status change
func (m *ValidationMiddleware) ValidateUpdateStatusRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactdto.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if details := validation.FormatValidationError(err); details != nil {
				utils.HandleValidationError(c, details)
				return
			}
			abortMalformed(c, err)
			return
		}

		c.Set(constants.ContextKeyUpdateStatus, req)
		c.Next()
	}
}

// ValidateListContactsRequest validates the admin list query
func (m *ValidationMiddleware) ValidateListContactsRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactdto.ListContactsRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			if details := validation.FormatValidationError(err); details != nil {
				utils.HandleValidationError(c, details)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "Invalid query parameters", nil))
			return
		}

		c.Set(constants.ContextKeyListContacts, req)
		c.Next()
	}
}

func abortMalformed(c *gin.Context, err error) {
	message := "Invalid request body"
	if errors.Is(err, io.EOF) {
		message = "Request body is required"
	}
	c.AbortWithStatusJSON(http.StatusBadRequest,
		common.NewErrorResponse(common.ErrCodeBadRequest, message, nil))
}

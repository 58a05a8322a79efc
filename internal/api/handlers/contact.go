package handlers

import (
	"net/http"

	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// SuccessMessage is returned with every accepted submission
const SuccessMessage = "Message sent successfully. I'll get back to you shortly."

type ContactHandler struct {
	contactService   service.ContactService
	recaptchaService *service.RecaptchaService
	minScore         float64
}

// NewContactHandler creates a ContactHandler. A nil or disabled recaptcha
// service skips token verification.
func NewContactHandler(contactService service.ContactService, recaptchaService *service.RecaptchaService, minScore float64) *ContactHandler {
	return &ContactHandler{
		contactService:   contactService,
		recaptchaService: recaptchaService,
		minScore:         minScore,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Set by validation middleware
	req, ok := c.MustGet(constants.ContextKeyContact).(contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	if h.recaptchaService != nil && h.recaptchaService.Enabled() {
		if req.RecaptchaToken == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				common.NewErrorResponse(common.ErrCodeBadRequest, "reCAPTCHA token is required", nil))
			return
		}
		valid, err := h.recaptchaService.VerifyToken(c.Request.Context(), req.RecaptchaToken, h.minScore)
		if err != nil || !valid {
			utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "reCAPTCHA verification failed")
			return
		}
	}

	info := &service.ContactMessageInfo{
		IPAddress: utils.GetRealIP(c),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
		RequestID: c.GetString(constants.ContextKeyRequestID),
	}

	if _, err := h.contactService.Submit(c.Request.Context(), req.ToSubmission(), info); err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to send message")
		return
	}

	utils.HandleSuccess(c, contact.ContactResponse{
		Message: SuccessMessage,
		Success: true,
	})
}

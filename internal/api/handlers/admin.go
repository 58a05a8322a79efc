package handlers

import (
	"net/http"

	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/models"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the stored contact messages
type AdminHandler struct {
	contactService service.ContactService
	audit          *service.AuditService
}

func NewAdminHandler(contactService service.ContactService, audit *service.AuditService) *AdminHandler {
	return &AdminHandler{contactService: contactService, audit: audit}
}

func (h *AdminHandler) ListContacts(c *gin.Context) {
	req, _ := c.MustGet(constants.ContextKeyListContacts).(contact.ListContactsRequest)
	opts := req.ToOptions().Normalize()

	msgs, err := h.contactService.List(c.Request.Context(), opts)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to fetch contacts")
		return
	}

	h.audit.LogContactEvent(c.Request.Context(), service.AuditEventContactsListed, "", utils.GetRealIP(c),
		map[string]interface{}{"status": opts.Status, "count": len(msgs)})

	utils.HandleSuccess(c, contact.ContactMessagesToResponse(msgs, opts))
}

func (h *AdminHandler) UpdateContactStatus(c *gin.Context) {
	req, _ := c.MustGet(constants.ContextKeyUpdateStatus).(contact.UpdateStatusRequest)

	msg, err := h.contactService.UpdateStatus(c.Request.Context(), c.Param("id"), models.ContactStatus(req.Status))
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to update contact")
		return
	}

	h.audit.LogContactEvent(c.Request.Context(), service.AuditEventContactStatusChanged, msg.ID, utils.GetRealIP(c),
		map[string]interface{}{"status": msg.Status})

	utils.HandleSuccess(c, contact.ContactMessageToResponse(msg))
}

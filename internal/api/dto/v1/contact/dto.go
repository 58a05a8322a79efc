package contact

import (
	"time"

	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/models"
)

// ContactRequest represents a contact form submission. Field rules are
// enforced by contact.Validator rather than binding tags so the server
// and the CLI report identical messages.
type ContactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptcha_token,omitempty"`
}

// ToSubmission drops transport-only fields
func (r ContactRequest) ToSubmission() contact.Submission {
	return contact.Submission{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ListContactsRequest holds the admin list query
type ListContactsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=unread read all"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// ToOptions converts the query into repository options
func (r ListContactsRequest) ToOptions() models.ContactListOptions {
	return models.ContactListOptions{
		Status: r.Status,
		Limit:  r.Limit,
		Offset: r.Offset,
	}
}

// UpdateStatusRequest changes the read state of a message
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=unread read"`
}

// ContactMessageResponse is a stored message as seen by admins
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListContactsResponse is a page of stored messages
type ListContactsResponse struct {
	Contacts []ContactMessageResponse `json:"contacts"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// ContactMessageToResponse maps a stored message to its response DTO
func ContactMessageToResponse(msg *models.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Status:    string(msg.Status),
		IPAddress: msg.IPAddress,
		UserAgent: msg.UserAgent,
		Referrer:  msg.Referrer,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

// ContactMessagesToResponse maps a page of stored messages
func ContactMessagesToResponse(msgs []*models.ContactMessage, opts models.ContactListOptions) ListContactsResponse {
	resp := ListContactsResponse{
		Contacts: make([]ContactMessageResponse, 0, len(msgs)),
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}
	for _, msg := range msgs {
		resp.Contacts = append(resp.Contacts, ContactMessageToResponse(msg))
	}
	return resp
}

package models

import "time"

// ContactStatus tracks whether a message has been handled
type ContactStatus string

const (
	ContactStatusUnread ContactStatus = "unread"
	ContactStatusRead   ContactStatus = "read"
)

// Valid reports whether s is a known status
func (s ContactStatus) Valid() bool {
	return s == ContactStatusUnread || s == ContactStatusRead
}

// ContactMessage is a stored contact form submission
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	IPAddress string        `json:"ip_address,omitempty"`
	UserAgent string        `json:"user_agent,omitempty"`
	Referrer  string        `json:"referrer,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ContactListOptions carries filter and pagination parameters for listing
// contact messages. Status "" or "all" returns every message.
type ContactListOptions struct {
	Status string
	Limit  int
	Offset int
}

// Normalize clamps the pagination values to sane bounds
func (o ContactListOptions) Normalize() ContactListOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Status == "all" {
		o.Status = ""
	}
	return o
}

package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact      = "contact"
	ContextKeyUpdateStatus = "updateStatus"
	ContextKeyListContacts = "listContacts"

	// Request context keys
	ContextKeyRequestID = "RequestID"
	ContextKeyRawBody   = "rawBody"
)

// Header names
const (
	HeaderRequestID = "X-Request-ID"
)

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osa911/folio/internal/logging"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Admin events
	AuditEventAdminAuthFailed      AuditEventType = "ADMIN_AUTH_FAILED"
	AuditEventContactStatusChanged AuditEventType = "CONTACT_STATUS_CHANGED"
	AuditEventContactsListed       AuditEventType = "CONTACTS_LISTED"
)

// AuditService records who did what through the admin API
type AuditService struct {
	logger *logging.Logger
}

// NewAuditService creates a new audit service. A nil logger uses the global one.
func NewAuditService(logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &AuditService{logger: logger}
}

// LogContactEvent logs an admin action on contact messages
func (s *AuditService) LogContactEvent(_ context.Context, eventType AuditEventType, messageID, ip string, details map[string]interface{}) {
	if s == nil {
		return
	}
	s.logger.Info("[AUDIT] %s | Message: %s | IP: %s | Details: %s",
		eventType, orDash(messageID), ip, formatDetails(details))
}

// LogFailedAdminAttempt logs a rejected admin request
func (s *AuditService) LogFailedAdminAttempt(_ context.Context, ip, reason string) {
	if s == nil {
		return
	}
	s.logger.Warn("[AUDIT] %s | IP: %s | Reason: %s", AuditEventAdminAuthFailed, ip, reason)
}

// formatDetails renders details as sorted key=value pairs
func formatDetails(details map[string]interface{}) string {
	if len(details) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

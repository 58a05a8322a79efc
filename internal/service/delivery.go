package service

import (
	"context"

	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/models"
)

// ContactMessageInfo carries request metadata about a submission
type ContactMessageInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
	RequestID string
}

// Deliverer forwards a stored contact message to someone who reads it
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, msg *models.ContactMessage, info *ContactMessageInfo) error
}

// LogDelivery writes submissions to the application log
type LogDelivery struct {
	logger *logging.Logger
}

// NewLogDelivery creates a LogDelivery
func NewLogDelivery(logger *logging.Logger) *LogDelivery {
	return &LogDelivery{logger: logger}
}

func (d *LogDelivery) Name() string { return "log" }

func (d *LogDelivery) Deliver(_ context.Context, msg *models.ContactMessage, info *ContactMessageInfo) error {
	requestID := ""
	if info != nil {
		requestID = info.RequestID
	}
	d.logger.Info("Contact message %s from %s <%s> (%d chars, request %s)",
		msg.ID, msg.Name, msg.Email, len([]rune(msg.Message)), requestID)
	return nil
}

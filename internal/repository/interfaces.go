package repository

import (
	"context"
	"errors"
	"time"

	"github.com/osa911/folio/internal/models"
)

// ErrNotFound is returned when a message does not exist
var ErrNotFound = errors.New("contact message not found")

// ContactRepository defines the persistence interface for contact messages
type ContactRepository interface {
	// Save stores a new message and fills in its ID
	Save(ctx context.Context, msg *models.ContactMessage) error
	// List returns messages newest first
	List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error)
	// UpdateStatus changes the status of a message
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error)
	// DeleteReadBefore removes read messages last updated before t and returns how many were removed
	DeleteReadBefore(ctx context.Context, t time.Time) (int64, error)
	// Ping checks that the storage is reachable
	Ping(ctx context.Context) error
}

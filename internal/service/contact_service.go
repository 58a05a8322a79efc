package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osa911/folio/internal/api/sanitization"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/models"
	"github.com/osa911/folio/internal/repository"
)

// ContactService defines the business logic for contact form submissions
type ContactService interface {
	// Submit stores a new message and forwards it to the configured deliverers
	Submit(ctx context.Context, sub contact.Submission, info *ContactMessageInfo) (*models.ContactMessage, error)
	// List returns stored messages according to opts
	List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error)
	// UpdateStatus marks a message read or unread
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error)
	// PurgeRead deletes read messages last touched before t
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
	// Ping checks the storage
	Ping(ctx context.Context) error
}

type contactService struct {
	repo       repository.ContactRepository
	deliverers []Deliverer
	validator  *contact.Validator
	logger     *logging.Logger
	now        func() time.Time
}

// NewContactService creates a ContactService backed by repo. Deliverers are
// tried in order after the message is stored.
func NewContactService(repo repository.ContactRepository, logger *logging.Logger, deliverers ...Deliverer) ContactService {
	return &contactService{
		repo:       repo,
		deliverers: deliverers,
		validator:  contact.NewValidator(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and sanitizes the submission, stores it as unread and
// delivers it. Once the message is stored, delivery failures are logged
// but do not fail the submission.
func (s *contactService) Submit(ctx context.Context, sub contact.Submission, info *ContactMessageInfo) (*models.ContactMessage, error) {
	if errs := s.validator.Validate(sub); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, &contact.ValidationError{Fields: errs})
	}

	now := s.now()
	msg := &models.ContactMessage{
		Name:      sanitization.SanitizeName(sub.Name),
		Email:     sanitization.SanitizeEmail(sub.Email),
		Message:   sanitization.SanitizeMessage(sub.Message),
		Status:    models.ContactStatusUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if info != nil {
		msg.IPAddress = info.IPAddress
		msg.UserAgent = info.UserAgent
		msg.Referrer = info.Referrer
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	for _, d := range s.deliverers {
		if err := d.Deliver(ctx, msg, info); err != nil {
			if errors.Is(err, ErrNotConfigured) {
				continue
			}
			s.logger.Error("Failed to deliver contact message %s via %s: %v", msg.ID, d.Name(), err)
		}
	}

	return msg, nil
}

func (s *contactService) List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error) {
	return s.repo.List(ctx, opts.Normalize())
}

func (s *contactService) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	msg, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("contact message %s: %w", id, ErrNotFound)
	}
	return msg, err
}

func (s *contactService) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.DeleteReadBefore(ctx, before)
}

func (s *contactService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

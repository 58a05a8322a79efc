// Package form implements the contact submission flow: validate the entered
// values, send them once, report the outcome and reset on success.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/notify"
)

// Notification texts shown during a submission
const (
	PendingMessage     = "Sending your message..."
	SuccessTitle       = "Message sent successfully!"
	SuccessDescription = "I'll get back to you as soon as possible."
	FailureTitle       = "Failed to send message."
	FailureDescription = "Please try again later."
)

// Submitter delivers a validated submission.
type Submitter interface {
	Submit(ctx context.Context, s contact.Submission) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s contact.Submission) error

func (fn SubmitterFunc) Submit(ctx context.Context, s contact.Submission) error {
	return fn(ctx, s)
}

// Form holds the field values, the per-field errors and the pending flag
// that gates resubmission. It is safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	values  contact.Submission
	errors  contact.FieldErrors
	pending bool

	validator *contact.Validator
	submitter Submitter
	notifier  notify.Notifier
	logger    *logging.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithValidator overrides the validator.
func WithValidator(v *contact.Validator) Option {
	return func(f *Form) {
		f.validator = v
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logging.Logger) Option {
	return func(f *Form) {
		f.logger = l
	}
}

// WithValues pre-fills the form.
func WithValues(s contact.Submission) Option {
	return func(f *Form) {
		f.values = s
	}
}

// New creates an empty Form.
func New(submitter Submitter, notifier notify.Notifier, opts ...Option) *Form {
	f := &Form{
		submitter: submitter,
		notifier:  notifier,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.validator == nil {
		f.validator = contact.NewValidator()
	}
	if f.notifier == nil {
		f.notifier = notify.Nop{}
	}
	if f.logger == nil {
		f.logger = logging.GetGlobalLogger()
	}
	return f
}

// Set changes the value of one field. Existing errors are kept until the
// next validation.
func (f *Form) Set(field contact.Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.values.With(field, value)
}

// SetValues replaces all field values.
func (f *Form) SetValues(s contact.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = s
}

// Values returns the current field values.
func (f *Form) Values() contact.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the current field errors, nil when there are none.
func (f *Form) Errors() contact.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors.Clone()
}

// Pending reports whether a submission is in flight.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Reset clears the values and errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = contact.Submission{}
	f.errors = nil
}

// Validate checks the current values and replaces the field errors with the result.
func (f *Form) Validate() contact.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = f.validator.Validate(f.values)
	return f.errors.Clone()
}

// Submit runs one submission attempt.
//
// It returns contact.ErrInFlight without doing anything when another attempt
// is pending, a *contact.ValidationError without touching the network when a
// field is invalid, and a *contact.SubmissionError when the request fails.
// On success the fields are cleared and nil is returned. Failures never
// retry and keep the entered values for correction.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return contact.ErrInFlight
	}

	values := f.values
	if errs := f.validator.Validate(values); errs != nil {
		f.errors = errs
		f.mu.Unlock()
		f.logger.Debug("Contact form invalid: %v", errs.Fields())
		return &contact.ValidationError{Fields: errs.Clone()}
	}

	f.errors = nil
	f.pending = true
	f.mu.Unlock()

	id, err := f.send(ctx, values)
	if err != nil {
		f.logger.Error("Failed to send message: %v", err)
		f.notifier.Failure(id, FailureTitle, FailureDescription)

		var subErr *contact.SubmissionError
		if !errors.As(err, &subErr) {
			err = &contact.SubmissionError{Reason: "submitter failed", Err: err}
		}
		return err
	}

	f.logger.Debug("Contact form submitted for %s", values.Email)
	f.notifier.Success(id, SuccessTitle, SuccessDescription)
	return nil
}

// send shows the pending toast and calls the submitter once. The pending
// flag is cleared on the way out, also when the submitter panics.
func (f *Form) send(ctx context.Context, values contact.Submission) (id notify.ID, err error) {
	returned := false
	defer func() {
		f.mu.Lock()
		f.pending = false
		if returned && err == nil {
			f.values = contact.Submission{}
			f.errors = nil
		}
		f.mu.Unlock()
	}()

	id = f.notifier.Pending(PendingMessage)
	err = f.submitter.Submit(ctx, values)
	returned = true
	return id, err
}

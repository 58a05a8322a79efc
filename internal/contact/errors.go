package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors of a submission attempt
var (
	// ErrSubmission matches every *SubmissionError via errors.Is.
	ErrSubmission = errors.New("submission failed")
	// ErrInFlight is returned when a submit is attempted while another one is pending.
	ErrInFlight = errors.New("a submission is already in flight")
)

// FieldErrors maps an offending field to its error message.
type FieldErrors map[Field]string

// Has reports whether f has an error.
func (fe FieldErrors) Has(f Field) bool {
	_, ok := fe[f]
	return ok
}

// Get returns the error message for f, or "".
func (fe FieldErrors) Get(f Field) string {
	return fe[f]
}

// Fields returns the fields with errors in display order.
func (fe FieldErrors) Fields() []Field {
	var out []Field
	for _, f := range Fields {
		if fe.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy that does not share storage with fe.
func (fe FieldErrors) Clone() FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// ValidationError is returned when one or more fields fail their rules.
// No request is made for an invalid submission.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// SubmissionError is a network or server reported failure of a valid submission.
type SubmissionError struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	Reason     string
	Err        error
}

func (e *SubmissionError) Error() string {
	msg := ErrSubmission.Error() + ": " + e.Reason
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSubmission) hold for every SubmissionError.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}

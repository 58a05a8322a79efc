// Package contact holds the contact form submission, the rules it is
// validated against and the errors a submission attempt can end in.
package contact

import "strings"

// Field names a single input of the contact form. The value matches the
// JSON key the field is serialized under.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ParseField maps a user supplied field name to a Field.
func ParseField(s string) (Field, bool) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case FieldName:
		return FieldName, true
	case FieldEmail:
		return FieldEmail, true
	case FieldMessage:
		return FieldMessage, true
	}
	return "", false
}

// Label returns the human readable name used in error messages.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	}
	return string(f)
}

// Submission is the name/email/message triple entered by a user.
type Submission struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Message string `json:"message" validate:"min=10"`
}

// Get returns the value of a single field.
func (s Submission) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldMessage:
		return s.Message
	}
	return ""
}

// With returns a copy of s with field f set to value.
func (s Submission) With(f Field, value string) Submission {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldMessage:
		s.Message = value
	}
	return s
}

// IsZero reports whether every field is empty.
func (s Submission) IsZero() bool {
	return s == Submission{}
}

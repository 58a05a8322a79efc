package contact

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// emailRegex is the address shape accepted by the form. A leading dot and
// consecutive dots are rejected separately in validateEmail.
var emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9_'+\-.]*[A-Z0-9_+-]@([A-Z0-9][A-Z0-9\-]*\.)+[A-Z]{2,}$`)

// Validator checks a Submission against the contact form rules.
// It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the contact rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterValidators(v)

	// Report JSON names so errors line up with the form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// RegisterValidators registers the custom validation tags used by Submission.
// The built-in email rule is replaced with the stricter address format the
// form has always accepted.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("email", validateEmail)
}

func validateEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if strings.HasPrefix(email, ".") || strings.Contains(email, "..") {
		return false
	}
	return emailRegex.MatchString(email)
}

// Validate returns the per-field errors for s, or nil when s is valid.
// Only the first failing rule of each field is reported.
func (v *Validator) Validate(s Submission) FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable for invalid arguments, which a Submission value never is
		return FieldErrors{FieldName: err.Error()}
	}

	errs := make(FieldErrors, len(validationErrors))
	for _, e := range validationErrors {
		field := Field(e.Field())
		if _, exists := errs[field]; exists {
			continue
		}
		errs[field] = message(field, e.Tag(), e.Param())
	}
	return errs
}

func message(field Field, tag, param string) string {
	switch tag {
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", field.Label(), param)
	default:
		return fmt.Sprintf("%s is invalid.", field.Label())
	}
}

var (
	defaultValidator     *Validator
	defaultValidatorOnce sync.Once
)

// Validate checks s with a shared Validator.
func Validate(s Submission) FieldErrors {
	defaultValidatorOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator.Validate(s)
}

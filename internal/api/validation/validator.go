package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/contact"
)

// FormatFieldErrors turns contact field errors into response details,
// ordered name, email, message
func FormatFieldErrors(fe contact.FieldErrors) []common.FieldError {
	details := make([]common.FieldError, 0, len(fe))
	for _, f := range fe.Fields() {
		details = append(details, common.FieldError{
			Field:   string(f),
			Message: fe.Get(f),
		})
	}
	return details
}

// FormatValidationError formats binding errors into response details
func FormatValidationError(err error) []common.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]common.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, common.FieldError{
			Field:   strings.ToLower(e.Field()),
			Message: tagMessage(e),
		})
	}
	return details
}

func tagMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s.", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s.", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid.", e.Field())
	}
}

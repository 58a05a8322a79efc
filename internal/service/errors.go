package service

import "errors"

// Sentinel errors for service layer
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("not configured")
	ErrDelivery      = errors.New("delivery failed")
)

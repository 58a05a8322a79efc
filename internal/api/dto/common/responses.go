package common

// APIResponse is the envelope of every JSON response the API sends.
// Exactly one of Data and Error is set.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse describes why a request failed
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// FieldError is one rejected input field in a VALIDATION_ERROR response
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StatusResponse is the body of liveness style endpoints
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorCode is the machine readable reason in ErrorResponse.Code
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeInternalServer  ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeUnavailable     ErrorCode = "SERVICE_UNAVAILABLE"
)

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewErrorResponse builds a failed envelope
func NewErrorResponse(code ErrorCode, message string, details interface{}) APIResponse {
	return APIResponse{
		Error: &ErrorResponse{
			Code:    string(code),
			Message: message,
			Details: details,
		},
	}
}

// NewValidationResponse builds the VALIDATION_ERROR envelope for fields
func NewValidationResponse(fields []FieldError) APIResponse {
	return NewErrorResponse(ErrCodeValidation, "Validation failed", fields)
}

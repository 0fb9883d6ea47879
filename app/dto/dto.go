// Package dto defines request and response shapes for the HTTP API.
package dto

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries the machine-readable error code and optional
// per-field details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// Error codes used in ErrorDetail.Code
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeDuplicate       = "DUPLICATE_IDENTITY"
	ErrCodeInvalidLogin    = "INVALID_CREDENTIALS"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
)

func NewSuccessResponse(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

func NewErrorResponse(message, code string, details any) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Error:   &ErrorDetail{Code: code, Details: details},
	}
}

// Pagination echoes the applied page window back to the client.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Count  int   `json:"count"`
	Total  int64 `json:"total,omitempty"`
}

// ListResponse wraps a page of items with its pagination.
type ListResponse struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

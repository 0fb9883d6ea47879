package businessflow

import (
	"errors"
	"fmt"

	"github.com/scoutbase/scoutbase/repository"
)

// Sentinel errors the flows return. Handlers map these to HTTP
// statuses; nothing below the handler layer knows about status codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient privileges")
	ErrUpdateFailed       = errors.New("update failed")
	ErrSessionExpired     = errors.New("session expired")
)

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrSessionExpired)
}

func IsConflict(err error) bool {
	return repository.IsDuplicateIdentity(err)
}

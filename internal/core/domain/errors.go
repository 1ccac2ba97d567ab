package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Delegated token failures that are not the caller's fault. The cause is
// wrapped alongside and logged, never shown.
var (
	ErrTokenIssue   = errors.New("failed to generate token")
	ErrTokenConsume = errors.New("failed to consume token")
)

// Resource-specific not-found errors. All of them match ErrNotFound.
var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("profile %w", ErrNotFound)
	ErrMunicipalityNotFound = fmt.Errorf("municipality %w", ErrNotFound)
	ErrDirectoryNotFound    = fmt.Errorf("directory %w", ErrNotFound)
	ErrNewsNotFound         = fmt.Errorf("news %w", ErrNotFound)
	ErrGazetteNotFound      = fmt.Errorf("gazette entry %w", ErrNotFound)
	ErrItemNotFound         = fmt.Errorf("item %w", ErrNotFound)
)

// ErrDuplicateKey is returned by repositories when a unique index rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failure of the underlying document store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCatalogNotFound is returned when a catalog is not found
	ErrCatalogNotFound = errors.New("catalog not found")

	// ErrSessionNotFound is returned when a search session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrManagerStopped is returned when a session is requested from a stopped manager
	ErrManagerStopped = errors.New("session manager stopped")
)

// CatalogNotFoundError represents a catalog not found error with context
type CatalogNotFoundError struct {
	CatalogID string
}

func (e *CatalogNotFoundError) Error() string {
	return fmt.Sprintf("catalog with ID '%s' not found", e.CatalogID)
}

func (e *CatalogNotFoundError) Is(target error) bool {
	return target == ErrCatalogNotFound
}

// NewCatalogNotFoundError creates a new CatalogNotFoundError
func NewCatalogNotFoundError(catalogID string) *CatalogNotFoundError {
	return &CatalogNotFoundError{CatalogID: catalogID}
}

// SessionNotFoundError represents a session not found error with context
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session with ID '%s' not found", e.SessionID)
}

func (e *SessionNotFoundError) Is(target error) bool {
	return target == ErrSessionNotFound
}

// NewSessionNotFoundError creates a new SessionNotFoundError
func NewSessionNotFoundError(sessionID string) *SessionNotFoundError {
	return &SessionNotFoundError{SessionID: sessionID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

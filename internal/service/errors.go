package service

import (
	"errors"
	"strings"
)

// Service-level errors mapped onto HTTP statuses by the handlers
var (
	// ErrInvalidCredentials is returned for bad email/password pairs
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive is returned when a deactivated account authenticates
	ErrUserInactive = errors.New("user account is inactive")

	// ErrTokenRevoked is returned when a blacklisted refresh token is used
	ErrTokenRevoked = errors.New("refresh token has been revoked")

	// ErrInvalidRole is returned when a role value is outside the enumerated set
	ErrInvalidRole = errors.New("Invalid role")

	// ErrSelfDelete is returned when an admin tries to delete their own account
	ErrSelfDelete = errors.New("Cannot delete your own account")
)

// ValidationError carries field-level validation failures
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

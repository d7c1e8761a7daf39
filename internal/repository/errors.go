package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an email is already taken
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateUsername is returned when a username is already taken
	ErrDuplicateUsername = errors.New("user with this username already exists")

	// ErrDuplicateToken is returned when a token hash already exists
	ErrDuplicateToken = errors.New("token with this hash already exists")

	// ErrDuplicateProfile is returned when the user already has a profile
	ErrDuplicateProfile = errors.New("profile already exists")
)

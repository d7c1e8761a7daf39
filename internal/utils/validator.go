package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// SanitizeEmail lowercases and trims an email address so lookups are
// case-insensitive
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeUsername trims a username; uniqueness checks lowercase it
func SanitizeUsername(username string) string {
	return strings.TrimSpace(username)
}

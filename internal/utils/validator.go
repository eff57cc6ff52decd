package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}._\-]{3,255}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername accepts 3 to 255 letters, digits, dots, dashes and underscores
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword only rejects passwords bcrypt cannot hash faithfully.
func ValidatePassword(password string) bool {
	return password != "" && len(password) <= 72
}

// SanitizeUsername trims surrounding whitespace
func SanitizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

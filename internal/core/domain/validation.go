package domain

import (
	"regexp"
	"time"
)

// Validation Helpers

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// IsValidUsername checks the username alphabet (alphanumeric + - _).
// Length is checked by the request validator.
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// IsValidBirthday checks that s parses as a date in the past.
func IsValidBirthday(s string) bool {
	t, ok := ParseBirthday(s)
	if !ok {
		return false
	}
	return t.Year() >= 1900 && t.Before(time.Now())
}

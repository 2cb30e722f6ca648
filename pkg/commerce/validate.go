package commerce

import (
	"regexp"
	"strings"
)

// emailRE accepts local@domain.tld: an ASCII local part of letters, digits
// and ._%+-, a dotted domain, and a final label of at least two letters.
var emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateEmail reports whether email has a well-formed address shape.
func ValidateEmail(email string) bool {
	return emailRE.MatchString(email)
}

// requireNonEmpty rejects empty or whitespace-only values.
func requireNonEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must be non-empty"}
	}
	return nil
}

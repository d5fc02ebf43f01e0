package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID in its canonical 36 character form.
func IsValidUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ExceedsLength reports whether s is longer than max runes.
func ExceedsLength(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

// IsValidPhoneNumber accepts international style numbers with optional spaces and dashes.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

var taxIDRegex = regexp.MustCompile(`^[A-Za-z0-9.\-/]{4,32}$`)

// IsValidTaxID accepts alphanumeric registration numbers with common separators.
func IsValidTaxID(taxID string) bool {
	return taxIDRegex.MatchString(taxID)
}

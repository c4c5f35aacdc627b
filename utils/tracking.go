package utils

import (
	"regexp"
	"strings"
)

// Tracking numbers are BL numbers, container numbers, or chassis
// numbers — all plain alphanumeric identifiers.
var trackingNumberPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// NormalizeTrackingNumber trims surrounding whitespace from a raw
// client-supplied tracking string.
func NormalizeTrackingNumber(raw string) string {
	return strings.TrimSpace(raw)
}

// ValidTrackingNumber reports whether s is a well-formed tracking
// number: one or more ASCII letters or digits, nothing else. The empty
// string is not valid.
func ValidTrackingNumber(s string) bool {
	return trackingNumberPattern.MatchString(s)
}

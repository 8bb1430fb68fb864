package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidatePositive reports an INVALID_CONFIG error when v is not a finite
// number greater than zero. The name is used in the message.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateMinInt reports an INVALID_CONFIG error when v is below min.
func ValidateMinInt(name string, v, min int) error {
	if v < min {
		return New(ErrCodeInvalidConfig, "%s must be at least %d, got %d", name, min, v)
	}
	return nil
}

// ValidateOneOf reports an INVALID_CONFIG error when v is not in allowed.
// The allowed values are listed in the message in the order given.
func ValidateOneOf(name, v string, allowed ...string) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	return New(ErrCodeInvalidConfig, "invalid %s: %q (must be one of: %s)", name, v, strings.Join(allowed, ", "))
}

// ValidateNodeID validates a node identifier read from an input file.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 1024 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 1024 {
		return New(ErrCodeInvalidInput, "node id too long (max 1024 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains control characters", id)
		}
	}
	return nil
}

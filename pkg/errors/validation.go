package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds intersection and road identifiers.
const maxIDLength = 256

// ValidateID validates an intersection, road or network identifier.
//
// Identifiers come from whitespace-delimited records, so they must be
// non-empty, contain no whitespace or control characters, and be at most
// 256 bytes long.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// ValidateNetworkName validates the name a road network is stored under.
// Names follow the identifier rules and additionally reject path separators
// so they can double as file names.
func ValidateNetworkName(name string) error {
	if err := ValidateID(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "network name %q cannot contain path separators", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

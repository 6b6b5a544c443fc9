package errors

import (
	"strings"
	"unicode"
)

// ValidateKitName validates a catalog entry name.
//
// Names are shown verbatim in the CLI and API, so the rules only reject
// values that would corrupt output:
//   - No empty names
//   - No control characters
//   - Maximum length of 200 characters
func ValidateKitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidCatalog, "kit name cannot be empty")
	}

	if len(name) > 200 {
		return New(ErrCodeInvalidCatalog, "kit name too long (max 200 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "kit name contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSlotName validates the name of a persistent cache slot.
// Slot names become file names and Redis keys, so they must be a single
// path segment of printable characters.
func ValidateSlotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "cache slot name cannot be empty")
	}

	const maxSlotLength = 128
	if len(name) > maxSlotLength {
		return New(ErrCodeInvalidConfig, "cache slot name too long (max %d characters)", maxSlotLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "cache slot name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidConfig, "cache slot name cannot contain path separators")
	}

	return nil
}

package errors

import (
	"strings"
	"unicode"
)

// MaxIdentifierLength bounds node IDs and topic tags.
const MaxIdentifierLength = 256

// ValidateIdentifier checks a node ID or topic tag read from an external
// document. Identifiers are otherwise opaque; the rules only keep them
// printable and bounded:
//   - No empty identifiers
//   - No control characters (including null bytes and newlines)
//   - No leading or trailing whitespace
//   - Maximum length of 256 bytes
//
// kind names the identifier in the error message, e.g. "node ID".
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(id) > MaxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, MaxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s %q contains control characters", kind, id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "%s %q has leading or trailing whitespace", kind, id)
	}
	return nil
}

// ValidatePath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

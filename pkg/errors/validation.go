package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxItemIDLength bounds item identifiers.
const MaxItemIDLength = 128

// itemIDRegex matches identifiers made of letters, digits, dot, dash,
// underscore and colon.
var itemIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateItemID validates a document item identifier.
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}
	if len(id) > MaxItemIDLength {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", MaxItemIDLength)
	}
	if !itemIDRegex.MatchString(id) {
		return New(ErrCodeInvalidItem, "invalid item id: %q", id)
	}
	return nil
}

// ValidateDimension checks that a size value is not negative.
// The name is used in the error message (e.g. "item a width").
func ValidateDimension(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidItem, "%s cannot be negative (got %d)", name, v)
	}
	return nil
}

// ValidateFilePath validates a path given on the command line or in a request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateLayoutID validates a stored layout identifier. IDs are generated by
// the store, so anything with path or query characters is rejected early.
func ValidateLayoutID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layout id cannot be empty")
	}
	if len(id) > 64 || strings.ContainsAny(id, "/\\?#%. ") {
		return New(ErrCodeInvalidInput, "invalid layout id: %q", id)
	}
	return nil
}

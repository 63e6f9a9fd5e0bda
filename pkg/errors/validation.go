package errors

import (
	"strings"
	"unicode"
)

// ValidateEntryName validates a single resource name (one path
// component) before it is used to create a real file or directory, or
// to serve content over HTTP. It rejects names that could escape the
// output directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators (the name must be a single component)
//   - No "." or ".." components
//   - Maximum length of 256 characters
func ValidateEntryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "resource name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPath, "resource name too long (max 256 characters)")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "resource name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "resource name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "resource name cannot be %q", name)
	}

	return nil
}

// ValidatePath validates a relative resource path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

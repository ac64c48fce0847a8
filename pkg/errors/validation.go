package errors

import (
	"strings"
	"unicode"
)

// maxNodeCount bounds the topology size accepted from user input. The
// augmented document grows with N and every node carries the config blob,
// so anything past this is almost certainly a typo.
const maxNodeCount = 100_000

// ValidateNodeCount checks that n can be used as a topology size.
func ValidateNodeCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "node count must not be negative, got %d", n)
	}
	if n > maxNodeCount {
		return New(ErrCodeInvalidInput, "node count too large (max %d), got %d", maxNodeCount, n)
	}
	return nil
}

// ValidateOutputPath validates a user supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}

// ValidateVersion validates a node version string. Versions end up as XML
// text and as image tags downstream, so whitespace and control characters
// are rejected.
func ValidateVersion(v string) error {
	if v == "" {
		return New(ErrCodeInvalidInput, "version cannot be empty")
	}
	for _, r := range v {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "version %q contains whitespace or control characters", v)
		}
	}
	return nil
}

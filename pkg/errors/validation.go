package errors

import (
	"strings"
	"unicode"
)

// maxPathLength bounds file paths accepted from flags and HTTP queries.
const maxPathLength = 4096

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

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

// ValidateCoordinate checks that (x, y) addresses a cell of a size×size grid.
// Grid operations themselves accept any coordinate; this is for surfaces that
// should tell the user they pointed outside the grid.
func ValidateCoordinate(x, y, size int) error {
	if x < 0 || x >= size || y < 0 || y >= size {
		return New(ErrCodeInvalidInput, "cell (%d,%d) is outside the %dx%d grid", x, y, size, size)
	}
	return nil
}

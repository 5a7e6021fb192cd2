package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetPath checks that a path is usable as a file reference.
// Returns ErrInvalidAssetPath if the path is empty or contains a null byte.
func ValidateAssetPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidAssetPath)
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("%w: %q", ErrInvalidAssetPath, path)
	}
	return nil
}

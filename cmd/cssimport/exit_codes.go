package main

import (
	"errors"
	"os"

	"github.com/alnah/go-cssimport"
	"github.com/alnah/go-cssimport/internal/config"
	"github.com/alnah/go-cssimport/internal/fileutil"
)

// Exit codes for cssimport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitCycle   = 4 // Cyclic import detected (output still written)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Cycles (exit 4)
	if errors.Is(err, cssimport.ErrCyclicImport) {
		return ExitCycle
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadStylesheet) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoStylesheets) ||
		errors.Is(err, ErrWatch) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUnknownStyle) ||
		errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) ||
		errors.Is(err, cssimport.ErrInvalidAssetPath) ||
		errors.Is(err, cssimport.ErrPassLimit) {
		return ExitUsage
	}

	return ExitGeneral
}

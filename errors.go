package cssimport

import (
	"errors"
	"fmt"

	"github.com/alnah/go-cssimport/internal/assets"
)

// Sentinel errors for library operations.
var (
	// ErrCyclicImport indicates an import chain that leads back to an asset
	// already being expanded.
	ErrCyclicImport = errors.New("cyclic import")

	// ErrPassLimit indicates an acyclic import chain nested deeper than
	// the configured pass limit.
	ErrPassLimit = errors.New("import nesting exceeds pass limit")

	// ErrUnresolvablePath indicates an import whose target was not found.
	// Only surfaced as a diagnostic; inlining continues with empty content.
	ErrUnresolvablePath = errors.New("unresolvable import path")

	// Asset loading errors.
	ErrAssetNotFound    = errors.New("asset not found")
	ErrUnreadableAsset  = errors.New("failed to read asset")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ImportError reports a hard failure while inlining one asset.
// It unwraps to the sentinel describing the failure (e.g. ErrCyclicImport).
type ImportError struct {
	Asset     string // Path of the asset being processed
	Directive string // Offending directive text
	Path      string // Path the directive resolved to
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Asset, e.Directive, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrAssetNotFound):
		return wrapError(ErrAssetNotFound, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrUnreadableAsset, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrInvalidAssetPath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}

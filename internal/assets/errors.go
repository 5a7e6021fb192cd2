package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrAssetNotFound indicates the requested file does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrInvalidAssetPath indicates the path is empty or contains a null byte.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrInvalidBasePath indicates the configured root is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPathTraversal indicates an attempt to access files outside the root.
	ErrPathTraversal = errors.New("path traversal detected")
)

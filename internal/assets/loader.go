package assets

// File is a stylesheet read from storage.
type File struct {
	Path    string // Canonical path
	Content string
}

// Loader defines the contract for reading asset files and probing for them.
// Implementations may read from disk, memory, an archive, etc.
type Loader interface {
	// Load reads the file at path (canonical or filesystem form).
	// Returns ErrAssetNotFound if the file does not exist.
	// Returns ErrInvalidAssetPath if the path is malformed.
	Load(path string) (*File, error)

	// Exists reports whether path names an existing regular file.
	Exists(path string) bool
}

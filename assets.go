package cssimport

import (
	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/assets"
)

// Registry looks up or constructs assets by resolved path.
// Implementations may cache instances; a Filter only calls ResolveOrCreate
// for paths that are not already present in the batch.
type Registry interface {
	// ResolveOrCreate returns the asset for path, constructing it on first use.
	// Returns ErrAssetNotFound if no content exists at path.
	ResolveOrCreate(path string) (*Asset, error)
}

// Probe answers file-existence questions for the path resolver.
type Probe interface {
	Exists(path string) bool
}

// FileRegistry is the default Registry. It reads stylesheets from an afero
// filesystem and hands out one *Asset per identity, so every parent that
// imports the same file shares the same instance.
//
// FileRegistry also implements Probe. It is not safe for concurrent use.
type FileRegistry struct {
	loader assets.Loader
	cache  map[string]*Asset
}

// NewFileRegistry creates a FileRegistry over fsys (nil means the OS
// filesystem). When root is set, registry-created assets get "~/"-relative
// canonical paths and "~/" references are expanded against root.
// Returns ErrInvalidAssetPath if root is set but is not a directory.
func NewFileRegistry(fsys afero.Fs, root string) (*FileRegistry, error) {
	loader, err := assets.NewFilesystemLoader(fsys, root)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &FileRegistry{
		loader: loader,
		cache:  make(map[string]*Asset),
	}, nil
}

// ResolveOrCreate returns the cached asset for path or reads it from disk.
// Failed reads are not cached.
func (r *FileRegistry) ResolveOrCreate(path string) (*Asset, error) {
	key := identity(path)
	if a, ok := r.cache[key]; ok {
		return a, nil
	}

	file, err := r.loader.Load(path)
	if err != nil {
		return nil, convertAssetError(err)
	}

	a := NewStylesheet(file.Path, file.Content)
	r.cache[key] = a
	r.cache[identity(file.Path)] = a
	return a, nil
}

// Exists reports whether path names a readable file.
func (r *FileRegistry) Exists(path string) bool {
	return r.loader.Exists(path)
}

// Compile-time interface checks.
var (
	_ Registry = (*FileRegistry)(nil)
	_ Probe    = (*FileRegistry)(nil)
)

package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// FilesystemLoader loads assets from an afero filesystem.
// Implements Loader interface.
type FilesystemLoader struct {
	fs   afero.Fs
	root string // absolute; empty when no root is configured
}

// NewFilesystemLoader creates a FilesystemLoader over fsys.
// An empty root disables "~/" expansion and containment checks.
// Returns ErrInvalidBasePath if root is set but is not a directory on fsys.
func NewFilesystemLoader(fsys afero.Fs, root string) (*FilesystemLoader, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if root == "" {
		return &FilesystemLoader{fs: fsys}, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := fsys.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absRoot)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absRoot)
	}

	return &FilesystemLoader{fs: fsys, root: absRoot}, nil
}

// Root returns the absolute root, or "" when none is configured.
func (f *FilesystemLoader) Root() string {
	return f.root
}

// Load reads a stylesheet. The returned File carries the canonical path.
func (f *FilesystemLoader) Load(path string) (*File, error) {
	if err := ValidateAssetPath(path); err != nil {
		return nil, err
	}

	filePath, err := f.expand(path)
	if err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(f.fs, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return &File{
		Path:    fileutil.CanonicalPath(f.root, path),
		Content: string(content),
	}, nil
}

// Exists reports whether path names a regular file.
// Invalid or escaping paths never exist.
func (f *FilesystemLoader) Exists(path string) bool {
	if ValidateAssetPath(path) != nil {
		return false
	}
	filePath, err := f.expand(path)
	if err != nil {
		return false
	}
	return fileutil.FileExists(f.fs, filePath)
}

// expand maps a canonical path to a filesystem path and enforces containment
// for root-relative paths.
func (f *FilesystemLoader) expand(path string) (string, error) {
	filePath := fileutil.ExpandPath(f.root, path)
	if f.root == "" || !strings.HasPrefix(filepath.ToSlash(path), fileutil.RootPrefix) {
		return filePath, nil
	}
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// verifyPathContainment ensures the resolved file path is within root.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// Add separator to prevent prefix attacks (e.g., /base/path vs /base/pathevil)
	if !strings.HasPrefix(absFilePath, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)

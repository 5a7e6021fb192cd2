package cssimport

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// newMemFs returns an in-memory filesystem holding files (path -> content).
func newMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := fsys.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
			t.Fatalf("MkdirAll(%q) error = %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fsys, path, []byte(content), fileutil.FilePermissions); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", path, err)
		}
	}
	return fsys
}

// newTestFilter builds a Filter over an empty in-memory filesystem unless
// opts provide another one.
func newTestFilter(t *testing.T, opts ...Option) *Filter {
	t.Helper()

	all := append([]Option{WithFs(afero.NewMemMapFs())}, opts...)
	f, err := New(all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

// assetPaths returns the paths of assets, in order.
func assetPaths(assets []*Asset) []string {
	paths := make([]string, 0, len(assets))
	for _, a := range assets {
		paths = append(paths, a.Path)
	}
	return paths
}

// diagnosticCodes returns the codes of a's diagnostics, in order.
func diagnosticCodes(a *Asset) []Code {
	var codes []Code
	for _, d := range a.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

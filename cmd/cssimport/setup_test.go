package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - In-memory environment
// ---------------------------------------------------------------------------

// testEnv is an Environment backed by an in-memory filesystem and buffers.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

// newTestEnv returns an environment holding files, with an empty process
// environment unless vars are set on the result.
func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   make(map[string]string),
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Fs:     fsys,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return te
}

// readFile returns the content of path or fails the test.
func (te *testEnv) readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(te.Fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

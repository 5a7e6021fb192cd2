// Package assets reads stylesheet files for the import inliner.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    └── FilesystemLoader  - reads from an afero.Fs, optionally confined to a root
//
// FilesystemLoader works on any afero.Fs: the OS filesystem in production,
// an in-memory filesystem in tests, or a read-only/base-path wrapper when
// embedding the inliner in a larger pipeline.
//
// # Canonical Paths
//
// Files are identified by their canonical path (see fileutil.CanonicalPath):
// slash-separated, cleaned, and "~/"-prefixed when they live under the
// configured root. Loading a "~/" path expands it against the root first.
//
// # Security
//
// Paths are validated before use. When a root is configured, "~/" paths
// that would escape it (e.g. "~/../secret.css") are rejected with
// ErrPathTraversal.
package assets

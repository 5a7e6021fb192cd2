// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// RootPrefix marks a canonical path relative to the project root.
const RootPrefix = "~/"

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that an extension is a bare suffix like "css" or ".css".
func ValidateExtension(extension string) error {
	if strings.TrimPrefix(extension, ".") == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// HasExtension reports whether path ends with one of extensions,
// compared case-insensitively. Extensions may be given with or without a dot.
func HasExtension(path string, extensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(strings.TrimPrefix(e, "."), ext)
	})
}

// FileExists returns true if the path exists on fsys and is a regular file.
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFile writes content to path on fsys, creating parent directories.
func WriteFile(fsys afero.Fs, path, content string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), FilePermissions); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "production" -> false (name)
//   - "./cssimport.yaml" -> true (relative path)
//   - "/etc/cssimport.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string references a remote or inline resource
// rather than a file: http(s), protocol-relative, or data: URIs.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}

// IsRooted reports whether p is absolute or expressed relative to the
// project root ("~/..."). Rooted paths are never joined onto another directory.
func IsRooted(p string) bool {
	return strings.HasPrefix(filepath.ToSlash(p), RootPrefix) || filepath.IsAbs(p)
}

// CanonicalPath converts p to the project's canonical path form:
// cleaned, slash-separated, and "~/"-prefixed when it lies under root.
// With an empty root only cleaning and slash conversion apply.
func CanonicalPath(root, p string) string {
	if p == "" {
		return ""
	}
	slashed := filepath.ToSlash(p)
	if strings.HasPrefix(slashed, RootPrefix) {
		return RootPrefix + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(slashed[len(RootPrefix):])), "./")
	}

	cleaned := filepath.Clean(p)
	if root != "" {
		absRoot, rootErr := filepath.Abs(root)
		absPath, pathErr := filepath.Abs(cleaned)
		if rootErr == nil && pathErr == nil {
			if rel, err := filepath.Rel(absRoot, absPath); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				if rel == "." {
					return RootPrefix
				}
				return RootPrefix + filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(cleaned)
}

// ExpandPath turns a canonical path back into a filesystem path by
// replacing the "~/" prefix with root. Other paths are returned cleaned.
func ExpandPath(root, p string) string {
	slashed := filepath.ToSlash(p)
	if root != "" && strings.HasPrefix(slashed, RootPrefix) {
		return filepath.Join(root, filepath.FromSlash(slashed[len(RootPrefix):]))
	}
	return filepath.Clean(filepath.FromSlash(p))
}

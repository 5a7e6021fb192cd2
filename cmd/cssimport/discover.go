package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoStylesheets    = errors.New("no stylesheets found")
	ErrInvalidExtension = errors.New("file extension is not a stylesheet extension")
)

// sourceFile is a stylesheet found on disk.
type sourceFile struct {
	Path    string // Filesystem path
	RelPath string // Path below the input argument, mirrored under --output
}

// discoverFiles finds every stylesheet named by inputs. Files are taken as
// given (their extension must be listed); directories are walked for
// matching files, skipping hidden entries. A file reached twice is listed once.
func discoverFiles(fsys afero.Fs, inputs, extensions []string) ([]sourceFile, error) {
	var files []sourceFile
	seen := make(map[string]bool)

	add := func(path, rel string) {
		key := strings.ToLower(filepath.Clean(path))
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, sourceFile{Path: filepath.Clean(path), RelPath: rel})
	}

	for _, input := range inputs {
		info, err := fsys.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.HasExtension(input, extensions) {
				return nil, fmt.Errorf("%w: %s (want %s)", ErrInvalidExtension, input, strings.Join(extensions, ", "))
			}
			add(input, filepath.Base(input))
			continue
		}

		err = afero.Walk(fsys, input, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if path != input && isHidden(path) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() || !fileutil.HasExtension(path, extensions) {
				return nil
			}
			rel, err := filepath.Rel(input, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			add(path, rel)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// isHidden reports whether the last element of path starts with a dot.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// resolveOutputPath determines where a root stylesheet is written.
// An empty outputDir means stdout and yields "". An output ending in a
// stylesheet extension is a single file.
func resolveOutputPath(src sourceFile, output string, extensions []string) string {
	if output == "" {
		return ""
	}
	if fileutil.HasExtension(output, extensions) {
		return output
	}
	return filepath.Join(output, src.RelPath)
}

// resolveInputs returns the positional inputs, or the configured default
// input directory when none are given.
func resolveInputs(args []string, defaultDir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if defaultDir != "" {
		return []string{defaultDir}, nil
	}
	return nil, ErrNoInput
}

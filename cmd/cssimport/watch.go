package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// ErrWatch is returned when the filesystem watcher cannot start or fails.
var ErrWatch = errors.New("watch failed")

// watchDebounce coalesces editor write bursts into one rebuild.
const watchDebounce = 200 * time.Millisecond

// watchAndBuild builds once, then rebuilds every time a watched stylesheet
// changes, until ctx is canceled. Input directories are watched from the
// start; directories of imported files are added after each build. Build
// errors are logged and do not stop the watcher.
func watchAndBuild(ctx context.Context, plan *buildPlan, env *Environment) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(env.Fs, plan.inputs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	watched := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("%w: watching %s: %w", ErrWatch, dir, err)
		}
		watched[dir] = true
	}

	rebuild := func() {
		result, err := plan.build(ctx, env)
		if err != nil && ctx.Err() == nil {
			plan.logger.Error("build failed", "error", err)
		}
		if result != nil {
			watchMore(watcher, watched, result.ImportDirs, plan.logger)
		}
	}
	rebuild()

	plan.logger.Info("watching for changes", "dirs", len(watched))
	fmt.Fprintln(env.Stderr, "Watching for changes. Press Ctrl+C to stop.")

	match := watchMatcher(plan.cfg.Inline.Extensions, plan.output)
	return watchLoop(ctx, watcher.Events, watcher.Errors, match, watchDebounce, rebuild, plan.logger)
}

// watchLoop runs rebuild once per burst of matching events, after delay has
// passed without a new one. It returns nil when ctx is canceled.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	match func(string) bool,
	delay time.Duration,
	rebuild func(),
	logger *slog.Logger,
) error {
	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: event channel closed", ErrWatch)
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !match(event.Name) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(delay)

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("%w: error channel closed", ErrWatch)
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			rebuild()
		}
	}
}

// dirWatcher is the part of *fsnotify.Watcher used to register directories.
type dirWatcher interface {
	Add(name string) error
}

// watchMore registers the directories of dirs not in watched yet. A
// directory that cannot be watched, such as the missing parent of an
// unresolved import, is skipped and retried after the next build.
func watchMore(w dirWatcher, watched map[string]bool, dirs []string, logger *slog.Logger) {
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			logger.Debug("import directory not watched", "dir", dir, "error", err)
			continue
		}
		watched[dir] = true
		logger.Debug("watching import directory", "dir", dir)
	}
}

// watchMatcher accepts stylesheet paths outside hidden entries and outside
// the output directory, so written outputs do not trigger a rebuild loop.
func watchMatcher(extensions []string, output string) func(string) bool {
	outDir := ""
	if output != "" && !fileutil.HasExtension(output, extensions) {
		outDir = filepath.Clean(output) + string(filepath.Separator)
	}
	return func(path string) bool {
		if isHidden(filepath.Base(path)) {
			return false
		}
		if !fileutil.HasExtension(path, extensions) {
			return false
		}
		if outDir != "" && strings.HasPrefix(filepath.Clean(path)+string(filepath.Separator), outDir) {
			return false
		}
		return true
	}
}

// watchDirs lists every non-hidden directory to watch: input directories
// recursively, and the parent directory of input files.
func watchDirs(fsys afero.Fs, inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, input := range inputs {
		info, err := fsys.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoInput, input)
		}
		if !info.IsDir() {
			add(filepath.Dir(input))
			continue
		}
		err = afero.Walk(fsys, input, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			if path != input && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

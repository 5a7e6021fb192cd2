package cssimport

import (
	"log/slog"

	"github.com/spf13/afero"
)

// DefaultMaxPasses bounds the scan passes spent on one asset. Every pass
// expands one level of nesting, so the bound caps import depth. Directives
// left when it is reached are reported as ErrPassLimit.
const DefaultMaxPasses = 64

// Option configures a Filter.
type Option func(*Filter)

// filterConfig holds internal configuration for Filter.
type filterConfig struct {
	fs          afero.Fs
	root        string
	maxPasses   int
	keepRemote  bool
	rewriteURLs bool
}

// WithFs sets the filesystem used to probe and read imported files.
// Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(f *Filter) {
		f.cfg.fs = fsys
	}
}

// WithRoot sets the project root. Files under it are identified by
// "~/"-relative canonical paths, and "~/" imports resolve against it.
func WithRoot(root string) Option {
	return func(f *Filter) {
		f.cfg.root = root
	}
}

// WithRegistry replaces the default file-backed registry.
// If r also implements Probe it is used for existence checks too,
// unless WithProbe is given.
func WithRegistry(r Registry) Option {
	return func(f *Filter) {
		f.registry = r
	}
}

// WithProbe replaces the file-existence probe used by path resolution.
func WithProbe(p Probe) Option {
	return func(f *Filter) {
		f.probe = p
	}
}

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMaxPasses sets the per-asset scan pass limit.
// Panics if n <= 0 (programmer error, similar to time.NewTicker).
func WithMaxPasses(n int) Option {
	if n <= 0 {
		panic("cssimport: WithMaxPasses must be positive")
	}
	return func(f *Filter) {
		f.cfg.maxPasses = n
	}
}

// WithKeepRemote leaves http(s), protocol-relative and data: imports in
// place instead of dropping them with a warning.
func WithKeepRemote(keep bool) Option {
	return func(f *Filter) {
		f.cfg.keepRemote = keep
	}
}

// WithRewriteURLs rebases relative url(...) references in imported content
// onto the importing asset's directory.
func WithRewriteURLs(rewrite bool) Option {
	return func(f *Filter) {
		f.cfg.rewriteURLs = rewrite
	}
}

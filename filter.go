package cssimport

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alnah/go-cssimport/internal/directive"
)

// filterName is reported by Filter.Name.
const filterName = "CSS import fix"

// Filter inlines @import directives across a batch of stylesheet assets.
type Filter struct {
	cfg      filterConfig
	scanner  directive.Scanner
	registry Registry
	probe    Probe
	logger   *slog.Logger
}

// New creates a Filter. Use options to customize behavior.
// Returns ErrInvalidAssetPath if WithRoot names something that is not a directory.
func New(opts ...Option) (*Filter, error) {
	f := &Filter{
		cfg:     filterConfig{maxPasses: DefaultMaxPasses},
		scanner: directive.NewRegexpScanner(),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.probe == nil {
		if p, ok := f.registry.(Probe); ok {
			f.probe = p
		}
	}

	// Validate the root once so Apply never fails on configuration.
	if f.registry == nil || f.probe == nil {
		if _, err := NewFileRegistry(f.cfg.fs, f.cfg.root); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Name returns the filter's display name.
func (f *Filter) Name() string {
	return filterName
}

// Apply inlines every asset of the batch and removes absorbed assets.
//
// Empty batches and batches whose first asset is not a stylesheet are
// returned unchanged. Otherwise the result is always a list: cyclic imports
// are reported through the returned error (an errors.Join of *ImportError)
// while the remaining assets are still processed. Unresolvable imports are
// attached to the owning asset as warnings. A canceled context stops
// processing and returns the input slice with ctx.Err().
func (f *Filter) Apply(ctx context.Context, batch []*Asset) ([]*Asset, error) {
	if len(batch) == 0 || batch[0] == nil || batch[0].Kind != KindStylesheet {
		return batch, nil
	}

	registry, probe, err := f.collaborators()
	if err != nil {
		return batch, err
	}

	working := newWorkingSet(batch)
	in := &inliner{
		scanner:     f.scanner,
		resolver:    &pathResolver{exists: func(p string) bool { return working.has(p) || probe.Exists(p) }},
		registry:    registry,
		working:     working,
		logger:      f.logger,
		root:        f.cfg.root,
		maxPasses:   f.cfg.maxPasses,
		keepRemote:  f.cfg.keepRemote,
		rewriteURLs: f.cfg.rewriteURLs,
	}

	var errs []error
	for _, a := range batch {
		if a == nil {
			continue
		}
		if err := in.inline(ctx, a); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return batch, ctxErr
			}
			errs = append(errs, err)
		}
	}

	out := flatten(batch, working.all())
	f.logger.Debug("flattened batch", "input", len(batch), "output", len(out))
	return out, errors.Join(errs...)
}

// collaborators returns the registry and probe for one Apply call.
// The default registry is fresh per call so edits between runs are seen.
func (f *Filter) collaborators() (Registry, Probe, error) {
	registry, probe := f.registry, f.probe
	if registry != nil && probe != nil {
		return registry, probe, nil
	}

	files, err := NewFileRegistry(f.cfg.fs, f.cfg.root)
	if err != nil {
		return nil, nil, err
	}
	if registry == nil {
		registry = files
	}
	if probe == nil {
		probe = files
	}
	return registry, probe, nil
}

// workingSet indexes the batch plus every asset created while inlining it.
type workingSet struct {
	byKey  map[string]*Asset
	assets []*Asset
}

func newWorkingSet(batch []*Asset) *workingSet {
	w := &workingSet{byKey: make(map[string]*Asset, len(batch))}
	for _, a := range batch {
		if a != nil {
			w.add(a)
		}
	}
	return w
}

// add registers a. The first asset seen for an identity wins lookups.
func (w *workingSet) add(a *Asset) {
	w.assets = append(w.assets, a)
	key := identity(a.Path)
	if _, ok := w.byKey[key]; !ok {
		w.byKey[key] = a
	}
}

func (w *workingSet) lookup(path string) *Asset {
	return w.byKey[identity(path)]
}

func (w *workingSet) has(path string) bool {
	_, ok := w.byKey[identity(path)]
	return ok
}

func (w *workingSet) all() []*Asset {
	return w.assets
}

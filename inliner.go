package cssimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alnah/go-cssimport/internal/directive"
	"github.com/alnah/go-cssimport/internal/fileutil"
	"github.com/alnah/go-cssimport/internal/pipeline"
)

// inliner expands the directives of one asset at a time.
//
// Each asset goes through two states: SCANNING, where every pass scans the
// current content and splices every directive found, and DONE, reached
// when a pass finds nothing. Spliced content is re-scanned by the next
// pass, which gives transitive inlining without recursion.
type inliner struct {
	scanner     directive.Scanner
	resolver    *pathResolver
	registry    Registry
	working     *workingSet
	logger      *slog.Logger
	root        string
	maxPasses   int
	keepRemote  bool
	rewriteURLs bool
}

// splice records content pulled into the owner during one pass.
type splice struct {
	key     string
	content string
}

// inline runs the scan/resolve/splice loop on owner until no directive is
// left. Cycles are replaced by a placeholder comment and returned as
// *ImportError values joined together; inlining of the asset goes on.
func (in *inliner) inline(ctx context.Context, owner *Asset) error {
	ownerKey := identity(owner.Path)
	// ancestry maps a spliced asset to the assets its content was nested in.
	ancestry := make(map[string]map[string]struct{})

	var (
		prev []splice
		errs []error
	)
	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		matches := in.pending(owner.Content)
		if len(matches) == 0 {
			in.logger.Debug("asset done", "asset", owner.Path, "passes", pass, "included", len(owner.Included))
			return errors.Join(errs...)
		}

		// Replacement text per distinct directive. Identical directives are
		// resolved once and every occurrence gets the same text.
		repl := make(map[string]string, len(matches))

		if pass >= in.maxPasses {
			for _, m := range matches {
				if _, done := repl[m.Text]; done {
					continue
				}
				switch {
				case fileutil.IsURL(m.Path):
					repl[m.Text] = in.dropRemote(owner, m)
				case strings.TrimSpace(m.Path) == "":
					repl[m.Text] = in.dropEmpty(owner, m)
				default:
					repl[m.Text] = nestingPlaceholder(m.Path)
					errs = append(errs, in.tooDeep(owner, m))
				}
			}
			owner.Content = replaceSpans(owner.Content, matches, repl)
			return errors.Join(errs...)
		}

		var next []splice
		for _, m := range matches {
			if _, done := repl[m.Text]; done {
				continue
			}
			if fileutil.IsURL(m.Path) {
				repl[m.Text] = in.dropRemote(owner, m)
				continue
			}
			if strings.TrimSpace(m.Path) == "" {
				repl[m.Text] = in.dropEmpty(owner, m)
				continue
			}

			chain := chainOf(m.Text, ownerKey, prev, ancestry)
			res := in.resolver.resolve(m.Path, owner)
			target := in.target(owner, m, res)
			key := identity(target.Path)

			if _, nested := chain[key]; nested {
				repl[m.Text] = placeholder(m.Path)
				errs = append(errs, in.cyclic(owner, m, target.Path, "import chain leads back to "+target.Path))
				continue
			}
			if in.closesCycle(owner, target) {
				repl[m.Text] = placeholder(m.Path)
				errs = append(errs, in.cyclic(owner, m, target.Path, target.Path+" already includes "+owner.Path))
				continue
			}

			owner.include(target)
			merge(ancestry, key, chain)

			content := in.spliceContent(owner, target, m)
			repl[m.Text] = content
			next = append(next, splice{key: key, content: content})

			in.logger.Debug("import inlined",
				"asset", owner.Path,
				"directive", m.Text,
				"target", target.Path,
				"step", res.Step.String(),
				"pass", pass)
		}
		owner.Content = replaceSpans(owner.Content, matches, repl)
		prev = next
	}
}

// replaceSpans rebuilds content with every match replaced by repl[m.Text].
// Matches must be ordered and non-overlapping, as a scan yields them.
func replaceSpans(content string, matches []directive.Match, repl map[string]string) string {
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m.Offset])
		b.WriteString(repl[m.Text])
		last = m.Offset + len(m.Text)
	}
	b.WriteString(content[last:])
	return b.String()
}

// pending returns the directives still to expand in content, in order of
// appearance. Remote imports are left out when they are kept in place.
func (in *inliner) pending(content string) []directive.Match {
	var matches []directive.Match
	for m := range in.scanner.Scan(content) {
		if in.keepRemote && fileutil.IsURL(m.Path) {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

// target returns the asset a resolved directive points to, taking it from
// the working set or asking the registry to construct it. It never fails:
// missing files become empty assets and a warning on owner.
func (in *inliner) target(owner *Asset, m directive.Match, res resolution) *Asset {
	if a := in.working.lookup(res.Path); a != nil {
		return a
	}
	canonical := fileutil.CanonicalPath(in.root, res.Path)
	if a := in.working.lookup(canonical); a != nil {
		return a
	}

	a, err := in.registry.ResolveOrCreate(canonical)
	if err != nil {
		d := Diagnostic{
			Severity:  SeverityWarning,
			Code:      CodeUnresolvablePath,
			Directive: m.Text,
			Path:      canonical,
			Message:   fmt.Sprintf("%v: %q not found, inlined as empty", ErrUnresolvablePath, m.Path),
		}
		if res.Found {
			d.Code = CodeUnreadableAsset
			d.Message = fmt.Sprintf("%v, inlined as empty", err)
		}
		in.warn(owner, d)
		// Not added to the working set: the next directive naming the
		// same path must be diagnosed again.
		return &Asset{Path: canonical, Kind: owner.Kind}
	}
	if existing := in.working.lookup(a.Path); existing != nil {
		return existing
	}
	in.working.add(a)
	return a
}

// closesCycle reports whether including target in owner would make the
// included relation cyclic, i.e. owner is reachable from target.
func (in *inliner) closesCycle(owner, target *Asset) bool {
	ownerKey := identity(owner.Path)
	visited := make(map[string]struct{})
	stack := []*Asset{target}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := identity(n.Path)
		if key == ownerKey {
			return true
		}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}
		stack = pushReversed(stack, n.Included)
	}
	return false
}

// spliceContent returns the text that replaces directive m to target:
// the target's content, rebased when URL rewriting is on, and wrapped in
// the blocks the directive's layer, supports and media conditions stand for.
func (in *inliner) spliceContent(owner, target *Asset, m directive.Match) string {
	content := target.Content
	if in.rewriteURLs {
		content = pipeline.RewriteRelativeURLs(content, filepath.Dir(target.Path), filepath.Dir(owner.Path))
	}
	if m.Conditions == "" {
		return content
	}
	return directive.ParseConditions(m.Conditions).Wrap(content)
}

// cyclic records a cyclic directive on owner. The caller replaces it with
// placeholder(m.Path).
func (in *inliner) cyclic(owner *Asset, m directive.Match, path, msg string) error {
	owner.addDiagnostic(Diagnostic{
		Severity:  SeverityError,
		Code:      CodeCyclicImport,
		Directive: m.Text,
		Path:      path,
		Message:   msg,
	})
	in.logger.Error("cyclic import", "asset", owner.Path, "directive", m.Text, "detail", msg)
	return &ImportError{Asset: owner.Path, Directive: m.Text, Path: m.Path, Err: ErrCyclicImport}
}

// tooDeep records a directive still unexpanded when the pass limit is hit.
func (in *inliner) tooDeep(owner *Asset, m directive.Match) error {
	msg := fmt.Sprintf("import still expanding after %d passes", in.maxPasses)
	owner.addDiagnostic(Diagnostic{
		Severity:  SeverityError,
		Code:      CodePassLimit,
		Directive: m.Text,
		Path:      m.Path,
		Message:   msg,
	})
	in.logger.Error("pass limit reached", "asset", owner.Path, "directive", m.Text, "max_passes", in.maxPasses)
	return &ImportError{Asset: owner.Path, Directive: m.Text, Path: m.Path, Err: ErrPassLimit}
}

// dropRemote records a remote import that cannot be inlined and returns
// its replacement.
func (in *inliner) dropRemote(owner *Asset, m directive.Match) string {
	in.warn(owner, Diagnostic{
		Severity:  SeverityWarning,
		Code:      CodeRemoteImport,
		Directive: m.Text,
		Path:      m.Path,
		Message:   "remote import dropped",
	})
	return ""
}

// dropEmpty records an import with no path and returns its replacement.
func (in *inliner) dropEmpty(owner *Asset, m directive.Match) string {
	in.warn(owner, Diagnostic{
		Severity:  SeverityWarning,
		Code:      CodeUnresolvablePath,
		Directive: m.Text,
		Message:   fmt.Sprintf("%v: empty path, inlined as empty", ErrUnresolvablePath),
	})
	return ""
}

func (in *inliner) warn(owner *Asset, d Diagnostic) {
	owner.addDiagnostic(d)
	in.logger.Warn(d.Message, "asset", owner.Path, "code", string(d.Code), "path", d.Path)
}

// placeholder is the comment left where a cyclic directive was.
// It must not itself look like a directive.
func placeholder(ref string) string {
	return fmt.Sprintf("/* cssimport: cyclic import of %q skipped */", commentSafe(ref))
}

// nestingPlaceholder is the comment left where the pass limit stopped
// expansion.
func nestingPlaceholder(ref string) string {
	return fmt.Sprintf("/* cssimport: import of %q skipped, nested too deeply */", commentSafe(ref))
}

func commentSafe(ref string) string {
	return strings.ReplaceAll(ref, "*/", "* /")
}

// chainOf returns the identities a directive is nested in: the owner, the
// assets spliced in the previous pass whose content holds the directive,
// and everything those were nested in.
func chainOf(text, ownerKey string, prev []splice, ancestry map[string]map[string]struct{}) map[string]struct{} {
	chain := map[string]struct{}{ownerKey: {}}
	for _, s := range prev {
		if !strings.Contains(s.content, text) {
			continue
		}
		chain[s.key] = struct{}{}
		for k := range ancestry[s.key] {
			chain[k] = struct{}{}
		}
	}
	return chain
}

// merge adds chain to the ancestry of key.
func merge(ancestry map[string]map[string]struct{}, key string, chain map[string]struct{}) {
	set, ok := ancestry[key]
	if !ok {
		set = make(map[string]struct{}, len(chain))
		ancestry[key] = set
	}
	for k := range chain {
		set[k] = struct{}{}
	}
}

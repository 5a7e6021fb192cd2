package cssimport

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// resolveStep records which rule produced a resolution.
type resolveStep int

const (
	stepAsGiven  resolveStep = iota // reference exists as written
	stepOwnerDir                    // relative to the owning asset's directory
	stepIncluded                    // relative to an already-included asset
	stepFallback                    // nothing exists; owner-directory guess
)

func (s resolveStep) String() string {
	switch s {
	case stepAsGiven:
		return "as-given"
	case stepOwnerDir:
		return "owner-dir"
	case stepIncluded:
		return "included"
	default:
		return "fallback"
	}
}

// resolution is the outcome of resolving one import reference.
// Path is always set; Found is false for fallback guesses.
type resolution struct {
	Path  string
	Found bool
	Step  resolveStep
}

// pathResolver maps import references to asset paths.
type pathResolver struct {
	exists func(path string) bool
}

// resolve finds the file ref points to, trying in order: ref as given,
// ref next to owner, and ref next to every asset owner has absorbed
// (transitively, depth-first in inclusion order). It never fails: when
// nothing exists it returns the owner-directory guess with Found unset.
//
// The search over absorbed assets uses an explicit stack and a visited set,
// so cyclic or self-referential include graphs terminate.
func (r *pathResolver) resolve(ref string, owner *Asset) resolution {
	ref = strings.TrimSpace(ref)
	if r.exists(ref) {
		return resolution{Path: ref, Found: true, Step: stepAsGiven}
	}

	guess := joinDir(owner.Path, ref)
	if r.exists(guess) {
		return resolution{Path: guess, Found: true, Step: stepOwnerDir}
	}

	visited := map[string]struct{}{identity(owner.Path): {}}
	stack := pushReversed(nil, owner.Included)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := identity(n.Path)
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		if candidate := joinDir(n.Path, ref); r.exists(candidate) {
			return resolution{Path: candidate, Found: true, Step: stepIncluded}
		}
		stack = pushReversed(stack, n.Included)
	}

	return resolution{Path: guess, Found: false, Step: stepFallback}
}

// pushReversed pushes assets so that the first one is popped first.
func pushReversed(stack, assets []*Asset) []*Asset {
	for _, a := range slices.Backward(assets) {
		if a != nil {
			stack = append(stack, a)
		}
	}
	return stack
}

// joinDir resolves ref against the directory containing assetPath.
// Rooted references ("/..." or "~/...") are returned unchanged.
func joinDir(assetPath, ref string) string {
	if fileutil.IsRooted(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(assetPath), ref)
}

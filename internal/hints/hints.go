// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"runtime"
	"strings"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// IsLinux reports whether inotify limits apply. Replaced in tests.
var IsLinux = func() bool {
	return runtime.GOOS == "linux"
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "/go-cssimport/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnresolvedImport returns hints for an import whose file was not found.
// ref is the path as written in the directive.
func ForUnresolvedImport(ref string, rootSet bool) string {
	switch {
	case strings.TrimSpace(ref) == "":
		return format("the import path is empty: name a file or remove the directive")
	case strings.HasPrefix(ref, fileutil.RootPrefix) && !rootSet:
		return format("\"~/\" imports need a project root: use --root or inline.root")
	case fileutil.IsURL(ref):
		return format("use --keep-remote to leave remote imports in place")
	default:
		return format("relative imports resolve from the importing file's directory")
	}
}

// ForCyclicImport returns hints for import cycles.
func ForCyclicImport() string {
	return formatHints([]string{
		"move the shared rules into a file both stylesheets import",
		"the cycle was replaced by a comment in the output",
	})
}

// ForPassLimit returns hints for imports nested deeper than the pass limit.
func ForPassLimit() string {
	return formatHints([]string{
		"raise --max-passes or inline.maxPasses",
		"the remaining imports were replaced by a comment in the output",
	})
}

// ForWatch returns hints for watcher setup errors.
func ForWatch() string {
	if IsLinux() {
		return format("raise fs.inotify.max_user_watches or watch fewer directories")
	}
	return format("watch fewer directories")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
)

// urlPattern matches url(...) tokens, capturing an optional leading
// "@import" so import directives can be left alone.
var urlPattern = regexp.MustCompile(`(?i)(@import\s*)?url\(\s*(["']?)([^"')]*)(["']?)\s*\)`)

// RewriteRelativeURLs rebases relative url(...) references in CSS content
// that was written relative to fromDir so they stay valid from toDir.
// If either directory is empty, or both are the same, content is returned
// unchanged.
//
// Rewrites:
//   - url(img/a.png), url("img/a.png"), url('img/a.png')
//
// Does NOT rewrite:
//   - @import url(...) (resolved by the inliner, not the browser)
//   - URLs, data: URIs, fragments (#id), absolute or "~/" paths
func RewriteRelativeURLs(content, fromDir, toDir string) string {
	if fromDir == "" || toDir == "" {
		return content
	}
	from := filepath.Clean(fromDir)
	to := filepath.Clean(toDir)
	if from == to {
		return content
	}

	rel, err := filepath.Rel(to, from)
	if err != nil {
		return content
	}

	return urlPattern.ReplaceAllStringFunc(content, func(token string) string {
		groups := urlPattern.FindStringSubmatch(token)
		if groups[1] != "" {
			return token
		}

		quote, ref := groups[2], strings.TrimSpace(groups[3])
		if !isRelativePath(ref) {
			return token
		}

		rebased := filepath.ToSlash(filepath.Join(rel, filepath.FromSlash(ref)))
		return "url(" + quote + rebased + quote + ")"
	})
}

// isRelativePath returns true if the reference should be rebased.
func isRelativePath(ref string) bool {
	if ref == "" {
		return false
	}

	lower := strings.ToLower(ref)

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//") {
		return false
	}

	// Skip fragment references such as url(#clip)
	if strings.HasPrefix(ref, "#") {
		return false
	}

	// Skip absolute and root-relative paths
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "~/") || filepath.IsAbs(ref) {
		return false
	}

	return true
}

package cssimport

import (
	"strings"

	"github.com/alnah/go-cssimport/internal/fileutil"
)

// Kind tags the type of content an asset holds.
type Kind int

// Asset kinds. Only KindStylesheet batches are inlined.
const (
	KindOther Kind = iota
	KindStylesheet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStylesheet:
		return "stylesheet"
	default:
		return "other"
	}
}

// Asset is a text asset flowing through the pipeline.
//
// Path is the asset's identity and is compared case-insensitively.
// Content is owned by the asset and rewritten in place while inlining.
// Included lists the assets whose content was spliced into this one; an
// asset may be included by several parents.
type Asset struct {
	Path        string
	Content     string
	Kind        Kind
	Included    []*Asset
	Diagnostics []Diagnostic
}

// NewStylesheet creates a stylesheet asset with the given path and content.
func NewStylesheet(path, content string) *Asset {
	return &Asset{Path: path, Content: content, Kind: KindStylesheet}
}

// Includes reports whether other is in the included set, by identity.
func (a *Asset) Includes(other *Asset) bool {
	if other == nil {
		return false
	}
	key := identity(other.Path)
	for _, inc := range a.Included {
		if identity(inc.Path) == key {
			return true
		}
	}
	return false
}

// HasErrors reports whether any error-severity diagnostic is attached.
func (a *Asset) HasErrors() bool {
	for _, d := range a.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// include adds other to the included set. Re-adding is a no-op.
func (a *Asset) include(other *Asset) {
	if a.Includes(other) {
		return
	}
	a.Included = append(a.Included, other)
}

// addDiagnostic attaches d unless an identical diagnostic is already present.
func (a *Asset) addDiagnostic(d Diagnostic) {
	for _, existing := range a.Diagnostics {
		if existing == d {
			return
		}
	}
	a.Diagnostics = append(a.Diagnostics, d)
}

// identity returns the comparison key for an asset path:
// cleaned, slash-separated and lower-cased.
func identity(path string) string {
	return strings.ToLower(fileutil.CanonicalPath("", path))
}

// SameAsset reports whether two paths denote the same asset identity.
func SameAsset(a, b string) bool {
	return identity(a) == identity(b)
}

package cssimport

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable problem; output is still produced.
	SeverityWarning Severity = iota
	// SeverityError marks a failure for the asset, reported to the caller.
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Code identifies the kind of problem a diagnostic describes.
type Code string

// Diagnostic codes.
const (
	CodeUnresolvablePath Code = "unresolvable-path"
	CodeUnreadableAsset  Code = "unreadable-asset"
	CodeRemoteImport     Code = "remote-import"
	CodeCyclicImport     Code = "cyclic-import"
	CodePassLimit        Code = "pass-limit"
)

// Diagnostic is a problem found while inlining an asset.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Directive string // Directive text as found in the content
	Path      string // Referenced or resolved path
	Message   string
}

// String formats the diagnostic for logs and reports.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Path, d.Message)
}

package directive

import (
	"iter"
	"regexp"
)

// Match is a single @import occurrence in a piece of content.
type Match struct {
	Text       string // Whole directive as it appears in the content
	Path       string // Referenced path, unquoted; may be empty
	Conditions string // Layer, supports and media list after the path, if any
	Offset     int    // Byte offset of Text in the scanned content
}

// Scanner finds import directives in content.
// Implementations must be pure: the same content always yields the same
// matches, in left-to-right order.
type Scanner interface {
	Scan(content string) iter.Seq[Match]
}

// importPattern matches the directive forms listed in the package doc.
// Groups 1-6 hold the path of exactly one form; group 7 holds the
// condition list. Quoted and url() paths run to their closing delimiter,
// so data: URIs keep their ";". A condition list is only taken when a ";"
// ends it, so a directive without a semicolon never swallows what follows.
var importPattern = regexp.MustCompile(`(?i)@import\s*` +
	`(?:url\(\s*(?:"([^"]*)"|'([^']*)'|([^)"'\s]*))\s*\)` +
	`|"([^"]*)"|'([^']*)'|([^\s;"'(){}]+))` +
	`(?:\s*([^;{}@]*?)\s*;)?`)

// pathGroups is the number of alternative path groups in importPattern.
const pathGroups = 6

// RegexpScanner is the default Scanner backed by a compiled regular expression.
type RegexpScanner struct {
	re *regexp.Regexp
}

// NewRegexpScanner returns a scanner using the built-in import pattern.
func NewRegexpScanner() *RegexpScanner {
	return &RegexpScanner{re: importPattern}
}

// Scan lazily yields every directive in content.
// Iteration stops early if the consumer breaks out of the range loop.
func (s *RegexpScanner) Scan(content string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		offset := 0
		for offset < len(content) {
			loc := s.re.FindStringSubmatchIndex(content[offset:])
			if loc == nil {
				return
			}
			m := Match{
				Text:   content[offset+loc[0] : offset+loc[1]],
				Offset: offset + loc[0],
			}
			for g := 1; g <= pathGroups; g++ {
				if loc[2*g] >= 0 {
					m.Path = content[offset+loc[2*g] : offset+loc[2*g+1]]
					break
				}
			}
			if c := 2 * (pathGroups + 1); loc[c] >= 0 {
				m.Conditions = content[offset+loc[c] : offset+loc[c+1]]
			}
			if !yield(m) {
				return
			}
			offset += loc[1]
		}
	}
}

// Collect drains a scan into a slice.
func Collect(seq iter.Seq[Match]) []Match {
	var matches []Match
	for m := range seq {
		matches = append(matches, m)
	}
	return matches
}

// Compile-time interface check.
var _ Scanner = (*RegexpScanner)(nil)

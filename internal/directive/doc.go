// Package directive extracts @import directives from stylesheet text.
//
// The scanner is a tolerant pattern matcher, not a CSS parser. It accepts the
// forms seen in the wild:
//
//	@import "path";
//	@import 'path';
//	@import url(path);
//	@import url("path")
//	@import "path" layer(base) supports(display: grid) print;
//
// Matching is case-insensitive and the trailing semicolon is optional.
// A condition list after the path is only recognized when a semicolon ends
// the directive; ParseConditions splits it and Conditions.Wrap turns it
// into the equivalent @layer, @supports and @media blocks.
//
// Callers depend on the Scanner interface so a stricter parser can replace
// RegexpScanner without touching the inlining loop.
package directive

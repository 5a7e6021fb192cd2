// Package pipeline holds content transforms applied while splicing
// imported stylesheets into their importer.
//
// Directive extraction lives in package directive; this package only
// rewrites content that is about to be spliced.
package pipeline

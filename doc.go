// Package cssimport inlines CSS @import directives across a batch of
// stylesheets and removes the stylesheets that were absorbed.
//
// # Quick Start
//
// Create a filter and apply it to a batch:
//
//	f, err := cssimport.New(cssimport.WithRoot("web"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := f.Apply(ctx, []*cssimport.Asset{
//	    cssimport.NewStylesheet("~/css/site.css", `@import "base.css"; .site{}`),
//	    cssimport.NewStylesheet("~/css/base.css", "body{margin:0}"),
//	})
//
// out holds only site.css, whose content now starts with base.css's rules.
//
// # Processing
//
// Every asset of the batch goes through the same loop:
//
//  1. Scan the current content for @import directives
//  2. Resolve each referenced path (as given, next to the importing asset,
//     then next to every asset already inlined into it)
//  3. Take the target from the batch or load it through the Registry
//  4. Replace the directive with the target's content, wrapped in
//     @layer, @supports and @media blocks when the directive carries
//     those conditions
//
// The loop repeats until a scan finds nothing, so imports pulled in by a
// splice are expanded on the next pass. Finally, assets included by any
// other asset are dropped from the result.
//
// # Diagnostics
//
// Processing never stops on a missing file. Unresolvable imports are
// replaced with empty content and recorded on the asset as warning
// Diagnostics. Cyclic imports are replaced by a comment, recorded as error
// Diagnostics, and reported by Apply as *ImportError values that match
// ErrCyclicImport with errors.Is. Imports still pending after the pass
// limit (WithMaxPasses) are handled the same way but match ErrPassLimit.
//
// # Configuration
//
// Use functional options to customize the filter:
//
//	f, err := cssimport.New(
//	    cssimport.WithFs(afero.NewMemMapFs()),
//	    cssimport.WithLogger(slog.Default()),
//	    cssimport.WithKeepRemote(true),
//	    cssimport.WithRewriteURLs(true),
//	)
//
// A custom Registry or Probe replaces the default afero-backed FileRegistry.
package cssimport

package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// errUsage marks flag parsing failures.
var errUsage = errors.New("invalid usage")

// defaultHighlightStyle is the chroma style used by --highlight.
const defaultHighlightStyle = "monokai"

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inlineFlags holds flags controlling import inlining.
type inlineFlags struct {
	root        string
	maxPasses   int
	keepRemote  bool
	rewriteURLs bool
	extensions  []string
}

// outputFlags holds flags controlling where and how results are written.
type outputFlags struct {
	output    string
	highlight bool
	style     string
	report    bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	inline inlineFlags
	output outputFlags
	watch  bool

	// changed records flags set explicitly on the command line, so zero
	// values never override the config file.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

// addInlineFlags adds inlining flags to a FlagSet.
func addInlineFlags(fs *flag.FlagSet, f *inlineFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "project root for \"~/\" imports")
	fs.IntVar(&f.maxPasses, "max-passes", 0, "per-stylesheet pass limit (0 = default)")
	fs.BoolVar(&f.keepRemote, "keep-remote", false, "leave http(s) and data: imports in place")
	fs.BoolVar(&f.rewriteURLs, "rewrite-urls", false, "rebase url(...) references in imported files")
	fs.StringSliceVarP(&f.extensions, "ext", "e", nil, "stylesheet extensions for directory inputs (default: css)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout)")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight stylesheets written to stdout")
	fs.StringVar(&f.style, "highlight-style", defaultHighlightStyle, "chroma style for --highlight")
	fs.BoolVar(&f.report, "report", false, "print a diagnostics report to stderr")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &buildFlags{changed: make(map[string]bool)}

	addCommonFlags(fs, &f.common)
	addInlineFlags(fs, &f.inline)
	addOutputFlags(fs, &f.output)
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when input stylesheets change")

	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", errUsage)
	}
	if f.inline.maxPasses < 0 {
		return nil, nil, fmt.Errorf("%w: --max-passes must be >= 0, got %d", errUsage, f.inline.maxPasses)
	}

	return f, fs.Args(), nil
}

// parseConfigFlags parses flags for the config command.
func parseConfigFlags(args []string, stderr io.Writer) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &commonFlags{}
	addCommonFlags(fs, f)
	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: config takes no arguments, got %q", errUsage, fs.Args())
	}
	return f, nil
}

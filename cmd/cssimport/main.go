// Command cssimport inlines CSS @import directives and writes the
// flattened stylesheets.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-cssimport"
	"github.com/alnah/go-cssimport/internal/config"
	"github.com/alnah/go-cssimport/internal/fileutil"
	"github.com/alnah/go-cssimport/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain runs the CLI and maps the outcome to an exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := run(ctx, args, env)
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// run dispatches to the command named by args[1].
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: no command given", errUsage)
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "build":
		return runBuild(ctx, rest, env)
	case "config":
		return runConfig(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "cssimport %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(rest, env)
	}

	// "cssimport site.css" is shorthand for "cssimport build site.css".
	if fileutil.HasExtension(cmd, config.DefaultConfig().Inline.Extensions) {
		return runBuild(ctx, args[1:], env)
	}

	printUsage(env.Stderr)
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, cssimport.ErrCyclicImport):
		return hints.ForCyclicImport()
	case errors.Is(err, cssimport.ErrPassLimit):
		return hints.ForPassLimit()
	case errors.Is(err, ErrWatch):
		return hints.ForWatch()
	default:
		return ""
	}
}

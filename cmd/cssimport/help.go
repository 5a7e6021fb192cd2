package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssimport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Inline @import directives and write flattened stylesheets")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cssimport help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssimport build [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inline @import directives across stylesheets. Stylesheets imported by")
	fmt.Fprintln(w, "another input are absorbed and not written on their own.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Stylesheet files or directories (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -e, --ext <list>          Extensions for directory inputs (default: css)")
	fmt.Fprintln(w, "  -w, --watch               Rebuild when inputs change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inlining:")
	fmt.Fprintln(w, "  -r, --root <dir>          Project root for \"~/\" imports")
	fmt.Fprintln(w, "      --max-passes <n>      Per-stylesheet pass limit (0 = default)")
	fmt.Fprintln(w, "      --keep-remote         Leave http(s) and data: imports in place")
	fmt.Fprintln(w, "      --rewrite-urls        Rebase url(...) references in imported files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight stdout output")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style (default: monokai)")
	fmt.Fprintln(w, "      --report              Print a diagnostics report")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CSSIMPORT_CONFIG, CSSIMPORT_INPUT_DIR, CSSIMPORT_OUTPUT_DIR, CSSIMPORT_ROOT,")
	fmt.Fprintln(w, "  CSSIMPORT_MAX_PASSES, CSSIMPORT_KEEP_REMOTE, CSSIMPORT_REWRITE_URLS,")
	fmt.Fprintln(w, "  CSSIMPORT_LOG_LEVEL, CSSIMPORT_LOG_FORMAT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general error, 2 usage or config, 3 I/O, 4 cyclic import")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cssimport config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the config file and")
	fmt.Fprintln(w, "CSSIMPORT_* environment variables.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cssimport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cssimport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

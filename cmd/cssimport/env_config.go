package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-cssimport/internal/config"
)

// envPrefix starts every environment variable the CLI reads.
const envPrefix = "CSSIMPORT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // CSSIMPORT_CONFIG: config file name or path
	InputDir    string // CSSIMPORT_INPUT_DIR: default input directory
	OutputDir   string // CSSIMPORT_OUTPUT_DIR: default output directory
	Root        string // CSSIMPORT_ROOT: project root for "~/" imports
	MaxPasses   int    // CSSIMPORT_MAX_PASSES: per-asset pass limit
	KeepRemote  *bool  // CSSIMPORT_KEEP_REMOTE: leave remote imports in place
	RewriteURLs *bool  // CSSIMPORT_REWRITE_URLS: rebase url(...) references
	LogLevel    string // CSSIMPORT_LOG_LEVEL: debug, info, warn, error
	LogFormat   string // CSSIMPORT_LOG_FORMAT: text, json, logfmt
}

// knownEnvVars lists valid CSSIMPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CSSIMPORT_CONFIG":       true,
	"CSSIMPORT_INPUT_DIR":    true,
	"CSSIMPORT_OUTPUT_DIR":   true,
	"CSSIMPORT_ROOT":         true,
	"CSSIMPORT_MAX_PASSES":   true,
	"CSSIMPORT_KEEP_REMOTE":  true,
	"CSSIMPORT_REWRITE_URLS": true,
	"CSSIMPORT_LOG_LEVEL":    true,
	"CSSIMPORT_LOG_FORMAT":   true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("CSSIMPORT_CONFIG"),
		InputDir:   getenv("CSSIMPORT_INPUT_DIR"),
		OutputDir:  getenv("CSSIMPORT_OUTPUT_DIR"),
		Root:       getenv("CSSIMPORT_ROOT"),
		LogLevel:   getenv("CSSIMPORT_LOG_LEVEL"),
		LogFormat:  getenv("CSSIMPORT_LOG_FORMAT"),
	}

	if passes := getenv("CSSIMPORT_MAX_PASSES"); passes != "" {
		if n, err := strconv.Atoi(passes); err == nil && n > 0 {
			cfg.MaxPasses = n
		}
	}
	cfg.KeepRemote = parseEnvBool(getenv("CSSIMPORT_KEEP_REMOTE"))
	cfg.RewriteURLs = parseEnvBool(getenv("CSSIMPORT_REWRITE_URLS"))

	return cfg
}

// parseEnvBool returns nil for unset or unparsable values.
func parseEnvBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized CSSIMPORT_* variables.
// Helps catch typos like CSSIMPORT_OUTPUT instead of CSSIMPORT_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Root != "" {
		cfg.Inline.Root = env.Root
	}
	if env.MaxPasses != 0 {
		cfg.Inline.MaxPasses = env.MaxPasses
	}
	if env.KeepRemote != nil {
		cfg.Inline.KeepRemote = *env.KeepRemote
	}
	if env.RewriteURLs != nil {
		cfg.Inline.RewriteURLs = *env.RewriteURLs
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}

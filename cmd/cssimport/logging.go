package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-cssimport/internal/config"
)

// newLogger builds the CLI logger. --verbose and --quiet override the
// configured level.
func newLogger(w io.Writer, cfg config.LogConfig, flags commonFlags) *slog.Logger {
	level := log.WarnLevel
	if cfg.Level != "" {
		if parsed, err := log.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}
	switch {
	case flags.verbose:
		level = log.DebugLevel
	case flags.quiet:
		level = log.ErrorLevel
	}

	formatter := log.TextFormatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: formatter,
		Prefix:    "cssimport",
	})
	return slog.New(handler)
}

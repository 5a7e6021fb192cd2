package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-cssimport/internal/config"
)

// mapGetenv returns a getenv backed by vars.
func mapGetenv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"CSSIMPORT_CONFIG":       "/etc/cssimport.yaml",
			"CSSIMPORT_INPUT_DIR":    "styles",
			"CSSIMPORT_OUTPUT_DIR":   "dist",
			"CSSIMPORT_ROOT":         "/srv/web",
			"CSSIMPORT_MAX_PASSES":   "8",
			"CSSIMPORT_KEEP_REMOTE":  "true",
			"CSSIMPORT_REWRITE_URLS": "0",
			"CSSIMPORT_LOG_LEVEL":    "debug",
			"CSSIMPORT_LOG_FORMAT":   "json",
		}))

		if cfg.ConfigPath != "/etc/cssimport.yaml" {
			t.Errorf("ConfigPath = %q, want /etc/cssimport.yaml", cfg.ConfigPath)
		}
		if cfg.InputDir != "styles" || cfg.OutputDir != "dist" {
			t.Errorf("InputDir, OutputDir = %q, %q, want styles, dist", cfg.InputDir, cfg.OutputDir)
		}
		if cfg.Root != "/srv/web" {
			t.Errorf("Root = %q, want /srv/web", cfg.Root)
		}
		if cfg.MaxPasses != 8 {
			t.Errorf("MaxPasses = %d, want 8", cfg.MaxPasses)
		}
		if cfg.KeepRemote == nil || !*cfg.KeepRemote {
			t.Errorf("KeepRemote = %v, want true", cfg.KeepRemote)
		}
		if cfg.RewriteURLs == nil || *cfg.RewriteURLs {
			t.Errorf("RewriteURLs = %v, want false", cfg.RewriteURLs)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("LogLevel, LogFormat = %q, %q, want debug, json", cfg.LogLevel, cfg.LogFormat)
		}
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"CSSIMPORT_MAX_PASSES":  "-3",
			"CSSIMPORT_KEEP_REMOTE": "maybe",
		}))

		if cfg.MaxPasses != 0 {
			t.Errorf("MaxPasses = %d, want 0", cfg.MaxPasses)
		}
		if cfg.KeepRemote != nil {
			t.Errorf("KeepRemote = %v, want nil", *cfg.KeepRemote)
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(nil))
		if cfg.KeepRemote != nil || cfg.RewriteURLs != nil || cfg.MaxPasses != 0 {
			t.Errorf("loadEnvConfig(empty) = %+v, want zero values", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set variables override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Inline.Root = "/from/file"
		cfg.Inline.KeepRemote = true

		keep := false
		applyEnvConfig(&envConfig{Root: "/from/env", KeepRemote: &keep, MaxPasses: 5, LogFormat: "logfmt"}, cfg)

		if cfg.Inline.Root != "/from/env" {
			t.Errorf("Root = %q, want /from/env", cfg.Inline.Root)
		}
		if cfg.Inline.KeepRemote {
			t.Error("KeepRemote = true, want false")
		}
		if cfg.Inline.MaxPasses != 5 {
			t.Errorf("MaxPasses = %d, want 5", cfg.Inline.MaxPasses)
		}
		if cfg.Log.Format != "logfmt" {
			t.Errorf("Log.Format = %q, want logfmt", cfg.Log.Format)
		}
	})

	t.Run("unset variables keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "dist"
		cfg.Inline.RewriteURLs = true

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Output.DefaultDir != "dist" {
			t.Errorf("Output.DefaultDir = %q, want dist", cfg.Output.DefaultDir)
		}
		if !cfg.Inline.RewriteURLs {
			t.Error("RewriteURLs = false, want true")
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"CSSIMPORT_ROOT=/web",
		"CSSIMPORT_OUTPUT=dist",
		"HOME=/home/user",
	})

	got := buf.String()
	if !strings.Contains(got, "CSSIMPORT_OUTPUT ") {
		t.Errorf("expected warning for CSSIMPORT_OUTPUT, got %q", got)
	}
	if strings.Contains(got, "CSSIMPORT_ROOT") {
		t.Errorf("known variable should not warn, got %q", got)
	}
	if strings.Contains(got, "HOME") {
		t.Errorf("unrelated variable should not warn, got %q", got)
	}
}

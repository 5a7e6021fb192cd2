package main

// Notes:
// - runMain: we run whole commands against an in-memory filesystem and check
//   exit codes, stdout, stderr and written files.
// - watch mode is covered through watchLoop in watch_test.go; a real
//   fsnotify watcher needs an OS filesystem.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// runCLI runs cssimport with args against te and returns the exit code.
func runCLI(t *testing.T, te *testEnv, args ...string) int {
	t.Helper()
	return runMain(context.Background(), append([]string{"cssimport"}, args...), te.Environment)
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - Inlining through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	t.Run("directory to stdout", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/site/css/main.css": "@import \"base.css\";\n.main{}",
			"/site/css/base.css": "body{}",
		})

		if code := runCLI(t, te, "build", "/site/css"); code != ExitSuccess {
			t.Fatalf("exit = %d, want %d; stderr:\n%s", code, ExitSuccess, te.stderr)
		}
		if got, want := te.stdout.String(), "body{}\n.main{}\n"; got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("several roots get headers", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/in/x.css": "x{}",
			"/in/y.css": "y{}\n",
		})

		if code := runCLI(t, te, "build", "/in"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		want := "/* /in/x.css */\nx{}\n/* /in/y.css */\ny{}\n"
		if got := te.stdout.String(); got != want {
			t.Errorf("stdout = %q, want %q", got, want)
		}
	})

	t.Run("output directory mirrors layout", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/src/app.css":        `@import "parts/nav.css"; .app{}`,
			"/src/parts/nav.css":  "nav{}",
			"/src/admin/main.css": `@import url("../parts/nav.css"); .admin{}`,
		})

		if code := runCLI(t, te, "build", "-o", "/dist", "/src"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if got := te.readFile(t, "/dist/app.css"); got != "nav{} .app{}\n" {
			t.Errorf("app.css = %q", got)
		}
		if got := te.readFile(t, "/dist/admin/main.css"); got != "nav{} .admin{}\n" {
			t.Errorf("admin/main.css = %q", got)
		}
		if exists, _ := afero.Exists(te.Fs, "/dist/parts/nav.css"); exists {
			t.Error("absorbed nav.css should not be written")
		}
		if !strings.Contains(te.stdout.String(), "Created /dist/app.css") {
			t.Errorf("stdout = %q, want Created lines", te.stdout)
		}
	})

	t.Run("quiet suppresses created lines", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{"/in/a.css": "a{}"})

		if code := runCLI(t, te, "build", "-q", "-o", "/out/bundle.css", "/in/a.css"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if te.stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", te.stdout)
		}
		if got := te.readFile(t, "/out/bundle.css"); got != "a{}\n" {
			t.Errorf("bundle.css = %q", got)
		}
	})

	t.Run("project root", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/web/css/site.css": `@import "~/lib/base.css"; .site{}`,
			"/web/lib/base.css": "b{}",
		})

		if code := runCLI(t, te, "build", "--root", "/web", "/web/css/site.css"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if got := te.stdout.String(); got != "b{} .site{}\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("missing import warns and succeeds", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{"/in/a.css": `@import "gone.css"; a{}`})

		if code := runCLI(t, te, "build", "--report", "/in/a.css"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if got := te.stdout.String(); got != " a{}\n" {
			t.Errorf("stdout = %q", got)
		}
		if !strings.Contains(te.stderr.String(), "unresolvable-path") {
			t.Errorf("stderr should report the unresolved import:\n%s", te.stderr)
		}
	})

	t.Run("cycle writes output and exits 4", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/c/a.css": `@import "b.css"; .a{}`,
			"/c/b.css": `@import "a.css"; .b{}`,
		})

		if code := runCLI(t, te, "build", "-o", "/out", "/c"); code != ExitCycle {
			t.Fatalf("exit = %d, want %d; stderr:\n%s", code, ExitCycle, te.stderr)
		}
		got := te.readFile(t, "/out/a.css")
		for _, want := range []string{"cssimport: cyclic import", ".b{}", ".a{}"} {
			if !strings.Contains(got, want) {
				t.Errorf("a.css = %q, want it to contain %q", got, want)
			}
		}
		if exists, _ := afero.Exists(te.Fs, "/out/b.css"); exists {
			t.Error("b.css is absorbed by a.css and should not be written")
		}
		if !strings.Contains(te.stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint:\n%s", te.stderr)
		}
	})

	t.Run("pass limit writes output and exits 2", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/d/a.css":     `@import "lib/b.css"; .a{}`,
			"/d/lib/b.css": `@import "c.css"; .b{}`,
			"/d/lib/c.css": ".c{}",
		})

		if code := runCLI(t, te, "build", "--max-passes", "1", "/d/a.css"); code != ExitUsage {
			t.Fatalf("exit = %d, want %d; stderr:\n%s", code, ExitUsage, te.stderr)
		}
		if got := te.stdout.String(); !strings.Contains(got, "nested too deeply") || strings.Contains(got, "cyclic") {
			t.Errorf("stdout = %q, want a pass limit comment", got)
		}
		if !strings.Contains(te.stderr.String(), "--max-passes") {
			t.Errorf("stderr should carry the pass limit hint:\n%s", te.stderr)
		}
	})

	t.Run("stylesheet shorthand", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{"/in/a.css": "a{}"})

		if code := runCLI(t, te, "/in/a.css"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if got := te.stdout.String(); got != "a{}\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("highlight", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{"/in/a.css": "a{color:red}"})

		if code := runCLI(t, te, "build", "--highlight", "/in/a.css"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if !strings.Contains(te.stdout.String(), "\x1b[") {
			t.Errorf("stdout = %q, want ANSI escapes", te.stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Config - Config file and environment
// ---------------------------------------------------------------------------

func TestRunMain_Config(t *testing.T) {
	t.Parallel()

	t.Run("config file supplies input and output", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/proj/cssimport.yaml": "input:\n  defaultDir: /proj/styles\noutput:\n  defaultDir: /proj/dist\n",
			"/proj/styles/a.css":   "a{}",
		})

		if code := runCLI(t, te, "build", "-c", "/proj/cssimport.yaml"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if got := te.readFile(t, "/proj/dist/a.css"); got != "a{}\n" {
			t.Errorf("a.css = %q", got)
		}
	})

	t.Run("env overrides config and flags override env", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{
			"/cfg.yaml":  "output:\n  defaultDir: /from-config\n",
			"/in/a.css": "a{}",
		})
		te.vars["CSSIMPORT_CONFIG"] = "/cfg.yaml"
		te.vars["CSSIMPORT_OUTPUT_DIR"] = "/from-env"

		if code := runCLI(t, te, "build", "/in"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if exists, _ := afero.Exists(te.Fs, "/from-env/a.css"); !exists {
			t.Error("env output directory not used")
		}

		if code := runCLI(t, te, "build", "-o", "/from-flag", "/in"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		if exists, _ := afero.Exists(te.Fs, "/from-flag/a.css"); !exists {
			t.Error("flag output directory not used")
		}
		if exists, _ := afero.Exists(te.Fs, "/from-config/a.css"); exists {
			t.Error("config output directory should be overridden")
		}
	})

	t.Run("config command prints effective config", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, map[string]string{"/cfg.yaml": "inline:\n  root: /web\n"})
		te.vars["CSSIMPORT_MAX_PASSES"] = "9"

		if code := runCLI(t, te, "config", "-c", "/cfg.yaml"); code != ExitSuccess {
			t.Fatalf("exit = %d; stderr:\n%s", code, te.stderr)
		}
		got := te.stdout.String()
		for _, want := range []string{"root: /web", "maxPasses: 9", "- css", "level: warn"} {
			if !strings.Contains(got, want) {
				t.Errorf("config output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("unknown env var warns", func(t *testing.T) {
		t.Parallel()
		te := newTestEnv(t, nil)
		te.vars["CSSIMPORT_OUTPT_DIR"] = "/x"

		runCLI(t, te, "config")
		if !strings.Contains(te.stderr.String(), "CSSIMPORT_OUTPT_DIR") {
			t.Errorf("stderr = %q, want typo warning", te.stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes for failures
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		args       []string
		want       int
		wantStderr string
	}{
		{"no command", nil, nil, ExitUsage, "Usage:"},
		{"unknown command", nil, []string{"frobnicate"}, ExitUsage, "unknown command"},
		{"help", nil, []string{"help"}, ExitSuccess, ""},
		{"help unknown", nil, []string{"help", "frobnicate"}, ExitUsage, "unknown command"},
		{"build help flag", nil, []string{"build", "--help"}, ExitSuccess, ""},
		{"no input", nil, []string{"build"}, ExitUsage, "no input"},
		{"empty directory", map[string]string{"/in/readme.md": ""}, []string{"build", "/in"}, ExitIO, "no stylesheets"},
		{"missing config", nil, []string{"build", "-c", "team", "/in"}, ExitUsage, "hint:"},
		{"bad config", map[string]string{"/c.yaml": "inline:\n  maxPasses: 5000\n"}, []string{"build", "-c", "/c.yaml", "/in"}, ExitUsage, "maxPasses"},
		{"unknown config key", map[string]string{"/c.yaml": "nope: 1\n"}, []string{"config", "-c", "/c.yaml"}, ExitUsage, "parse"},
		{"bad extension flag", map[string]string{"/in/a.css": ""}, []string{"build", "-e", "a/b", "/in"}, ExitUsage, "inline.extensions"},
		{"file with foreign extension", map[string]string{"/in/a.txt": ""}, []string{"build", "/in/a.txt"}, ExitUsage, "stylesheet extension"},
		{"several roots into one file", map[string]string{"/in/a.css": "", "/in/b.css": ""}, []string{"build", "-o", "/out.css", "/in"}, ExitUsage, "use a directory"},
		{"unknown highlight style", map[string]string{"/in/a.css": ""}, []string{"build", "--highlight", "--highlight-style", "nope", "/in"}, ExitUsage, "unknown highlight style"},
		{"quiet and verbose", nil, []string{"build", "-q", "-v", "/in"}, ExitUsage, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := newTestEnv(t, tt.files)

			if code := runCLI(t, te, tt.args...); code != tt.want {
				t.Errorf("exit = %d, want %d; stderr:\n%s", code, tt.want, te.stderr)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", te.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Version
// ---------------------------------------------------------------------------

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil)
	if code := runCLI(t, te, "version"); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if got := te.stdout.String(); got != "cssimport "+Version+"\n" {
		t.Errorf("stdout = %q", got)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport"
	"github.com/alnah/go-cssimport/internal/config"
	"github.com/alnah/go-cssimport/internal/fileutil"
)

// Sentinel errors for build operations.
var (
	ErrReadStylesheet = errors.New("failed to read stylesheet")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrUnknownCommand = errors.New("unknown command")
)

// buildPlan is everything one build needs, resolved once and reused by
// every rebuild in watch mode.
type buildPlan struct {
	cfg    *config.Config
	flags  *buildFlags
	inputs []string
	output string
	filter *cssimport.Filter
	logger *slog.Logger
}

// buildResult summarizes one build.
type buildResult struct {
	Inputs   int      // Stylesheets read
	Roots    int      // Stylesheets left after flattening
	Written  []string // Output files (empty when writing to stdout)
	Warnings int
	Errors   int

	// ImportDirs holds the directories of every file pulled in by an
	// import. Watch mode watches them next to the input directories.
	ImportDirs []string
}

// runBuild orchestrates the build command.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if len(cfg.Inline.Extensions) == 0 {
		cfg.Inline.Extensions = config.DefaultConfig().Inline.Extensions
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := newBuildPlan(positional, flags, cfg, env)
	if err != nil {
		return err
	}

	if flags.watch {
		return watchAndBuild(ctx, plan, env)
	}

	_, err = plan.build(ctx, env)
	return err
}

// loadConfig returns defaults, overlaid with the config file (named by the
// flag or CSSIMPORT_CONFIG) and then with CSSIMPORT_* variables.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfigFs(env.Fs, name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Explicitly set flags override
// config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.changed["root"] {
		cfg.Inline.Root = flags.inline.root
	}
	if flags.changed["max-passes"] {
		cfg.Inline.MaxPasses = flags.inline.maxPasses
	}
	if flags.changed["keep-remote"] {
		cfg.Inline.KeepRemote = flags.inline.keepRemote
	}
	if flags.changed["rewrite-urls"] {
		cfg.Inline.RewriteURLs = flags.inline.rewriteURLs
	}
	if flags.changed["ext"] {
		cfg.Inline.Extensions = flags.inline.extensions
	}
	if flags.changed["output"] {
		cfg.Output.DefaultDir = flags.output.output
	}
}

// newBuildPlan resolves inputs and constructs the filter.
func newBuildPlan(args []string, flags *buildFlags, cfg *config.Config, env *Environment) (*buildPlan, error) {
	inputs, err := resolveInputs(args, cfg.Input.DefaultDir)
	if err != nil {
		return nil, err
	}

	logger := newLogger(env.Stderr, cfg.Log, flags.common)

	opts := []cssimport.Option{
		cssimport.WithFs(env.Fs),
		cssimport.WithLogger(logger),
		cssimport.WithKeepRemote(cfg.Inline.KeepRemote),
		cssimport.WithRewriteURLs(cfg.Inline.RewriteURLs),
	}
	if cfg.Inline.Root != "" {
		opts = append(opts, cssimport.WithRoot(cfg.Inline.Root))
	}
	if cfg.Inline.MaxPasses > 0 {
		opts = append(opts, cssimport.WithMaxPasses(cfg.Inline.MaxPasses))
	}

	filter, err := cssimport.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring root %q: %w", cfg.Inline.Root, err)
	}

	return &buildPlan{
		cfg:    cfg,
		flags:  flags,
		inputs: inputs,
		output: cfg.Output.DefaultDir,
		filter: filter,
		logger: logger,
	}, nil
}

// build reads every input stylesheet, inlines the batch and writes the
// remaining roots. Cyclic imports do not stop the build: outputs are
// written and the cycle is returned afterwards.
func (p *buildPlan) build(ctx context.Context, env *Environment) (*buildResult, error) {
	start := env.Now()
	extensions := p.cfg.Inline.Extensions
	files, err := discoverFiles(env.Fs, p.inputs, extensions)
	if err != nil {
		return nil, fmt.Errorf("discovering stylesheets: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoStylesheets, strings.Join(p.inputs, ", "))
	}

	batch := make([]*cssimport.Asset, 0, len(files))
	sources := make(map[*cssimport.Asset]sourceFile, len(files))
	for _, f := range files {
		content, err := afero.ReadFile(env.Fs, f.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadStylesheet, f.Path, err)
		}
		a := cssimport.NewStylesheet(p.assetPath(f.Path), string(content))
		batch = append(batch, a)
		sources[a] = f
	}

	roots, applyErr := p.filter.Apply(ctx, batch)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	if p.output != "" && len(roots) > 1 && fileutil.HasExtension(p.output, extensions) {
		return nil, fmt.Errorf("%w: --output %s is a file but %d stylesheets remain; use a directory",
			errUsage, p.output, len(roots))
	}

	result := &buildResult{
		Inputs:     len(batch),
		Roots:      len(roots),
		ImportDirs: importDirs(batch, p.cfg.Inline.Root),
	}
	for _, a := range roots {
		if err := p.write(a, sources[a], len(roots) > 1, env, result); err != nil {
			return result, err
		}
	}

	for _, a := range batch {
		for _, d := range a.Diagnostics {
			if d.Severity == cssimport.SeverityError {
				result.Errors++
			} else {
				result.Warnings++
			}
		}
	}

	if p.flags.output.report {
		printReport(env.Stderr, batch, p.cfg.Inline.Root != "")
	}

	p.logger.Info("build finished",
		"inputs", result.Inputs,
		"outputs", result.Roots,
		"absorbed", result.Inputs-result.Roots,
		"warnings", result.Warnings,
		"errors", result.Errors,
		"elapsed", env.Now().Sub(start))

	return result, applyErr
}

// importDirs lists, once each, the filesystem directories of the assets
// included into any asset of batch. Missing imports count too, so creating
// the file later triggers a rebuild.
func importDirs(batch []*cssimport.Asset, root string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, a := range batch {
		if a == nil {
			continue
		}
		for _, inc := range a.Included {
			dir := filepath.Dir(fileutil.ExpandPath(root, inc.Path))
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// assetPath is the asset identity for a file: "~/"-relative under the
// configured root, cleaned otherwise.
func (p *buildPlan) assetPath(path string) string {
	if p.cfg.Inline.Root != "" {
		return fileutil.CanonicalPath(p.cfg.Inline.Root, path)
	}
	return filepath.Clean(path)
}

// write emits one root stylesheet to its output file or stdout.
func (p *buildPlan) write(a *cssimport.Asset, src sourceFile, many bool, env *Environment, result *buildResult) error {
	content := a.Content
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	outPath := resolveOutputPath(src, p.output, p.cfg.Inline.Extensions)
	if outPath == "" {
		if many {
			fmt.Fprintf(env.Stdout, "/* %s */\n", a.Path)
		}
		if p.flags.output.highlight {
			if err := highlightCSS(env.Stdout, content, p.flags.output.style); err != nil {
				return fmt.Errorf("highlighting %s: %w", a.Path, err)
			}
			return nil
		}
		_, err := fmt.Fprint(env.Stdout, content)
		return err
	}

	if err := fileutil.WriteFile(env.Fs, outPath, content); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	result.Written = append(result.Written, outPath)

	if !p.flags.common.quiet {
		if p.flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d imports)\n", src.Path, outPath, len(a.Included))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/alnah/go-cssimport/internal/fileutil"
	"github.com/alnah/go-cssimport/internal/yamlutil"
)

// AppDir is the directory name used under the user config directory.
const AppDir = "go-cssimport"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits for config values.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxMaxPasses      = 1024 // Nesting deeper than this is never legitimate
	MaxExtensions     = 16
	MaxExtensionChars = 16
)

// Config holds all configuration for a build.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Inline InlineConfig `yaml:"inline"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout)
}

// InlineConfig defines import inlining options.
type InlineConfig struct {
	Root        string   `yaml:"root"`        // Project root for "~/" paths (empty = none)
	MaxPasses   int      `yaml:"maxPasses"`   // 0 = library default
	KeepRemote  bool     `yaml:"keepRemote"`  // Leave http(s) and data: imports in place
	RewriteURLs bool     `yaml:"rewriteURLs"` // Rebase url(...) in imported content
	Extensions  []string `yaml:"extensions"`  // Stylesheet extensions for directory inputs
}

// LogConfig defines CLI logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error" (default: "warn")
	Format string `yaml:"format"` // "text", "json", "logfmt" (default: "text")
}

// Validate checks every field. Called automatically by LoadConfig, but
// available for callers who construct Config manually.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"input.defaultDir":  c.Input.DefaultDir,
		"output.defaultDir": c.Output.DefaultDir,
		"inline.root":       c.Inline.Root,
	} {
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Inline.MaxPasses < 0 || c.Inline.MaxPasses > MaxMaxPasses {
		return fmt.Errorf("%w: inline.maxPasses must be between 0 and %d, got %d",
			ErrInvalidValue, MaxMaxPasses, c.Inline.MaxPasses)
	}

	if len(c.Inline.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: inline.extensions has %d entries (max %d)",
			ErrInvalidValue, len(c.Inline.Extensions), MaxExtensions)
	}
	for i, ext := range c.Inline.Extensions {
		field := fmt.Sprintf("inline.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionChars); err != nil {
			return err
		}
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}
	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "text", "json", "logfmt":
			// valid
		default:
			return fmt.Errorf("%w: log.format %q (must be text, json, or logfmt)", ErrInvalidValue, c.Log.Format)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Inline: InlineConfig{Extensions: []string{"css"}},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name on the
// OS filesystem. See LoadConfigFs.
func LoadConfig(nameOrPath string) (*Config, error) {
	return LoadConfigFs(afero.NewOsFs(), nameOrPath)
}

// LoadConfigFs loads configuration from fsys.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Missing fields keep their DefaultConfig values. Returns an error if the
// file is not found (no silent fallback).
func LoadConfigFs(fsys afero.Fs, nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(fsys, nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := afero.ReadFile(fsys, configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, in the same layout LoadConfig reads.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-cssimport/
func resolveConfigPath(fsys afero.Fs, name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(fsys, localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(fsys, userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Name: name, Tried: triedPaths}
}

// NotFoundError lists the locations searched for a named config.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// Package configloader resolves the srcfix configuration. It discovers the
// user and project files, layers them with .env and SRCFIX_* variables and
// CLI flags, infers import settings from tsconfig.json and validates the
// result.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/yaklabco/srcfix/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool
	IgnoreDotEnv        bool

	// IgnoreTSConfig disables alias inference from tsconfig.json.
	IgnoreTSConfig bool

	// Env looks up environment variables. Defaults to os.LookupEnv.
	Env LookupFunc

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// TSConfig holds the hints applied from tsconfig.json, if any.
	TSConfig *TSConfigHints
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (SRCFIX_*)
//  3. .env in the working directory (never overrides the real environment)
//  4. Explicit config file (opts.ExplicitPath)
//  5. Project config (.srcfix.yml upward search)
//  6. User config ($XDG_CONFIG_HOME/srcfix/config.yaml)
//  7. Defaults
//
// tsconfig.json path aliases fill the root alias and directory list only
// when no layer set them.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()
	var explicit Explicit

	layer := func(path, label string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load %s config: %w", label, err)
		}
		next, set, err := overlay(cfg, content)
		if err != nil {
			return fmt.Errorf("load %s config %s: %w: %w", label, path, ErrConfig, err)
		}
		cfg = next
		explicit = explicit.or(set)
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := layer(paths.User, "user"); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreProjectConfig && paths.Project != "" {
		if err := layer(paths.Project, "project"); err != nil {
			return nil, err
		}
	}

	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
		if err := layer(opts.ExplicitPath, "explicit"); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreEnv {
		lookup, err := envLookup(opts, paths)
		if err != nil {
			return nil, err
		}
		set, err := LoadFromEnv(cfg, lookup)
		if err != nil {
			return nil, fmt.Errorf("load environment: %w: %w", ErrConfig, err)
		}
		explicit = explicit.or(set)
	}

	cliCfg, set := mergeCLI(cfg, opts.CLIConfig)
	cfg = cliCfg
	explicit = explicit.or(set)

	if !opts.IgnoreTSConfig && !(explicit.RootAlias && explicit.Directories) {
		hints, err := inferFromTSConfig(cfg, workDir, paths, explicit, result)
		if err != nil {
			return nil, err
		}
		result.TSConfig = hints
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// envLookup consults the real environment first, then the .env file.
func envLookup(opts LoadOptions, paths *ConfigPaths) (LookupFunc, error) {
	lookup := opts.Env
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.IgnoreDotEnv || paths.DotEnv == "" {
		return lookup, nil
	}

	dotenv, err := godotenv.Read(paths.DotEnv)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", paths.DotEnv, ErrConfig, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// inferFromTSConfig fills the unset import settings from tsconfig.json.
// A tsconfig named in configuration must be readable; a discovered one
// that fails to parse only produces a warning.
func inferFromTSConfig(
	cfg *config.Config,
	workDir string,
	paths *ConfigPaths,
	explicit Explicit,
	result *LoadResult,
) (*TSConfigHints, error) {
	path := paths.TSConfig
	named := cfg.TSConfig != ""
	if named {
		path = cfg.TSConfig
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		paths.TSConfig = path
	}
	if path == "" {
		return nil, nil
	}

	hints, err := ReadTSConfig(path)
	if err != nil {
		if named {
			return nil, fmt.Errorf("tsconfig %s: %w: %w", path, ErrConfig, err)
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("ignoring %s: %v", path, err))
		return nil, nil
	}
	if hints == nil {
		return nil, nil
	}

	if !explicit.RootAlias {
		cfg.Imports.RootAlias = hints.Alias
	}
	if !explicit.Directories && len(hints.Directories) > 0 {
		cfg.Imports.Directories = hints.Directories
	}
	return hints, nil
}

// IsConfigError reports whether err came from invalid configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// Package runner rewrites batches of source files concurrently.
package runner

import "github.com/yaklabco/srcfix/pkg/config"

// Options controls which files a run visits and how many it processes at
// once.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, that
	// are considered source files.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. Zero or less means
	// runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// OptionsFromConfig builds Options for paths from cfg.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		IncludeGlobs: cfg.Include,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

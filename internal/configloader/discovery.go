package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths are the configuration files found for a run. Missing files
// are empty strings.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/srcfix/config.yaml.
	User string

	// Project is the nearest .srcfix.yml at or above the working directory.
	Project string

	// Explicit is the --config path.
	Explicit string

	// DotEnv is the .env file in the working directory.
	DotEnv string

	// TSConfig is the tsconfig.json used for alias inference.
	TSConfig string
}

//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".srcfix.yml",
	".srcfix.yaml",
	"srcfix.yml",
	"srcfix.yaml",
	".srcfix.json",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// ProjectConfigName is the file written by "srcfix init".
const ProjectConfigName = ".srcfix.yml"

// DiscoverPaths finds the user, project, .env and tsconfig files for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{User: findUserConfig()}

	project, err := findUpward(ctx, workDir, projectConfigFiles)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	if p := filepath.Join(workDir, ".env"); fileExists(p) {
		paths.DotEnv = p
	}

	tsconfig, err := findUpward(ctx, workDir, []string{"tsconfig.json"})
	if err != nil {
		return nil, err
	}
	paths.TSConfig = tsconfig

	return paths, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/srcfix, falling back to
// ~/.config/srcfix.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "srcfix")
}

func findUserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	return findUpward(ctx, startDir, projectConfigFiles)
}

// findUpward returns the first of names found in startDir or its parents.
// The search stops at a VCS root, the home directory or the filesystem root.
func findUpward(ctx context.Context, startDir string, names []string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range names {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

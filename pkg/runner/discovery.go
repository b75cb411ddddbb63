package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// alwaysSkipped directories are never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table
var alwaysSkipped = map[string]bool{
	"node_modules": true,
}

// Discover finds the source files selected by opts. Explicitly named files
// are kept even when hidden; directories are walked recursively. The result
// is a sorted, de-duplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    opts.IncludeGlobs,
		exclude:    opts.ExcludeGlobs,
	}
	for _, patterns := range [][]string{m.include, m.exclude} {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
				return nil, fmt.Errorf("invalid glob pattern %q", p)
			}
		}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matchFile(absPath) {
				add(absPath)
			}
			continue
		}

		walked, err := walk(ctx, absPath, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, f := range walked {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root string, m matcher, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || alwaysSkipped[name] || m.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow links itself.
				sub, err := walk(ctx, target, m, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matchFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matcher applies the extension allow-list and include/exclude globs to
// paths relative to workDir.
type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
}

func (m matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (m matcher) excluded(path string) bool {
	return matchAny(m.rel(path), m.exclude)
}

func (m matcher) matchFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}

	rel := m.rel(path)
	if matchAny(rel, m.exclude) {
		return false
	}
	return len(m.include) == 0 || matchAny(rel, m.include)
}

// matchAny reports whether rel matches one of patterns. A pattern without a
// slash also matches the base name, so "*.gen.ts" works at any depth.
func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, pathBase(rel)); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// Package analysis groups the changes of a rewrite run by file and by rule
// family.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"

	"github.com/yaklabco/srcfix/pkg/runner"
)

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return filepath.ToSlash(absPath)
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(relPath)
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		ByFile:   []FileAnalysis{},
		ByFamily: []FamilyAnalysis{},
	}
	if result == nil {
		return report
	}

	families := make(map[string]*FamilyAnalysis)

	for _, file := range result.Files {
		report.Totals.Files++
		res := file.Result
		if res == nil || !res.Modified {
			continue
		}

		path := makeRelativePath(file.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: path}
		seen := make(map[string]bool)

		for _, rec := range res.Changes {
			fa.Fixes += rec.Count

			ra, ok := families[rec.Family]
			if !ok {
				ra = &FamilyAnalysis{Family: rec.Family}
				families[rec.Family] = ra
			}
			ra.Fixes += rec.Count

			if !seen[rec.Family] {
				seen[rec.Family] = true
				fa.Families = append(fa.Families, rec.Family)
				ra.Files = append(ra.Files, path)
			}
		}

		slices.Sort(fa.Families)
		report.Totals.FilesChanged++
		report.Totals.Fixes += fa.Fixes
		report.ByFile = append(report.ByFile, fa)
	}

	for _, id := range slices.Sorted(maps.Keys(families)) {
		report.ByFamily = append(report.ByFamily, *families[id])
	}

	sortFamilies(report.ByFamily, opts.SortBy)
	sortFiles(report.ByFile, opts.SortBy)
	return report
}

// Ties always fall back to alphabetical order so output is stable.
func sortFamilies(families []FamilyAnalysis, sortBy SortField) {
	slices.SortStableFunc(families, func(left, right FamilyAnalysis) int {
		if sortBy != SortByAlpha {
			if c := cmp.Compare(right.Fixes, left.Fixes); c != 0 {
				return c
			}
		}
		return cmp.Compare(left.Family, right.Family)
	})
}

func sortFiles(files []FileAnalysis, sortBy SortField) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		if sortBy != SortByAlpha {
			if c := cmp.Compare(right.Fixes, left.Fixes); c != 0 {
				return c
			}
		}
		return cmp.Compare(left.Path, right.Path)
	})
}

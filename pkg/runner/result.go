package runner

import (
	"maps"
	"slices"

	"github.com/yaklabco/srcfix/pkg/fix"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// FileResult is the outcome of rewriting one file.
type FileResult struct {
	Path     string
	Language langdetect.Language

	// Changes lists what each rule did, in application order.
	Changes []rewrite.ChangeRecord

	// Modified is true when the rewritten content differs from the
	// original, whether or not it was written.
	Modified bool

	// Content is the rewritten content; empty unless Modified.
	Content string

	// Diff is the unified diff of the rewrite; nil unless Modified.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Fixes returns the total number of replacements made in the file.
func (r *FileResult) Fixes() int {
	n := 0
	for _, c := range r.Changes {
		n += c.Count
	}
	return n
}

// Summary returns a short human-readable state for the file.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "fixed (backup created)"
	case r.Written:
		return "fixed"
	case r.Modified:
		return "changes pending"
	default:
		return "ok"
	}
}

// FileOutcome pairs a path with its result or the error that stopped it.
type FileOutcome struct {
	Path   string
	Result *FileResult
	Error  error
}

// Stats are aggregate counts for a run. Every field is a sum over files, so
// the totals do not depend on the order files finished in.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesModified   int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int

	// TotalFixes is the number of replacements across all files.
	TotalFixes int

	// ByFamily maps rule family to its replacement count.
	ByFamily map[string]int
}

// Families returns the families in ByFamily, sorted.
func (s Stats) Families() []string {
	return slices.Sorted(maps.Keys(s.ByFamily))
}

// Result is the outcome of a run, with files in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file was, or would be, modified.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesModified > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{ByFamily: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	fr := outcome.Result
	if fr == nil {
		return
	}

	if fr.Skipped {
		r.Stats.FilesSkipped++
		return
	}
	r.Stats.FilesProcessed++
	if fr.Modified {
		r.Stats.FilesModified++
	}
	if fr.Written {
		r.Stats.FilesWritten++
	}
	for _, c := range fr.Changes {
		r.Stats.TotalFixes += c.Count
		r.Stats.ByFamily[c.Family] += c.Count
	}
}

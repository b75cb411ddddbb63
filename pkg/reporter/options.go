package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// Applied is true when rewrites were written to disk rather than
	// previewed.
	Applied bool

	// ShowSummary appends run statistics.
	ShowSummary bool

	// Verbose lists skipped files and prints the long summary block.
	Verbose bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir makes displayed paths relative. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns text output to stdout with a summary.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}

// displayPath returns path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

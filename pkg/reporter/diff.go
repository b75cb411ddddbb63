package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/srcfix/internal/ui/pretty"
	"github.com/yaklabco/srcfix/pkg/fix"
	"github.com/yaklabco/srcfix/pkg/runner"
)

// DiffReporter writes a git-style unified diff per modified file.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			fmt.Fprint(r.out, r.styles.FormatFileError(path, file.Error))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		r.writeDiff(path, file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(path string, diff *fix.Diff) {
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	// The generated ---/+++ lines carry the absolute path; replace them.
	inHunk := false
	for _, line := range strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n") {
		if strings.HasPrefix(line, "@@") {
			inHunk = true
		}
		if inHunk {
			r.writeDiffLine(line)
		}
	}
	fmt.Fprintln(r.out)
}

func (r *DiffReporter) writeDiffLine(line string) {
	var styled string
	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}
	fmt.Fprintln(r.out, styled)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pick(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pick(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pick(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

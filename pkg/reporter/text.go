package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/srcfix/internal/ui/pretty"
	"github.com/yaklabco/srcfix/pkg/runner"
)

// TextReporter lists each modified file with its change records.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to process."))
		}
		return 0, nil
	}

	modified := 0
	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		switch {
		case file.Error != nil:
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		case file.Result == nil:
		case file.Result.Skipped:
			if r.opts.Verbose || file.Result.SkipReason == runner.SkipRaced {
				fmt.Fprint(r.bw, r.styles.FormatSkip(path, file.Result.SkipReason))
			}
		case file.Result.Modified:
			modified++
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Result.Fixes(), file.Result.Written))
			for _, rec := range file.Result.Changes {
				fmt.Fprint(r.bw, r.styles.FormatChange(rec))
			}
		}
	}

	if r.opts.ShowSummary {
		if modified > 0 || result.HasErrors() {
			fmt.Fprintln(r.bw)
		}
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Applied))
		}
	}

	return modified, nil
}

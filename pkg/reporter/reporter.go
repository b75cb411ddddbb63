// Package reporter writes the results of a rewrite run as styled text, JSON
// or unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/srcfix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes result and returns the number of files that were, or
	// would be, modified.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

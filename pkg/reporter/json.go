package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/srcfix/pkg/analysis"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/runner"
)

// JSONSchemaVersion identifies the layout of JSONOutput.
const JSONSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version string           `json:"version"`
	Applied bool             `json:"applied"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`

	// Analysis groups the changes by file and by family, most fixes first.
	Analysis *analysis.Report `json:"analysis"`
}

// JSONFileResult is one file's outcome.
type JSONFileResult struct {
	Path          string                 `json:"path"`
	Language      string                 `json:"language,omitempty"`
	Modified      bool                   `json:"modified"`
	Written       bool                   `json:"written"`
	BackupCreated bool                   `json:"backupCreated,omitempty"`
	Skipped       bool                   `json:"skipped,omitempty"`
	SkipReason    string                 `json:"skipReason,omitempty"`
	Changes       []rewrite.ChangeRecord `json:"changes"`
	Error         string                 `json:"error,omitempty"`
}

// JSONSummary mirrors runner.Stats.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesModified   int            `json:"filesModified"`
	FilesWritten    int            `json:"filesWritten"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	TotalFixes      int            `json:"totalFixes"`
	ByFamily        map[string]int `json:"byFamily"`
}

// JSONReporter writes results as a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesModified, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONSchemaVersion,
		Applied: r.opts.Applied,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{ByFamily: make(map[string]int)},
	}
	output.Analysis = analysis.Analyze(result, analysis.Options{
		SortBy:     analysis.SortByCount,
		WorkingDir: r.opts.WorkingDir,
	})
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fr := JSONFileResult{
			Path:    displayPath(r.opts.WorkingDir, file.Path),
			Changes: make([]rewrite.ChangeRecord, 0),
		}
		if file.Error != nil {
			fr.Error = file.Error.Error()
		}
		if res := file.Result; res != nil {
			fr.Language = string(res.Language)
			fr.Modified = res.Modified
			fr.Written = res.Written
			fr.BackupCreated = res.BackupCreated
			fr.Skipped = res.Skipped
			fr.SkipReason = res.SkipReason
			if len(res.Changes) > 0 {
				fr.Changes = res.Changes
			}
		}
		output.Files = append(output.Files, fr)
	}

	s := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: s.FilesDiscovered,
		FilesProcessed:  s.FilesProcessed,
		FilesModified:   s.FilesModified,
		FilesWritten:    s.FilesWritten,
		FilesSkipped:    s.FilesSkipped,
		FilesErrored:    s.FilesErrored,
		TotalFixes:      s.TotalFixes,
		ByFamily:        output.Summary.ByFamily,
	}
	for family, n := range s.ByFamily {
		output.Summary.ByFamily[family] = n
	}
	return output
}

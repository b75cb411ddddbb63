package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/srcfix/internal/logging"
)

// Runner rewrites every discovered file with a shared Processor.
type Runner struct {
	Processor *Processor
}

// New creates a Runner around processor.
func New(processor *Processor) *Runner {
	return &Runner{Processor: processor}
}

// Run discovers the files selected by opts and rewrites them on a pool of
// workers. A file that fails is recorded in its outcome and the run moves
// on; only discovery errors and cancellation are returned as errors.
// Outcomes are in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		fr, err := r.Processor.ProcessFile(ctx, path)
		if err != nil {
			logger.Warn("file not rewritten", logging.FieldPath, path, logging.FieldError, err)
			outcome.Error = err
		} else {
			outcome.Result = fr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

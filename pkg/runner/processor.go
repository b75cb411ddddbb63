package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/fix"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rules"
)

// Error categories for per-file failures.
var (
	ErrFileRead  = errors.New("read failure")
	ErrFileWrite = errors.New("write failure")
	ErrRewrite   = errors.New("rewrite failure")
)

// Skip reasons.
const (
	SkipUnsupported = "unsupported language"
	SkipGenerated   = "generated file"
	SkipVendored    = "vendored file"
	SkipRaced       = "file modified during processing"
)

// Processor rewrites single files. It is safe for concurrent use: the
// compiled pipelines are shared read-only between workers.
type Processor struct {
	// Root anchors vendored-path detection. Paths outside Root, or all
	// paths when Root is empty, are checked as given.
	Root string

	cfg       *config.Config
	pipelines *rules.Pipelines
}

// NewProcessor compiles the families enabled by cfg. A rule that fails to
// compile is reported here, before any file is touched.
func NewProcessor(cfg *config.Config, registry *rules.Registry) (*Processor, error) {
	if registry == nil {
		registry = rules.DefaultRegistry
	}
	pipelines, err := registry.Pipelines(cfg)
	if err != nil {
		return nil, err
	}
	return &Processor{cfg: cfg, pipelines: pipelines}, nil
}

// Families returns the IDs of the enabled rule families.
func (p *Processor) Families() []string {
	return p.pipelines.Enabled()
}

// ProcessContent rewrites src in memory as if it were the file at path.
func (p *Processor) ProcessContent(ctx context.Context, path, src string) (*FileResult, error) {
	result := &FileResult{Path: path}

	if reason := p.skipReason(path, src); reason != "" {
		result.Skipped = true
		result.SkipReason = reason
		return result, nil
	}

	result.Language = langdetect.Classify(path, []byte(src))
	if !result.Language.Supported() {
		result.Skipped = true
		result.SkipReason = SkipUnsupported
		return result, nil
	}

	pipeline := p.pipelines.For(result.Language)
	out, changes, err := pipeline.Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRewrite, err)
	}
	result.Changes = changes

	if out == src {
		return result, nil
	}

	if p.cfg.Verifies() {
		if err := pipeline.Verify(ctx, out); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRewrite, err)
		}
	}

	diff, err := fix.GenerateDiff(path, src, out)
	if err != nil {
		return nil, fmt.Errorf("generate diff: %w", err)
	}

	result.Modified = true
	result.Content = out
	result.Diff = diff
	return result, nil
}

// ProcessFile reads path, rewrites it and, unless the run is a dry run,
// writes it back. Either every family's rewrite lands or none does: a
// failure anywhere leaves the file as it was.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	src, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	result, err := p.ProcessContent(ctx, path, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !result.Modified || !p.cfg.Writes() {
		return result, nil
	}

	logger := logging.FromContext(ctx)

	if p.cfg.BackupsEnabled() {
		created, err := fsutil.Backup(ctx, snap, src, fsutil.BackupMode(p.cfg.Backups.Mode))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
		}
		result.BackupCreated = created
	}

	if err := snap.Replace(ctx, result.Content); err != nil {
		if errors.Is(err, fsutil.ErrConcurrentModification) {
			logger.Warn("file changed while it was being rewritten; skipped", logging.FieldPath, path)
			result.Skipped = true
			result.SkipReason = SkipRaced
			return result, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrFileWrite, err)
	}
	result.Written = true

	logger.Debug("rewrote file",
		logging.FieldPath, path,
		logging.FieldLanguage, result.Language,
		logging.FieldFixes, result.Fixes(),
		logging.FieldBackup, result.BackupCreated,
	)
	return result, nil
}

func (p *Processor) skipReason(path, src string) string {
	slashed := filepath.ToSlash(path)
	if p.Root != "" {
		if rel, err := filepath.Rel(p.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
			slashed = filepath.ToSlash(rel)
		}
	}
	switch {
	case langdetect.IsVendored(slashed):
		return SkipVendored
	case langdetect.IsGenerated(slashed, []byte(src)):
		return SkipGenerated
	default:
		return ""
	}
}

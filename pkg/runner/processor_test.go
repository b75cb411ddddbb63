package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/rules"
	"github.com/yaklabco/srcfix/pkg/runner"
)

const (
	pageSrc   = "import { db } from '../../lib/db'\n\nexport function load(id: any) {\n  try {\n    return db.get(id)\n  } catch (error) {\n    return null\n  }\n}\n"
	pageFixed = "import { db } from '@/lib/db'\n\nexport function load(id: unknown) {\n  try {\n    return db.get(id)\n  } catch (_error) {\n    return null\n  }\n}\n"
)

func newProcessor(t *testing.T, cfg *config.Config, registry *rules.Registry) *runner.Processor {
	t.Helper()
	p, err := runner.NewProcessor(cfg, registry)
	require.NoError(t, err)
	return p
}

func TestProcessFile_Writes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "app", "page.ts")
	writeFiles(t, dir, map[string]string{"app/page.ts": pageSrc})

	p := newProcessor(t, config.NewConfig(), nil)
	res, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, langdetect.TypeScript, res.Language)
	assert.True(t, res.Modified)
	assert.True(t, res.Written)
	assert.False(t, res.BackupCreated)
	assert.Equal(t, 3, res.Fixes())
	assert.Equal(t, "fixed", res.Summary())
	assert.Equal(t, pageFixed, readFile(t, path))
	assert.NoFileExists(t, path+fsutil.BackupSuffix)
}

func TestProcessFile_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.ts")
	writeFiles(t, dir, map[string]string{"page.ts": pageSrc})

	cfg := config.NewConfig()
	cfg.DryRun = true

	res, err := newProcessor(t, cfg, nil).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, res.Modified)
	assert.False(t, res.Written)
	assert.Equal(t, pageFixed, res.Content)
	require.NotNil(t, res.Diff)
	assert.Equal(t, 3, res.Diff.Additions)
	assert.Equal(t, 3, res.Diff.Deletions)
	assert.Equal(t, "changes pending", res.Summary())
	assert.Equal(t, pageSrc, readFile(t, path))
}

func TestProcessFile_Backup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.ts")
	writeFiles(t, dir, map[string]string{"page.ts": pageSrc})

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true

	res, err := newProcessor(t, cfg, nil).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, res.BackupCreated)
	assert.Equal(t, pageSrc, readFile(t, path+fsutil.BackupSuffix))
	assert.Equal(t, pageFixed, readFile(t, path))

	cfg.NoBackups = true
	writeFiles(t, dir, map[string]string{"other.ts": pageSrc})
	res, err = newProcessor(t, cfg, nil).ProcessFile(context.Background(), filepath.Join(dir, "other.ts"))
	require.NoError(t, err)
	assert.False(t, res.BackupCreated)
}

func TestProcessFile_Unchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "page.ts")
	writeFiles(t, dir, map[string]string{"page.ts": pageFixed})
	before, err := os.Stat(path)
	require.NoError(t, err)

	res, err := newProcessor(t, config.NewConfig(), nil).ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.False(t, res.Modified)
	assert.False(t, res.Written)
	assert.Nil(t, res.Diff)
	assert.Empty(t, res.Changes)
	assert.Equal(t, "ok", res.Summary())

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestProcessContent_Skips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		src    string
		reason string
	}{
		{
			name:   "qt translation file",
			path:   "i18n/app_de.ts",
			src:    "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n<TS version=\"2.1\" language=\"de\">\n</TS>\n",
			reason: runner.SkipUnsupported,
		},
		{
			name:   "vendored dependency",
			path:   "node_modules/left-pad/index.js",
			src:    "module.exports = function (x: any) {}\n",
			reason: runner.SkipVendored,
		},
	}

	p := newProcessor(t, config.NewConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := p.ProcessContent(context.Background(), tt.path, tt.src)
			require.NoError(t, err)
			assert.True(t, res.Skipped)
			assert.Equal(t, tt.reason, res.SkipReason)
			assert.False(t, res.Modified)
		})
	}
}

func TestProcessFile_Failures(t *testing.T) {
	t.Parallel()

	unstable := rules.NewRegistry()
	unstable.Register(stubFamily{id: "grow", rewrite: func(src string) (string, error) {
		return src + "x", nil
	}})

	tests := []struct {
		name     string
		registry *rules.Registry
		src      string
		is       []error
	}{
		{
			name:     "failing pass",
			registry: failingRegistry(),
			src:      "import a from '../lib/a'\n// FAIL\n",
			is:       []error{runner.ErrRewrite, errBoom},
		},
		{
			name:     "no fixed point",
			registry: unstable,
			src:      "const a = 1\n",
			is:       []error{runner.ErrRewrite, rewrite.ErrNotFixedPoint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "a.ts")
			writeFiles(t, dir, map[string]string{"a.ts": tt.src})

			res, err := newProcessor(t, config.NewConfig(), tt.registry).ProcessFile(context.Background(), path)
			require.Error(t, err)
			assert.Nil(t, res)
			for _, target := range tt.is {
				require.ErrorIs(t, err, target)
			}
			assert.Equal(t, tt.src, readFile(t, path), "file must be left untouched")
		})
	}
}

func TestProcessFile_NoVerify(t *testing.T) {
	t.Parallel()

	unstable := rules.NewRegistry()
	unstable.Register(stubFamily{id: "grow", rewrite: func(src string) (string, error) {
		return src + "x", nil
	}})

	cfg := config.NewConfig()
	cfg.VerifyFixedPoint = false
	cfg.DryRun = true

	res, err := newProcessor(t, cfg, unstable).ProcessContent(context.Background(), "a.ts", "const a = 1\n")
	require.NoError(t, err)
	assert.Equal(t, "const a = 1\nx", res.Content)
}

func TestProcessFile_ReadError(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, config.NewConfig(), nil)
	_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.ts"))
	require.ErrorIs(t, err, runner.ErrFileRead)
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestNewProcessor_RegistrationError(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Disable = []string{"not-a-family"}

	_, err := runner.NewProcessor(cfg, nil)
	require.ErrorIs(t, err, rewrite.ErrRuleRegistration)
}

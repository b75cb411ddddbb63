package runner_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/runner"
)

func runDir(t *testing.T, dir string, cfg *config.Config, jobs int) *runner.Result {
	t.Helper()

	p := newProcessor(t, cfg, failingRegistry())
	p.Root = dir
	opts := runner.OptionsFromConfig(cfg, dir, nil)
	opts.Jobs = jobs

	res, err := runner.New(p).Run(context.Background(), opts)
	require.NoError(t, err)
	return res
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.ts":           pageSrc,
		"b.ts":           pageSrc + "// FAIL\n",
		"c.js":           "const x = require('../../hooks/useX')\n",
		"clean.ts":       pageFixed,
		"notes.md":       "# notes\n",
		"lib/types.d.ts": "export type X = any\n",
	})

	res := runDir(t, dir, config.NewConfig(), 4)

	assert.True(t, res.HasErrors())
	assert.True(t, res.HasChanges())
	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesProcessed:  3,
		FilesModified:   2,
		FilesWritten:    2,
		FilesErrored:    1,
		TotalFixes:      4,
		ByFamily: map[string]int{
			config.FamilyImports:      2,
			config.FamilyCatchBinding: 1,
			config.FamilyTypeWidening: 1,
		},
	}, res.Stats)

	paths := make([]string, len(res.Files))
	for i, f := range res.Files {
		paths[i] = filepath.Base(f.Path)
	}
	assert.Equal(t, []string{"a.ts", "b.ts", "c.js", "clean.ts"}, paths)

	require.Len(t, res.Errors(), 1)
	require.ErrorIs(t, res.Errors()[0], runner.ErrRewrite)

	assert.Equal(t, pageFixed, readFile(t, filepath.Join(dir, "a.ts")))
	assert.Equal(t, pageSrc+"// FAIL\n", readFile(t, filepath.Join(dir, "b.ts")))
	assert.Equal(t, "const x = require('@/hooks/useX')\n", readFile(t, filepath.Join(dir, "c.js")))
}

func TestRun_DryRunNeverWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.ts": pageSrc})

	cfg := config.NewConfig()
	cfg.Check = true

	res := runDir(t, dir, cfg, 0)
	assert.Equal(t, 1, res.Stats.FilesModified)
	assert.Equal(t, 0, res.Stats.FilesWritten)
	assert.Equal(t, pageSrc, readFile(t, filepath.Join(dir, "a.ts")))
}

func TestRun_ConcurrentMatchesSequential(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 40 {
		name := fmt.Sprintf("pkg%d/file%02d.ts", i%5, i)
		switch i % 3 {
		case 0:
			files[name] = pageSrc
		case 1:
			files[name] = pageFixed
		default:
			files[name] = "// FAIL\n"
		}
	}

	dirs := [2]string{t.TempDir(), t.TempDir()}
	writeFiles(t, dirs[0], files)
	writeFiles(t, dirs[1], files)

	cfg := config.NewConfig()
	cfg.DryRun = true

	sequential := runDir(t, dirs[0], cfg, 1)
	concurrent := runDir(t, dirs[1], cfg, 8)

	assert.Equal(t, sequential.Stats, concurrent.Stats)
	require.Len(t, concurrent.Files, len(sequential.Files))
	for i := range sequential.Files {
		s, c := sequential.Files[i], concurrent.Files[i]
		rel := func(dir, path string) string {
			r, err := filepath.Rel(dir, path)
			require.NoError(t, err)
			return r
		}
		assert.Equal(t, rel(dirs[0], s.Path), rel(dirs[1], c.Path))
		assert.Equal(t, s.Error != nil, c.Error != nil)
		if s.Result != nil && c.Result != nil {
			assert.Equal(t, s.Result.Content, c.Result.Content)
			assert.Equal(t, s.Result.Changes, c.Result.Changes)
		}
	}
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	res := runDir(t, t.TempDir(), config.NewConfig(), 0)
	assert.Equal(t, 0, res.Stats.FilesDiscovered)
	assert.False(t, res.HasErrors())
	assert.Empty(t, res.Files)
}

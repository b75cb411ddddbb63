package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/runner"
)

func discoverRel(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)

	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"app/page.tsx":                "x",
		"lib/api.ts":                  "x",
		"lib/api.test.ts":             "x",
		"lib/types.d.ts":              "x",
		"components/Button.jsx":       "x",
		"scripts/build.mjs":           "x",
		"README.md":                   "x",
		"node_modules/pkg/index.js":   "x",
		".next/server/page.js":        "x",
		"src/.hidden.ts":              "x",
		"src/generated/schema.gen.ts": "x",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults skip hidden and node_modules",
			opts: runner.Options{},
			want: []string{
				"app/page.tsx",
				"components/Button.jsx",
				"lib/api.test.ts",
				"lib/api.ts",
				"lib/types.d.ts",
				"scripts/build.mjs",
				"src/generated/schema.gen.ts",
			},
		},
		{
			name: "configured ignores",
			opts: runner.Options{ExcludeGlobs: config.NewConfig().Ignore},
			want: []string{
				"app/page.tsx",
				"components/Button.jsx",
				"lib/api.test.ts",
				"lib/api.ts",
				"scripts/build.mjs",
				"src/generated/schema.gen.ts",
			},
		},
		{
			name: "base name pattern matches at any depth",
			opts: runner.Options{ExcludeGlobs: []string{"*.test.ts", "*.gen.ts", "*.d.ts"}},
			want: []string{
				"app/page.tsx",
				"components/Button.jsx",
				"lib/api.ts",
				"scripts/build.mjs",
			},
		},
		{
			name: "directory exclusion",
			opts: runner.Options{ExcludeGlobs: []string{"src/**", "scripts"}},
			want: []string{
				"app/page.tsx",
				"components/Button.jsx",
				"lib/api.test.ts",
				"lib/api.ts",
				"lib/types.d.ts",
			},
		},
		{
			name: "include restricts",
			opts: runner.Options{IncludeGlobs: []string{"lib/**/*.ts"}, ExcludeGlobs: []string{"**/*.d.ts"}},
			want: []string{"lib/api.test.ts", "lib/api.ts"},
		},
		{
			name: "extension allow-list",
			opts: runner.Options{Extensions: []string{".TSX"}},
			want: []string{"app/page.tsx"},
		},
		{
			name: "paths narrow the walk and are de-duplicated",
			opts: runner.Options{Paths: []string{"lib", "lib/api.ts", "app"}},
			want: []string{"app/page.tsx", "lib/api.test.ts", "lib/api.ts", "lib/types.d.ts"},
		},
	}

	dir := t.TempDir()
	writeFiles(t, dir, tree)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, discoverRel(t, dir, tt.opts))
		})
	}
}

func TestDiscover_ExplicitHiddenFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{".eslintrc.js": "x"})

	got := discoverRel(t, dir, runner.Options{Paths: []string{".eslintrc.js"}})
	assert.Equal(t, []string{".eslintrc.js"}, got)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, ExcludeGlobs: []string{"[unclosed"}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

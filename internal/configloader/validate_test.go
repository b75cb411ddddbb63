package configloader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:      "format",
			mutate:    func(c *config.Config) { c.Format = "sarif" },
			wantField: "format",
		},
		{
			name:      "negative jobs",
			mutate:    func(c *config.Config) { c.Jobs = -1 },
			wantField: "jobs",
		},
		{
			name:      "backup mode",
			mutate:    func(c *config.Config) { c.Backups.Mode = "git" },
			wantField: "backups.mode",
		},
		{
			name:      "strategy",
			mutate:    func(c *config.Config) { c.Imports.Strategy = "" },
			wantField: "imports.strategy",
		},
		{
			name:      "max depth",
			mutate:    func(c *config.Config) { c.Imports.MaxDepth = 0 },
			wantField: "imports.max_depth",
		},
		{
			name:      "empty root alias",
			mutate:    func(c *config.Config) { c.Imports.RootAlias = " " },
			wantField: "imports.root_alias",
		},
		{
			name:      "quoted root alias",
			mutate:    func(c *config.Config) { c.Imports.RootAlias = `@"` },
			wantField: "imports.root_alias",
		},
		{
			name:      "nested directory",
			mutate:    func(c *config.Config) { c.Imports.Directories = []string{"lib", "app/api"} },
			wantField: "imports.directories[1]",
		},
		{
			name:      "marker starting with digit",
			mutate:    func(c *config.Config) { c.Warnings.UnusedMarker = "1" },
			wantField: "warnings.unused_marker",
		},
		{
			name:      "ignore glob",
			mutate:    func(c *config.Config) { c.Ignore = []string{"[oops"} },
			wantField: "ignore[0]",
		},
		{
			name:      "include glob",
			mutate:    func(c *config.Config) { c.Include = []string{"src/**", "{a,b"} },
			wantField: "include[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := configloader.Validate(cfg)

			if tt.wantField == "" {
				assert.True(t, result.Valid(), result.AllMessages())
				return
			}
			require.False(t, result.Valid())
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Imports.MaxDepth = -2

	result := configloader.ValidateWithFile(cfg, ".srcfix.yml")

	require.Len(t, result.Errors, 1)
	err := &result.Errors[0]
	assert.Equal(t, ".srcfix.yml: imports.max_depth: max_depth must be >= 1", err.Error())
	assert.True(t, errors.Is(err, configloader.ErrConfig))
}

func TestIsValidUnusedMarker(t *testing.T) {
	t.Parallel()

	for _, m := range []string{"_", "$", "unused_", "_x1"} {
		assert.True(t, configloader.IsValidUnusedMarker(m), m)
	}
	for _, m := range []string{"", "-", "9_", "a b"} {
		assert.False(t, configloader.IsValidUnusedMarker(m), m)
	}
}

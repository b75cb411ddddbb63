package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/fix"
)

func TestGenerateDiff_Identical(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("a.ts", "same\n", "same\n")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.FullString())
}

func TestGenerateDiff_Changed(t *testing.T) {
	t.Parallel()

	original := "import a from '../lib/a'\nconst x = 1\n"
	modified := "import a from '@/lib/a'\nconst x = 1\n"

	d, err := fix.GenerateDiff("src/app/page.ts", original, modified)
	require.NoError(t, err)
	require.True(t, d.HasChanges())

	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
	assert.Contains(t, d.String(), "--- a/src/app/page.ts")
	assert.Contains(t, d.String(), "+++ b/src/app/page.ts")
	assert.Contains(t, d.String(), "-import a from '../lib/a'")
	assert.Contains(t, d.String(), "+import a from '@/lib/a'")
	assert.Contains(t, d.FullString(), "diff --git a/src/app/page.ts b/src/app/page.ts")
}

func TestGenerateDiff_RemovedLineStartingWithDashes(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("x.js", "-- a\nb\n", "b\n")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Deletions)
	assert.Equal(t, 0, d.Additions)
}

func TestGenerateDiff_Hunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original string
		modified string
		want     string
	}{
		{
			name:     "terminated lines",
			original: "x\ny\n",
			modified: "x\nz\n",
			want:     "@@ -1,2 +1,2 @@\n x\n-y\n+z\n",
		},
		{
			name:     "adds final newline",
			original: "x\ny",
			modified: "x\ny\n",
			want:     "@@ -1,2 +1,2 @@\n x\n-y\n\\ No newline at end of file\n+y\n",
		},
		{
			name:     "unterminated context",
			original: "x\ny",
			modified: "z\ny",
			want:     "@@ -1,2 +1,2 @@\n-x\n+z\n y\n\\ No newline at end of file\n",
		},
		{
			name:     "from empty",
			original: "",
			modified: "x\n",
			want:     "@@ -0,0 +1 @@\n+x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := fix.GenerateDiff("a.ts", tt.original, tt.modified)
			require.NoError(t, err)
			assert.Equal(t, "--- a/a.ts\n+++ b/a.ts\n"+tt.want, d.String())
		})
	}
}

func TestGenerateDiff_MarkerNotCounted(t *testing.T) {
	t.Parallel()

	d, err := fix.GenerateDiff("a.ts", "x\ny", "x\ny\n")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
}

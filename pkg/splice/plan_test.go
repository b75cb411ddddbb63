package splice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/splice"
)

func TestParsePlan(t *testing.T) {
	t.Parallel()

	plan, err := splice.ParsePlan([]byte(`
splices:
  - start: 1
    end: 2
    text: |
      one
      two
  - start: 3
    end: 4
    text: "no newline"
  - start: 5
    end: 6
`))
	require.NoError(t, err)
	require.Len(t, plan.Splices, 3)

	assert.Equal(t, []string{"one\n", "two\n"}, plan.Splices[0].Lines)
	assert.Equal(t, []string{"no newline\n"}, plan.Splices[1].Lines)
	assert.Empty(t, plan.Splices[2].Lines)
}

func TestParsePlan_MissingBounds(t *testing.T) {
	t.Parallel()

	_, err := splice.ParsePlan([]byte("splices:\n  - start: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start and end are required")
}

func TestPlan_ApplyText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("splices:\n  - {start: 1, end: 2, text: B}\n"), 0o600))

	plan, err := splice.LoadPlan(path)
	require.NoError(t, err)

	got, err := plan.ApplyText("a\nb\nc\n")
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nc\n", got)
}

func TestLoadPlan_Missing(t *testing.T) {
	t.Parallel()

	_, err := splice.LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

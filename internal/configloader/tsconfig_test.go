package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripJSONComments(t *testing.T) {
	t.Parallel()

	src := "{\n  // note\n  \"a\": \"http://x\", /* b */ \"c\": 1\n}"

	got := stripJSONComments(src)

	assert.Len(t, got, len(src))
	assert.NotContains(t, got, "note")
	assert.NotContains(t, got, "/* b */")
	assert.Contains(t, got, `"http://x"`)
}

func TestReadTSConfig_ExtendsLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"extends": "./tsconfig.json"}`), 0o644))

	hints, err := ReadTSConfig(path)

	require.NoError(t, err)
	assert.Nil(t, hints)
}

func TestReadTSConfig_PackageExtendsIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"extends": "@tsconfig/next/tsconfig.json"}`), 0o644))

	hints, err := ReadTSConfig(path)

	require.NoError(t, err)
	assert.Nil(t, hints)
}

package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/rules"
)

func writeFiles(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

var errBoom = errors.New("boom")

// stubFamily runs a caller-supplied rewrite on every language.
type stubFamily struct {
	id      string
	rewrite func(src string) (string, error)
}

func (f stubFamily) ID() string                       { return f.id }
func (f stubFamily) Description() string              { return "test family" }
func (f stubFamily) Languages() []langdetect.Language { return langdetect.All() }

func (f stubFamily) Build(*config.Config) (rewrite.Pass, error) { return stubPass(f), nil }

type stubPass stubFamily

func (p stubPass) Name() string { return p.id }

func (p stubPass) Rewrite(_ context.Context, src string) (string, []rewrite.ChangeRecord, error) {
	out, err := p.rewrite(src)
	if err != nil {
		return "", nil, err
	}
	if out == src {
		return src, nil, nil
	}
	return out, []rewrite.ChangeRecord{{Family: p.id, Description: "stub", Count: 1}}, nil
}

// failingRegistry returns the built-in families plus one that fails on any
// file containing "FAIL".
func failingRegistry() *rules.Registry {
	r := rules.NewRegistry()
	rules.RegisterAll(r)
	r.Register(stubFamily{id: "fail-marker", rewrite: func(src string) (string, error) {
		if strings.Contains(src, "FAIL") {
			return "", errBoom
		}
		return src, nil
	}})
	return r
}

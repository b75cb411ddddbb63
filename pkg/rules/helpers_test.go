package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/rules"
)

// runFamily runs only the given family over src as lang.
func runFamily(t *testing.T, family string, lang langdetect.Language, src string) (string, []rewrite.ChangeRecord) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Only = []string{family}
	return runConfig(t, cfg, lang, src)
}

func runConfig(t *testing.T, cfg *config.Config, lang langdetect.Language, src string) (string, []rewrite.ChangeRecord) {
	t.Helper()

	pipelines, err := rules.DefaultRegistry.Pipelines(cfg)
	require.NoError(t, err)

	p := pipelines.For(lang)
	require.NotNil(t, p)

	out, changes, err := p.Run(context.Background(), src)
	require.NoError(t, err)
	return out, changes
}

func total(changes []rewrite.ChangeRecord) int {
	n := 0
	for _, c := range changes {
		n += c.Count
	}
	return n
}

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
)

func TestEmptyImports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "removes empty import line",
			src:  "import {} from './a'\nimport b from './b'\n",
			want: "import b from './b'\n",
		},
		{
			name: "removes type-only and semicolon forms",
			src:  "import type { } from \"./t\";\nconst x = 1\n",
			want: "const x = 1\n",
		},
		{
			name: "keeps non-empty import",
			src:  "import { a } from './a'\n",
			want: "import { a } from './a'\n",
		},
		{
			name: "keeps commented import",
			src:  "/*\nimport {} from './a'\n*/\n",
			want: "/*\nimport {} from './a'\n*/\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := runFamily(t, config.FamilyEmptyImports, langdetect.TypeScript, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyImports_OffByDefault(t *testing.T) {
	t.Parallel()

	src := "import {} from './a'\n"
	got, _ := runConfig(t, config.NewConfig(), langdetect.TypeScript, src)
	assert.Equal(t, src, got)
}

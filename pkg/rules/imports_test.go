package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rules"
)

func TestImports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "deep ladder in one pass",
			src:  `import { x } from "../../../lib/x"`,
			want: `import { x } from "@/lib/x"`,
		},
		{
			name: "single quotes preserved",
			src:  `import x from '../lib/y'`,
			want: `import x from '@/lib/y'`,
		},
		{
			name: "bare directory specifier",
			src:  `import * as hooks from '../../hooks'`,
			want: `import * as hooks from '@/hooks'`,
		},
		{
			name: "side effect import",
			src:  `import '../styles/../lib/setup'`,
			want: `import '../styles/../lib/setup'`,
		},
		{
			name: "side effect import of recognized directory",
			src:  `import '../../lib/setup'`,
			want: `import '@/lib/setup'`,
		},
		{
			name: "dynamic import",
			src:  `const m = await import('../components/Modal')`,
			want: `const m = await import('@/components/Modal')`,
		},
		{
			name: "require",
			src:  `const u = require("../../lib/util")`,
			want: `const u = require("@/lib/util")`,
		},
		{
			name: "re-export",
			src:  `export { a } from '../app/a'`,
			want: `export { a } from '@/app/a'`,
		},
		{
			name: "unknown directory untouched",
			src:  `import x from '../../node_modules/x'`,
			want: `import x from '../../node_modules/x'`,
		},
		{
			name: "directory prefix is not a match",
			src:  `import x from '../library/x'`,
			want: `import x from '../library/x'`,
		},
		{
			name: "beyond max depth untouched",
			src:  `import x from '../../../../../lib/x'`,
			want: `import x from '../../../../../lib/x'`,
		},
		{
			name: "same directory untouched",
			src:  `import x from './lib/x'`,
			want: `import x from './lib/x'`,
		},
		{
			name: "commented import untouched",
			src:  "// import x from '../lib/x'\n/* import y from '../lib/y' */",
			want: "// import x from '../lib/x'\n/* import y from '../lib/y' */",
		},
		{
			name: "string mentioning from untouched",
			src:  `const s = "from '../lib/x'"`,
			want: `const s = "from '../lib/x'"`,
		},
		{
			name: "Array.from untouched",
			src:  `Array.from('../lib/x')`,
			want: `Array.from('../lib/x')`,
		},
		{
			name: "multiple imports",
			src:  "import a from '../lib/a'\nimport b from \"../../components/b\"\n",
			want: "import a from '@/lib/a'\nimport b from \"@/components/b\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := runFamily(t, config.FamilyImports, langdetect.TypeScript, tt.src)
			assert.Equal(t, tt.want, got)

			again, _ := runFamily(t, config.FamilyImports, langdetect.TypeScript, got)
			assert.Equal(t, got, again, "second run must be a no-op")
		})
	}
}

func TestImports_ChangeRecordsPerDepth(t *testing.T) {
	t.Parallel()

	src := "import a from '../lib/a'\nimport b from '../../lib/b'\nimport c from '../../lib/c'\n"
	_, changes := runFamily(t, config.FamilyImports, langdetect.JavaScript, src)

	require.Len(t, changes, 2)
	assert.Equal(t, "rewrite depth-2 relative import to @/ alias", changes[0].Description)
	assert.Equal(t, 2, changes[0].Count)
	assert.Equal(t, "rewrite depth-1 relative import to @/ alias", changes[1].Description)
	assert.Equal(t, 1, changes[1].Count)
}

func TestImports_AnyDepth(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Only = []string{config.FamilyImports}
	cfg.Imports.Strategy = config.StrategyAnyDepth

	got, changes := runConfig(t, cfg, langdetect.TypeScript, `import x from '../../../../../../lib/x'`)
	assert.Equal(t, `import x from '@/lib/x'`, got)
	assert.Equal(t, 1, total(changes))
}

func TestImports_CustomAliasAndDirectories(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Only = []string{config.FamilyImports}
	cfg.Imports.RootAlias = "~$"
	cfg.Imports.Directories = []string{"utils", "utils-extra"}
	cfg.Imports.MaxDepth = 2

	got, _ := runConfig(t, cfg, langdetect.TypeScript,
		"import a from '../utils-extra/a'\nimport b from '../../utils/b'\nimport c from '../lib/c'\n")
	assert.Equal(t,
		"import a from '~$/utils-extra/a'\nimport b from '~$/utils/b'\nimport c from '../lib/c'\n", got)
}

func TestImportRules(t *testing.T) {
	t.Parallel()

	ic := config.NewConfig().Imports
	assert.Len(t, rules.ImportRules(ic), ic.MaxDepth)

	ic.Strategy = config.StrategyAnyDepth
	assert.Len(t, rules.ImportRules(ic), 1)

	ic.Directories = nil
	assert.Empty(t, rules.ImportRules(ic))
}

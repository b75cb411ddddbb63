package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/rules"
)

func TestUnusedIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "expression body",
			src:  "const ids = items.map((item, index) => item.id)\n",
			want: "const ids = items.map((item, _index) => item.id)\n",
		},
		{
			name: "block body",
			src:  "rows.forEach((row, index) => {\n  total += row.n\n})\n",
			want: "rows.forEach((row, _index) => {\n  total += row.n\n})\n",
		},
		{
			name: "annotated parameters",
			src:  "xs.filter((x: Item, index: number) => x.ok)\n",
			want: "xs.filter((x: Item, _index: number) => x.ok)\n",
		},
		{
			name: "used index untouched",
			src:  "xs.map((x, index) => <li key={index}>{x}</li>)\n",
			want: "xs.map((x, index) => <li key={index}>{x}</li>)\n",
		},
		{
			name: "shorthand use untouched",
			src:  "xs.map((x, index) => ({ x, index }))\n",
			want: "xs.map((x, index) => ({ x, index }))\n",
		},
		{
			name: "property access is not a use",
			src:  "xs.map((x, index) => x.index)\n",
			want: "xs.map((x, _index) => x.index)\n",
		},
		{
			name: "existing marked name untouched",
			src:  "xs.map((x, index) => _index + x)\n",
			want: "xs.map((x, index) => _index + x)\n",
		},
		{
			name: "string mention is not a use",
			src:  "xs.map((x, index) => `index ${x}`)\n",
			want: "xs.map((x, _index) => `index ${x}`)\n",
		},
		{
			name: "nested callback using index keeps outer",
			src:  "a.map((x, index) => x.map((y, i) => index))\n",
			want: "a.map((x, index) => x.map((y, i) => index))\n",
		},
		{
			name: "other method untouched",
			src:  "xs.reduce((acc, index) => acc)\n",
			want: "xs.reduce((acc, index) => acc)\n",
		},
		{
			name: "commented callback untouched",
			src:  "// xs.map((x, index) => x)\n",
			want: "// xs.map((x, index) => x)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := runFamily(t, config.FamilyUnusedIndex, langdetect.TSX, tt.src)
			assert.Equal(t, tt.want, got)

			again, _ := runFamily(t, config.FamilyUnusedIndex, langdetect.TSX, got)
			assert.Equal(t, got, again)
		})
	}
}

func TestUnusedIndex_CustomMarker(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Only = []string{config.FamilyUnusedIndex}
	cfg.Warnings.UnusedMarker = "unused_"

	got, changes := runConfig(t, cfg, langdetect.JavaScript, "xs.forEach((x, index) => log(x))\n")
	assert.Equal(t, "xs.forEach((x, unused_index) => log(x))\n", got)
	require.Len(t, changes, 1)
	assert.Equal(t, config.FamilyUnusedIndex, changes[0].Family)
}

func TestUnusedIndex_InvalidMarker(t *testing.T) {
	t.Parallel()

	_, err := rules.NewUnusedIndexPass("-")
	require.ErrorIs(t, err, rewrite.ErrRuleRegistration)
}

func TestUnusedIndex_OffByDefault(t *testing.T) {
	t.Parallel()

	src := "xs.map((x, index) => x)\n"
	got, _ := runConfig(t, config.NewConfig(), langdetect.TypeScript, src)
	assert.Equal(t, src, got)
}

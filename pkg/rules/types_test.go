package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
)

func TestTypeWidening(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "annotation", src: "let a: any = 1", want: "let a: unknown = 1"},
		{name: "annotation without space", src: "function f(x:any) {}", want: "function f(x: unknown) {}"},
		{name: "generic argument", src: "const p: Promise<any> = q", want: "const p: Promise<unknown> = q"},
		{name: "array", src: "const xs: Array<any[]> = []", want: "const xs: Array<unknown[]> = []"},
		{name: "annotated array", src: "let xs: any[] = []", want: "let xs: unknown[] = []"},
		{name: "record", src: "type M = Record<string, any>", want: "type M = Record<string, unknown>"},
		{name: "record string literal key", src: "type M = Record<'a' | 'b', any>", want: "type M = Record<'a' | 'b', unknown>"},
		{name: "record in comment", src: "// Record<'a', any>\n", want: "// Record<'a', any>\n"},
		{name: "record in string", src: `const s = "Record<K, any>"`, want: `const s = "Record<K, any>"`},
		{name: "record identifier union key", src: "type M = Record<K | L, any>", want: "type M = Record<K | L, unknown>"},
		{name: "identifier containing any", src: "let company: anything = 1", want: "let company: anything = 1"},
		{name: "identifier ending with dollar", src: "let x: any$y = 1", want: "let x: any$y = 1"},
		{name: "array of dollar identifier", src: "let xs = $any[] + any$[]", want: "let xs = $any[] + any$[]"},
		{name: "annotation before comment", src: "let a: any // loose\n", want: "let a: unknown // loose\n"},
		{name: "parameter", src: "(a: any, b: any) => a", want: "(a: unknown, b: unknown) => a"},
		{name: "return type before body", src: "function f(): any {\n}", want: "function f(): unknown {\n}"},
		{name: "line comment", src: "// value: any\n", want: "// value: any\n"},
		{name: "block comment", src: "/* Promise<any> */", want: "/* Promise<any> */"},
		{name: "string", src: `const s = "x: any"`, want: `const s = "x: any"`},
		{name: "template text", src: "const s = `Record<string, any>`", want: "const s = `Record<string, any>`"},
		{name: "template substitution", src: "const s = `${(v as Array<any>)}`", want: "const s = `${(v as Array<unknown>)}`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := runFamily(t, config.FamilyTypeWidening, langdetect.TypeScript, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeWidening_RecordsEachPosition(t *testing.T) {
	t.Parallel()

	src := "let a: any\nlet b: Set<any>\nlet c = [] as any[]\nlet d = {} as Record<string, any>\n"
	got, changes := runFamily(t, config.FamilyTypeWidening, langdetect.TSX, src)

	assert.Equal(t, "let a: unknown\nlet b: Set<unknown>\nlet c = [] as unknown[]\nlet d = {} as Record<string, unknown>\n", got)
	require.Len(t, changes, 4)
	for _, c := range changes {
		assert.Equal(t, config.FamilyTypeWidening, c.Family)
		assert.Equal(t, 1, c.Count)
	}
}

func TestTypeWidening_SkipsJavaScript(t *testing.T) {
	t.Parallel()

	src := "const label = cond ? a : any\n"
	got, changes := runFamily(t, config.FamilyTypeWidening, langdetect.JavaScript, src)
	assert.Equal(t, src, got)
	assert.Empty(t, changes)
}

func TestTypeWidening_LeavesJSXText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "prose after colon",
			src:  "export const Hint = () => <p>Note: any user may join</p>\n",
			want: "export const Hint = () => <p>Note: any user may join</p>\n",
		},
		{
			name: "closing tag after colon",
			src:  "const el = <span>Type: any</span>\n",
			want: "const el = <span>Type: any</span>\n",
		},
		{
			name: "expression container after colon",
			src:  "const el = <p>Note: any {count} left</p>\n",
			want: "const el = <p>Note: any {count} left</p>\n",
		},
		{
			name: "annotated props beside text",
			src:  "function Hint(props: any) {\n  return <p>Note: any user may join</p>\n}\n",
			want: "function Hint(props: unknown) {\n  return <p>Note: any user may join</p>\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := runFamily(t, config.FamilyTypeWidening, langdetect.TSX, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

package rules

import (
	"strings"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

type typeWideningFamily struct{}

// NewTypeWideningFamily returns the family that replaces "any" with
// "unknown" in type annotations, generic arguments, array element types and
// Record value types. Comments and literals are never touched.
func NewTypeWideningFamily() Family {
	return typeWideningFamily{}
}

func (typeWideningFamily) ID() string { return config.FamilyTypeWidening }

func (typeWideningFamily) Description() string {
	return "Replace the any type with unknown in annotations, generics, arrays and Record values"
}

func (typeWideningFamily) Languages() []langdetect.Language {
	return []langdetect.Language{langdetect.TypeScript, langdetect.TSX}
}

func (typeWideningFamily) Build(*config.Config) (rewrite.Pass, error) {
	return rewrite.Compile(config.FamilyTypeWidening, TypeWideningRules()...)
}

// TypeWideningRules returns the widening rules in application order.
func TypeWideningRules() []rewrite.Rule {
	return []rewrite.Rule{
		{
			Pattern:     `:\s*(any)\b`,
			Replacement: ": unknown",
			Description: "widen any type annotation to unknown",
			Scope:       rewrite.ScopeCode,
			Accept:      annotatesType,
		},
		{
			Pattern:     `<\s*any\s*>`,
			Replacement: "<unknown>",
			Description: "widen any generic argument to unknown",
			Scope:       rewrite.ScopeCode,
		},
		{
			Pattern:     `\b(any)\s*\[\]`,
			Replacement: "unknown[]",
			Description: "widen any[] to unknown[]",
			Scope:       rewrite.ScopeCode,
			Accept:      standaloneAny(1),
		},
		{
			Pattern:     `\bRecord<\s*([^<>,;(){}\n]+?)\s*,\s*(any)\s*>`,
			Replacement: "Record<${1}, unknown>",
			Description: "widen Record value type any to unknown",
			Accept:      recordValue,
		},
	}
}

// typeFollowers are the bytes that may follow a type annotation on the
// same line.
const typeFollowers = "\r\n=;,)|&>]}[/"

// standaloneAny accepts a match whose capture group is the identifier "any"
// itself, in code, rather than part of a longer name like "$any" or "any$".
func standaloneAny(group int) func(rewrite.Match) bool {
	return func(m rewrite.Match) bool {
		start, end := m.Loc[2*group], m.Loc[2*group+1]
		if start < 0 {
			return false
		}
		if start > 0 && lexer.IsIdentByte(m.Src[start-1]) {
			return false
		}
		if end < len(m.Src) && lexer.IsIdentByte(m.Src[end]) {
			return false
		}
		return m.Regions.InCode(start, end)
	}
}

// annotatesType rejects ": any" followed by more words on the same line,
// which is prose such as JSX text ("Note: any user may join") rather than a
// type annotation.
func annotatesType(m rewrite.Match) bool {
	if !standaloneAny(1)(m) {
		return false
	}
	rest := strings.TrimLeft(m.Src[m.End():], " \t")
	switch {
	case rest == "":
		return true
	case rest[0] == '{':
		// A return type before a function body: "): any {".
		prev, _ := prevNonSpace(m.Src, m.Start())
		return prev == ')'
	}
	return strings.IndexByte(typeFollowers, rest[0]) >= 0
}

// recordValue checks the Record keyword and the value type. The key may be a
// union of string literals, which the lexer reports as string regions.
func recordValue(m rewrite.Match) bool {
	return m.Regions.InCode(m.Start(), m.Start()+len("Record")) && standaloneAny(2)(m)
}

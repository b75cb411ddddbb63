package rules

import (
	"regexp"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

var reactToken = regexp.MustCompile(`\bReact\b`)

type reactImportFamily struct{}

// NewReactImportFamily returns the family that drops a default React import
// the file never refers to. import React, { useState } from 'react' keeps
// its named imports; a lone import React from 'react' is deleted.
//
// Files still compiled with the classic JSX runtime need React in scope for
// every element, so the family is off by default.
func NewReactImportFamily() Family {
	return reactImportFamily{}
}

func (reactImportFamily) ID() string { return config.FamilyReactImport }

func (reactImportFamily) Description() string {
	return "Remove the default React import when React is never referenced"
}

func (reactImportFamily) Languages() []langdetect.Language { return langdetect.All() }

func (reactImportFamily) Build(*config.Config) (rewrite.Pass, error) {
	return rewrite.Compile(config.FamilyReactImport,
		rewrite.Rule{
			Pattern:     `(?m)^([ \t]*)import\s+React\s*,\s*(\{[^}]*\})\s*from\s*(['"])react['"]`,
			Replacement: "${1}import ${2} from ${3}react${3}",
			Description: "drop unused React default import beside named imports",
			Accept:      reactUnused(3),
		},
		rewrite.Rule{
			Pattern:     `(?m)^[ \t]*import\s+React\s+from\s*(['"])react['"][ \t]*;?[ \t]*(?:\r?\n)?`,
			Replacement: "",
			Description: "remove unused React default import",
			Accept:      reactUnused(1),
		},
	)
}

// reactUnused accepts an import whose statement is code and whose React
// binding appears nowhere else in code, member access on another object
// aside. quote is the capture group of the module specifier's quote.
func reactUnused(quote int) func(rewrite.Match) bool {
	return func(m rewrite.Match) bool {
		if !m.Regions.InCode(m.Start(), m.GroupStart(quote)) {
			return false
		}
		plain := m.Regions.Mask()
		for _, loc := range reactToken.FindAllStringIndex(plain, -1) {
			if loc[0] >= m.Start() && loc[1] <= m.End() {
				continue
			}
			if loc[0] > 0 && lexer.IsIdentByte(plain[loc[0]-1]) {
				continue
			}
			if loc[1] < len(plain) && lexer.IsIdentByte(plain[loc[1]]) {
				continue
			}
			if prev, at := prevNonSpace(plain, loc[0]); prev == '.' && (at < 2 || plain[at-2:at] != "..") {
				continue
			}
			return false
		}
		return true
	}
}

package rules

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// specifierPrefix matches what may precede a module specifier: "from",
// static or dynamic "import", and "require(".
const specifierPrefix = `(\bfrom\s*|\bimport\s*\(?\s*|\brequire\s*\(\s*)`

type importsFamily struct{}

// NewImportsFamily returns the import path normalizer. It rewrites relative
// specifiers that climb to a recognized top-level directory, such as
// "../../lib/x", to the root alias form "@/lib/x".
func NewImportsFamily() Family {
	return importsFamily{}
}

func (importsFamily) ID() string { return config.FamilyImports }

func (importsFamily) Description() string {
	return "Rewrite parent-relative imports of recognized directories to the root alias"
}

func (importsFamily) Languages() []langdetect.Language { return langdetect.All() }

func (importsFamily) Build(cfg *config.Config) (rewrite.Pass, error) {
	return rewrite.Compile(config.FamilyImports, ImportRules(cfg.Imports)...)
}

// ImportRules generates the normalizer's rules. The ladder strategy yields
// one rule per depth from MaxDepth down to 1; any-depth yields a single rule.
// Specifiers deeper than MaxDepth are left alone by the ladder.
func ImportRules(ic config.ImportsConfig) []rewrite.Rule {
	if len(ic.Directories) == 0 {
		return nil
	}

	dirs := slices.Clone(ic.Directories)
	slices.SortFunc(dirs, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), cmp.Compare(a, b))
	})
	quoted := make([]string, len(dirs))
	for i, d := range dirs {
		quoted[i] = regexp.QuoteMeta(d)
	}
	dirGroup := "(" + strings.Join(quoted, "|") + ")"

	alias := strings.ReplaceAll(ic.RootAlias, "$", "$$")
	replacement := "${1}${2}" + alias + "/${3}${4}"

	rule := func(climb, desc string) rewrite.Rule {
		return rewrite.Rule{
			Pattern:     specifierPrefix + `(['"])` + climb + dirGroup + `(/|['"])`,
			Replacement: replacement,
			Description: desc,
			Accept:      isModuleSpecifier,
		}
	}

	if ic.Strategy == config.StrategyAnyDepth {
		return []rewrite.Rule{
			rule(`(?:\.\./)+`, fmt.Sprintf("rewrite relative import to %s/ alias", ic.RootAlias)),
		}
	}

	out := make([]rewrite.Rule, 0, ic.MaxDepth)
	for depth := ic.MaxDepth; depth >= 1; depth-- {
		out = append(out, rule(
			fmt.Sprintf(`(?:\.\./){%d}`, depth),
			fmt.Sprintf("rewrite depth-%d relative import to %s/ alias", depth, ic.RootAlias),
		))
	}
	return out
}

// isModuleSpecifier accepts a match whose keyword is code, not a member such
// as Array.from, and whose quote opens a string literal.
func isModuleSpecifier(m rewrite.Match) bool {
	start := m.Start()
	if start > 0 && m.Src[start-1] == '.' {
		return false
	}
	quote := m.GroupStart(2)
	return m.Regions.InCode(start, quote) && m.Regions.KindAt(quote) == lexer.String
}

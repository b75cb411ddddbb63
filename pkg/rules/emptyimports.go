package rules

import (
	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

type emptyImportsFamily struct{}

// NewEmptyImportsFamily returns the family that deletes import statements
// with an empty specifier list. It is off by default because the deleted
// import may have been kept for its side effects.
func NewEmptyImportsFamily() Family {
	return emptyImportsFamily{}
}

func (emptyImportsFamily) ID() string { return config.FamilyEmptyImports }

func (emptyImportsFamily) Description() string {
	return "Remove import statements that import nothing, such as import {} from 'x'"
}

func (emptyImportsFamily) Languages() []langdetect.Language { return langdetect.All() }

func (emptyImportsFamily) Build(*config.Config) (rewrite.Pass, error) {
	return rewrite.Compile(config.FamilyEmptyImports, rewrite.Rule{
		Pattern:     `(?m)^[ \t]*import\s+(?:type\s*)?\{\s*\}\s*from\s*(['"])[^'"\n]*['"][ \t]*;?[ \t]*(?:\r?\n)?`,
		Replacement: "",
		Description: "remove empty import",
		Accept: func(m rewrite.Match) bool {
			return m.Regions.InCode(m.Start(), m.GroupStart(1))
		},
	})
}

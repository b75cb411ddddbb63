package rules

import (
	"regexp"
	"strings"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// indexParam is the parameter name the family renames.
const indexParam = "index"

// iterationMethods are the array methods whose callbacks receive the element
// index as their second argument.
var iterationMethods = []string{
	"map", "flatMap", "filter", "forEach", "some", "every", "find", "findIndex",
}

type unusedIndexFamily struct{}

// NewUnusedIndexFamily returns the family that prefixes an unused index
// parameter of an array iteration callback with the unused marker:
// items.map((item, index) => item.id) becomes items.map((item, _index) => item.id).
func NewUnusedIndexFamily() Family {
	return unusedIndexFamily{}
}

func (unusedIndexFamily) ID() string { return config.FamilyUnusedIndex }

func (unusedIndexFamily) Description() string {
	return "Prefix unused index parameters of map, filter and forEach callbacks with the unused marker"
}

func (unusedIndexFamily) Languages() []langdetect.Language { return langdetect.All() }

func (unusedIndexFamily) Build(cfg *config.Config) (rewrite.Pass, error) {
	return NewUnusedIndexPass(cfg.Warnings.UnusedMarker)
}

// NewUnusedIndexPass compiles the rename of unused index parameters to
// marker+"index".
func NewUnusedIndexPass(marker string) (*rewrite.RuleSet, error) {
	if marker == "" || !isIdentifier("a"+marker) {
		return nil, &rewrite.RegistrationError{
			Set:     config.FamilyUnusedIndex,
			Pattern: marker,
			Reason:  "unused marker must be made of identifier characters",
		}
	}
	target := marker + indexParam
	callback := unusedCallback{
		use: regexp.MustCompile(`(?:^|[^\w$.])(?:` + indexParam + `|` + regexp.QuoteMeta(target) + `)(?:[^\w$]|$)`),
	}

	return rewrite.Compile(config.FamilyUnusedIndex, rewrite.Rule{
		Pattern: `(\.(?:` + strings.Join(iterationMethods, "|") + `)\(\s*(?:async\s*)?\(\s*[^(),]+?\s*,\s*)` +
			indexParam + `(\s*(?::\s*number\s*)?\)\s*=>)`,
		Replacement: "${1}" + strings.ReplaceAll(target, "$", "$$") + "${2}",
		Description: "prefix unused index parameter with unused marker",
		Scope:       rewrite.ScopeCode,
		Accept:      callback.unused,
	})
}

// unusedCallback decides whether a matched callback leaves its index alone.
type unusedCallback struct {
	// use matches index, or the renamed name it would collide with, as a
	// whole token that is not a property access.
	use *regexp.Regexp
}

// unused checks the rest of the call, from the arrow to the closing
// parenthesis. Any mention of index there, including an object key or a
// nested callback's own parameter, keeps the parameter as it is.
func (c unusedCallback) unused(m rewrite.Match) bool {
	open := m.Start() + strings.IndexByte(m.Text(), '(')
	closeAt := matchParen(m.Src, m.Regions, open)
	if closeAt < 0 {
		return false
	}
	body := m.Regions.Mask()[m.End():closeAt]
	return !c.use.MatchString(body)
}

// matchParen returns the offset of the ')' closing the '(' at open, counting
// only parentheses in code, or -1.
func matchParen(src string, regions *lexer.Map, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		if regions.KindAt(i) != lexer.Code {
			continue
		}
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

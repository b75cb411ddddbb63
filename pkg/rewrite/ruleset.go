package rewrite

import (
	"context"
	"fmt"

	"github.com/yaklabco/srcfix/pkg/fix"
	"github.com/yaklabco/srcfix/pkg/lexer"
)

// ChangeRecord counts the matches one rule rewrote in one file.
type ChangeRecord struct {
	Family      string `json:"family"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Pass is one step of a Pipeline.
type Pass interface {
	Name() string
	Rewrite(ctx context.Context, src string) (string, []ChangeRecord, error)
}

// RuleSet is an immutable, ordered list of compiled rules. It is safe for
// concurrent use.
type RuleSet struct {
	name  string
	rules []compiledRule
}

// Compile validates and compiles rules into a RuleSet named name.
func Compile(name string, rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{name: name, rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		cr, err := compileRule(name, i, r)
		if err != nil {
			return nil, err
		}
		rs.rules = append(rs.rules, cr)
	}
	return rs, nil
}

// Name returns the rule set's name, used as the family of its changes.
func (rs *RuleSet) Name() string { return rs.name }

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rewrite applies every rule in order. On error the returned text is empty
// and must be discarded.
func (rs *RuleSet) Rewrite(ctx context.Context, src string) (string, []ChangeRecord, error) {
	var changes []ChangeRecord
	cur := src

	for i := range rs.rules {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		next, count, err := rs.rules[i].apply(cur)
		if err != nil {
			return "", nil, fmt.Errorf("%s: rule %q: %w", rs.name, rs.rules[i].Description, err)
		}
		if count == 0 {
			continue
		}
		changes = append(changes, ChangeRecord{
			Family:      rs.name,
			Description: rs.rules[i].Description,
			Count:       count,
		})
		cur = next
	}
	return cur, changes, nil
}

func (r *compiledRule) apply(src string) (string, int, error) {
	locs := r.re.FindAllStringSubmatchIndex(src, -1)
	if len(locs) == 0 {
		return src, 0, nil
	}

	var regions *lexer.Map
	if r.Scope == ScopeCode || r.Accept != nil {
		regions = lexer.Scan(src)
	}

	var b fix.Builder
	for _, loc := range locs {
		if r.Scope == ScopeCode && !regions.InCode(loc[0], loc[1]) {
			continue
		}
		if r.Accept != nil && !r.Accept(Match{Src: src, Loc: loc, Regions: regions}) {
			continue
		}
		text := r.re.ExpandString(nil, r.Replacement, src, loc)
		b.Replace(loc[0], loc[1], string(text))
	}
	if b.Len() == 0 {
		return src, 0, nil
	}

	out, err := fix.ApplyAll(src, b.Edits())
	if err != nil {
		return "", 0, err
	}
	return out, b.Len(), nil
}

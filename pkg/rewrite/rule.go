// Package rewrite applies ordered regular-expression rules to source text.
//
// Rules are compiled into a RuleSet once, before any file is read. Each rule
// sees the output of every rule before it, and a rule records a change
// whenever it matches, even when its replacement reproduces the matched text.
// Replacement templates use the syntax of regexp.Expand; a template that
// names a capture group its pattern does not define is rejected when the
// rule set is compiled.
package rewrite

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/srcfix/pkg/lexer"
)

// ErrRuleRegistration is wrapped by every RegistrationError.
var ErrRuleRegistration = errors.New("invalid rewrite rule")

// Scope limits where a rule may match.
type Scope int

const (
	// ScopeAny lets a rule match anywhere in the text.
	ScopeAny Scope = iota
	// ScopeCode drops matches that touch a comment, string, template or
	// regex literal.
	ScopeCode
)

func (s Scope) String() string {
	if s == ScopeCode {
		return "code"
	}
	return "any"
}

// Rule is a pattern, a replacement template and a description of the fix.
type Rule struct {
	Pattern     string
	Replacement string
	Description string
	Scope       Scope

	// Accept, when set, is consulted for every match that passed the scope
	// check. Returning false leaves that match untouched.
	Accept func(Match) bool
}

// Match is one occurrence of a rule's pattern in the current text.
type Match struct {
	Src     string
	Loc     []int
	Regions *lexer.Map
}

// Start returns the offset of the first byte of the match.
func (m Match) Start() int { return m.Loc[0] }

// End returns the offset just past the match.
func (m Match) End() int { return m.Loc[1] }

// Text returns the matched text.
func (m Match) Text() string { return m.Src[m.Loc[0]:m.Loc[1]] }

// Group returns the text of capture group i, or "" if it did not take part.
func (m Match) Group(i int) string {
	if 2*i+1 >= len(m.Loc) || m.Loc[2*i] < 0 {
		return ""
	}
	return m.Src[m.Loc[2*i]:m.Loc[2*i+1]]
}

// GroupStart returns the offset of capture group i, or -1.
func (m Match) GroupStart(i int) int {
	if 2*i >= len(m.Loc) {
		return -1
	}
	return m.Loc[2*i]
}

// RegistrationError reports a rule that cannot be compiled.
type RegistrationError struct {
	Set     string
	Index   int
	Pattern string
	Reason  string
	Err     error
}

func (e *RegistrationError) Error() string {
	msg := fmt.Sprintf("rule set %q: rule %d (%s): %s", e.Set, e.Index, e.Pattern, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RegistrationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRuleRegistration, e.Err}
	}
	return []error{ErrRuleRegistration}
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

func compileRule(set string, index int, r Rule) (compiledRule, error) {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return compiledRule{}, &RegistrationError{
			Set: set, Index: index, Pattern: r.Pattern, Reason: "pattern does not compile", Err: err,
		}
	}
	if err := checkTemplate(r.Replacement, re); err != nil {
		return compiledRule{}, &RegistrationError{
			Set: set, Index: index, Pattern: r.Pattern, Reason: err.Error(),
		}
	}
	return compiledRule{Rule: r, re: re}, nil
}

// checkTemplate walks a replacement template the way regexp.Expand does and
// rejects references to groups re does not define.
func checkTemplate(template string, re *regexp.Regexp) error {
	names := re.SubexpNames()
	for {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			return nil
		}
		template = template[i+1:]

		if strings.HasPrefix(template, "$") {
			template = template[1:]
			continue
		}

		var name string
		switch {
		case strings.HasPrefix(template, "{"):
			end := strings.IndexByte(template, '}')
			if end < 0 {
				return errors.New(`unterminated "${" in replacement`)
			}
			name = template[1:end]
			template = template[end+1:]
			if name == "" || strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
				return fmt.Errorf("invalid group reference ${%s} in replacement", name)
			}
		default:
			n := 0
			for n < len(template) && isNameRune(rune(template[n])) {
				n++
			}
			if n == 0 {
				return errors.New(`bare "$" in replacement; use "$$" for a literal dollar`)
			}
			name = template[:n]
			template = template[n:]
		}

		if num, err := strconv.Atoi(name); err == nil {
			if num > re.NumSubexp() {
				return fmt.Errorf("replacement references group %d but pattern has %d", num, re.NumSubexp())
			}
			continue
		}
		if name == "" || !slices.Contains(names[1:], name) {
			return fmt.Errorf("replacement references unknown group %q", name)
		}
	}
}

func isNameRune(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

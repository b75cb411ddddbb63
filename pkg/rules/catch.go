package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// bindingCacheSize bounds the number of per-name rule sets kept compiled.
const bindingCacheSize = 256

// catchClause matches "catch (name)" or "catch (name: Type)" up to the
// opening brace of the handler block.
var catchClause = regexp.MustCompile(`\bcatch\s*\(\s*([A-Za-z_$][\w$]*)\s*(?::[^)]*)?\)\s*\{`)

type catchBindingFamily struct{}

// NewCatchBindingFamily returns the family that renames caught exception
// bindings to carry the unused marker, e.g. catch (error) becomes
// catch (_error), together with every use bound to that declaration.
func NewCatchBindingFamily() Family {
	return catchBindingFamily{}
}

func (catchBindingFamily) ID() string { return config.FamilyCatchBinding }

func (catchBindingFamily) Description() string {
	return "Prefix caught exception bindings with the unused marker and rename their uses"
}

func (catchBindingFamily) Languages() []langdetect.Language { return langdetect.All() }

func (catchBindingFamily) Build(cfg *config.Config) (rewrite.Pass, error) {
	return NewCatchBindingPass(cfg.Warnings.UnusedMarker)
}

// CatchBindingPass renames catch bindings one clause at a time, rescanning
// after each rename. A clause is left alone when its handler redeclares the
// binding or already mentions the renamed identifier.
type CatchBindingPass struct {
	marker   string
	bindings *lru.Cache[string, *binding]
}

// NewCatchBindingPass returns a pass that prefixes bindings with marker.
func NewCatchBindingPass(marker string) (*CatchBindingPass, error) {
	if marker == "" || !isIdentifier("a"+marker) {
		return nil, &rewrite.RegistrationError{
			Set:     config.FamilyCatchBinding,
			Pattern: marker,
			Reason:  "unused marker must be made of identifier characters",
		}
	}
	cache, err := lru.New[string, *binding](bindingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create binding cache: %w", err)
	}
	return &CatchBindingPass{marker: marker, bindings: cache}, nil
}

func (p *CatchBindingPass) Name() string { return config.FamilyCatchBinding }

// Rewrite implements rewrite.Pass.
func (p *CatchBindingPass) Rewrite(ctx context.Context, src string) (string, []rewrite.ChangeRecord, error) {
	counts := make(map[string]int)
	var order []string

	cur := src
	skip := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		clauses := p.candidates(cur)
		if skip >= len(clauses) {
			break
		}
		c := clauses[skip]

		b, err := p.binding(c.name)
		if err != nil {
			return "", nil, err
		}

		text := cur[c.start:c.end]
		if !b.renamable(text) {
			skip++
			continue
		}

		out, changes, err := b.set.Rewrite(ctx, text)
		if err != nil {
			return "", nil, err
		}
		if out == text || clauseName(out) == c.name {
			// The declaration could not be renamed; move past it.
			skip++
			continue
		}

		cur = cur[:c.start] + out + cur[c.end:]
		for _, ch := range changes {
			if _, seen := counts[ch.Description]; !seen {
				order = append(order, ch.Description)
			}
			counts[ch.Description] += ch.Count
		}
	}

	records := make([]rewrite.ChangeRecord, 0, len(order))
	for _, desc := range order {
		records = append(records, rewrite.ChangeRecord{
			Family: config.FamilyCatchBinding, Description: desc, Count: counts[desc],
		})
	}
	return cur, records, nil
}

// clause is a catch clause from the keyword through the closing brace.
type clause struct {
	name  string
	start int
	end   int
}

// candidates lists, in source order, the catch clauses in code whose
// binding lacks the marker and whose handler block is closed.
func (p *CatchBindingPass) candidates(src string) []clause {
	regions := lexer.Scan(src)
	var out []clause
	for _, loc := range catchClause.FindAllStringSubmatchIndex(src, -1) {
		open := loc[1] - 1
		if loc[0] > 0 && src[loc[0]-1] == '.' {
			continue
		}
		if !regions.InCode(loc[0], loc[0]+len("catch")) || !regions.InCode(open, loc[1]) {
			continue
		}
		name := src[loc[2]:loc[3]]
		if strings.HasPrefix(name, p.marker) {
			continue
		}
		closeAt := regions.MatchBrace(open)
		if closeAt < 0 {
			continue
		}
		out = append(out, clause{name: name, start: loc[0], end: closeAt + 1})
	}
	return out
}

func clauseName(text string) string {
	loc := catchClause.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	return text[loc[2]:loc[3]]
}

func (p *CatchBindingPass) binding(name string) (*binding, error) {
	if b, ok := p.bindings.Get(name); ok {
		return b, nil
	}
	b, err := newBinding(name, p.marker+name)
	if err != nil {
		return nil, err
	}
	p.bindings.Add(name, b)
	return b, nil
}

// binding holds the compiled rules for renaming one identifier.
type binding struct {
	name   string
	target string

	set *rewrite.RuleSet

	// shadows match declarations that would rebind name inside the handler.
	shadows []*regexp.Regexp
	// paramLists match a parenthesized list containing name followed by
	// something that makes it a parameter list.
	paramLists *regexp.Regexp
	targetUse  *regexp.Regexp
	nested     *regexp.Regexp
}

func newBinding(name, target string) (*binding, error) {
	q := regexp.QuoteMeta(name)
	tok := `(?:^|[^\w$.])` + q + `(?:[^\w$]|$)`

	b := &binding{
		name:   name,
		target: target,
		shadows: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:const|let|var|function|class)\s+` + q + `(?:[^\w$]|$)`),
			regexp.MustCompile(`\b(?:const|let|var)\s*[\[{][^=;]*` + tok),
			regexp.MustCompile(`(?:^|[^\w$.])` + q + `\s*=>`),
		},
		paramLists: regexp.MustCompile(`([\w$]*)\s*\(([^()]*[^\w$.])?` + q + `(?:[^\w$][^()]*)?\)\s*(=>|:|\{)`),
		targetUse:  regexp.MustCompile(`(?:^|[^\w$])` + regexp.QuoteMeta(target) + `(?:[^\w$]|$)`),
		nested:     regexp.MustCompile(`\bcatch\s*\(\s*` + q + `\s*[:)]`),
	}

	escName := strings.ReplaceAll(name, "$", "$$")
	escTarget := strings.ReplaceAll(target, "$", "$$")

	set, err := rewrite.Compile(config.FamilyCatchBinding,
		rewrite.Rule{
			Pattern:     `([{,]\s*)` + q + `(\s*[,}])`,
			Replacement: "${1}" + escName + ": " + escTarget + "${2}",
			Description: "expand shorthand property of caught error",
			Scope:       rewrite.ScopeCode,
			Accept:      b.acceptShorthand,
		},
		rewrite.Rule{
			Pattern:     q,
			Replacement: escTarget,
			Description: "prefix caught error binding with unused marker",
			Scope:       rewrite.ScopeCode,
			Accept:      b.acceptUse,
		},
	)
	if err != nil {
		return nil, err
	}
	b.set = set
	return b, nil
}

// renamable reports whether the clause text can be rewritten safely.
func (b *binding) renamable(text string) bool {
	regions := lexer.Scan(text)
	plain := regions.Mask()
	if b.targetUse.MatchString(plain) {
		return false
	}

	mask := []byte(plain)
	for _, span := range b.nestedSpans(text, regions) {
		for i := span[0]; i < span[1]; i++ {
			if mask[i] != '\n' {
				mask[i] = ' '
			}
		}
	}

	// The clause's own declaration sits before the block and is not a shadow.
	head := catchClause.FindStringIndex(text)
	if head == nil {
		return false
	}
	body := string(mask[head[1]-1:])

	for _, re := range b.shadows {
		if re.MatchString(body) {
			return false
		}
	}
	for _, m := range b.paramLists.FindAllStringSubmatch(body, -1) {
		if m[3] != "{" || !controlKeywords[m[1]] {
			return false
		}
	}
	return true
}

var controlKeywords = map[string]bool{
	"if": true, "while": true, "for": true, "switch": true, "with": true, "catch": true,
}

// nestedSpans returns the spans of catch clauses inside text, other than
// text's own, that rebind the same name.
func (b *binding) nestedSpans(text string, regions *lexer.Map) [][2]int {
	var spans [][2]int
	for _, loc := range b.nested.FindAllStringIndex(text, -1) {
		if loc[0] == 0 || !regions.InCode(loc[0], loc[1]) {
			continue
		}
		open := strings.IndexByte(text[loc[1]:], '{')
		if open < 0 {
			continue
		}
		closeAt := regions.MatchBrace(loc[1] + open)
		if closeAt < 0 {
			continue
		}
		spans = append(spans, [2]int{loc[0], closeAt + 1})
	}
	return spans
}

func (b *binding) inNested(m rewrite.Match, at int) bool {
	for _, span := range b.nestedSpans(m.Src, m.Regions) {
		if at >= span[0] && at < span[1] {
			return true
		}
	}
	return false
}

// acceptShorthand accepts "{ name }" and ", name," inside an object literal.
func (b *binding) acceptShorthand(m rewrite.Match) bool {
	at := m.GroupStart(1) + len(m.Group(1))
	if b.inNested(m, at) {
		return false
	}
	opener, pos := enclosingOpener(m.Src, m.Regions, at)
	return opener == '{' && isObjectLiteral(m.Src, m.Regions, pos)
}

// acceptUse accepts whole-token occurrences that refer to the binding.
func (b *binding) acceptUse(m rewrite.Match) bool {
	src := m.Src
	start, end := m.Start(), m.End()

	if start > 0 && lexer.IsIdentByte(src[start-1]) {
		return false
	}
	if end < len(src) && lexer.IsIdentByte(src[end]) {
		return false
	}
	if b.inNested(m, start) {
		return false
	}

	prev, prevAt := prevNonSpace(src, start)
	next, nextAt := nextNonSpace(src, end)
	sameLinePrev := prevOnLine(src, start)

	// Member access, but not spread.
	if prev == '.' && !(prevAt >= 2 && src[prevAt-2:prevAt] == "..") {
		return false
	}

	// Object literal key.
	if next == ':' && (prev == '{' || prev == ',') {
		if opener, _ := enclosingOpener(src, m.Regions, start); opener == '{' {
			return false
		}
	}

	// JSX attribute name.
	if next == '=' && nextAt+1 < len(src) && src[nextAt+1] != '=' && src[nextAt+1] != '>' {
		if lexer.IsIdentByte(sameLinePrev) || strings.IndexByte(`}"'-`, sameLinePrev) >= 0 {
			return false
		}
	}
	return true
}

// enclosingOpener returns the innermost unclosed bracket in code before at.
func enclosingOpener(src string, regions *lexer.Map, at int) (byte, int) {
	depth := 0
	for i := at - 1; i >= 0; i-- {
		if regions.KindAt(i) != lexer.Code {
			continue
		}
		switch src[i] {
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			if depth == 0 {
				return src[i], i
			}
			depth--
		}
	}
	return 0, -1
}

// isObjectLiteral guesses whether the '{' at pos opens an object literal
// rather than a block, from the token before it.
func isObjectLiteral(src string, regions *lexer.Map, pos int) bool {
	prev, prevAt := prevNonSpace(src, pos)
	switch prev {
	case '=':
		// name={...} is a JSX expression container.
		if prevAt > 0 && prevAt+1 == pos && lexer.IsIdentByte(src[prevAt-1]) {
			return false
		}
		return prevAt == 0 || src[prevAt-1] != '='
	case '(', ',', ':', '[', '?', '|', '&', '!':
		return true
	}
	if lexer.IsIdentByte(prev) && regions.KindAt(prevAt) == lexer.Code {
		word := wordEndingAt(src, prevAt)
		return word == "return" || word == "yield" || word == "await"
	}
	return false
}

func prevNonSpace(src string, at int) (byte, int) {
	for i := at - 1; i >= 0; i-- {
		if !isSpace(src[i]) {
			return src[i], i
		}
	}
	return 0, -1
}

// prevOnLine returns the previous non-blank byte on the same line, or 0.
func prevOnLine(src string, at int) byte {
	for i := at - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return 0
		default:
			return src[i]
		}
	}
	return 0
}

func nextNonSpace(src string, at int) (byte, int) {
	for i := at; i < len(src); i++ {
		if !isSpace(src[i]) {
			return src[i], i
		}
	}
	return 0, len(src)
}

func wordEndingAt(src string, end int) string {
	start := end
	for start > 0 && lexer.IsIdentByte(src[start-1]) {
		start--
	}
	return src[start : end+1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentifier(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !lexer.IsIdentByte(s[i]) {
			return false
		}
	}
	return true
}

// Package lexer classifies the bytes of JavaScript and TypeScript source into
// code, comment, string, template and regular-expression regions.
//
// It is not a tokenizer: it tracks only as much state as needed to know
// whether a byte is executable code. Template literal substitutions are code;
// regex literals are recognized with the usual "can an operand appear here"
// heuristic. Unterminated quotes end at the next newline.
package lexer

import (
	"sort"
	"strings"
)

// Kind is the lexical class of a region.
type Kind uint8

const (
	Code Kind = iota
	LineComment
	BlockComment
	String
	Template
	Regex
)

var kindNames = [...]string{
	Code:         "code",
	LineComment:  "line-comment",
	BlockComment: "block-comment",
	String:       "string",
	Template:     "template",
	Regex:        "regex",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsComment reports whether k is either comment kind.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

// Region is a half-open byte range [Start, End) of a single kind.
type Region struct {
	Start int
	End   int
	Kind  Kind
}

// Map is the region classification of one source text. Adjacent regions
// never share a kind, so every maximal run of code is one region.
type Map struct {
	src     string
	regions []Region
}

// Scan classifies src.
func Scan(src string) *Map {
	s := &scanner{src: src}
	s.run()
	return &Map{src: src, regions: s.regions}
}

// Regions returns a copy of the regions in source order.
func (m *Map) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

// find returns the index of the region containing offset, or -1.
func (m *Map) find(offset int) int {
	i := sort.Search(len(m.regions), func(i int) bool {
		return m.regions[i].End > offset
	})
	if i == len(m.regions) || m.regions[i].Start > offset {
		return -1
	}
	return i
}

// KindAt returns the kind of the byte at offset. Offsets outside the text
// are reported as Code.
func (m *Map) KindAt(offset int) Kind {
	i := m.find(offset)
	if i < 0 {
		return Code
	}
	return m.regions[i].Kind
}

// InCode reports whether every byte of [start, end) is code.
// An empty range is in code when its position is.
func (m *Map) InCode(start, end int) bool {
	if start >= end {
		return m.KindAt(start) == Code
	}
	i := m.find(start)
	if i < 0 {
		return false
	}
	r := m.regions[i]
	return r.Kind == Code && end <= r.End
}

// MatchBrace returns the offset of the '}' that closes the '{' at open,
// counting only braces in code. It returns -1 if open is not a code '{'
// or the brace is never closed.
func (m *Map) MatchBrace(open int) int {
	if open < 0 || open >= len(m.src) || m.src[open] != '{' || !m.InCode(open, open+1) {
		return -1
	}

	depth := 0
	for i := m.find(open); i < len(m.regions); i++ {
		r := m.regions[i]
		if r.Kind != Code {
			continue
		}
		from := max(r.Start, open)
		for j := from; j < r.End; j++ {
			switch m.src[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return j
				}
			}
		}
	}
	return -1
}

// Mask returns src with every non-code byte other than newlines replaced by
// a space, keeping offsets identical to the original.
func (m *Map) Mask() string {
	var b strings.Builder
	b.Grow(len(m.src))
	for _, r := range m.regions {
		if r.Kind == Code {
			b.WriteString(m.src[r.Start:r.End])
			continue
		}
		for j := r.Start; j < r.End; j++ {
			if m.src[j] == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

package lexer

import "strings"

// regexPrefixKeywords are the keywords after which a '/' starts a regex.
var regexPrefixKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

type scanner struct {
	src     string
	pos     int
	regions []Region

	// templates holds, for every open template substitution, the depth of
	// plain braces opened inside it.
	templates []int

	lastSig  byte
	lastWord string
}

func (s *scanner) emit(kind Kind, start, end int) {
	if start >= end {
		return
	}
	if n := len(s.regions); n > 0 && s.regions[n-1].Kind == kind && s.regions[n-1].End == start {
		s.regions[n-1].End = end
		return
	}
	s.regions = append(s.regions, Region{Start: start, End: end, Kind: kind})
}

func (s *scanner) operand() {
	s.lastSig = '"'
	s.lastWord = ""
}

func (s *scanner) run() {
	src := s.src
	for s.pos < len(src) {
		c := src[s.pos]
		next := byte(0)
		if s.pos+1 < len(src) {
			next = src[s.pos+1]
		}

		switch {
		case c == '/' && next == '/':
			end := strings.IndexByte(src[s.pos:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += s.pos
			}
			s.emit(LineComment, s.pos, end)
			s.pos = end

		case c == '/' && next == '*':
			end := strings.Index(src[s.pos+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end += s.pos + 4
			}
			s.emit(BlockComment, s.pos, end)
			s.pos = end

		case c == '\'' || c == '"':
			start := s.pos
			s.pos = s.scanQuoted(s.pos+1, c)
			s.emit(String, start, s.pos)
			s.operand()

		case c == '`':
			s.scanTemplate(s.pos, s.pos+1)

		case c == '}' && len(s.templates) > 0 && s.templates[len(s.templates)-1] == 0:
			s.templates = s.templates[:len(s.templates)-1]
			s.scanTemplate(s.pos, s.pos+1)

		case c == '/' && s.regexAllowed() && !s.jsxClosingTag():
			start := s.pos
			s.pos = s.scanRegex(s.pos + 1)
			s.emit(Regex, start, s.pos)
			s.operand()

		case isIdentByte(c):
			start := s.pos
			for s.pos < len(src) && isIdentByte(src[s.pos]) {
				s.pos++
			}
			s.emit(Code, start, s.pos)
			s.lastSig = 'a'
			s.lastWord = src[start:s.pos]

		default:
			switch c {
			case '{':
				if n := len(s.templates); n > 0 {
					s.templates[n-1]++
				}
			case '}':
				if n := len(s.templates); n > 0 {
					s.templates[n-1]--
				}
			}
			if !isSpace(c) {
				s.lastSig = c
				s.lastWord = ""
			}
			s.emit(Code, s.pos, s.pos+1)
			s.pos++
		}
	}
}

// scanQuoted returns the offset just past the string that began before from.
func (s *scanner) scanQuoted(from int, quote byte) int {
	src := s.src
	i := from
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return len(src)
}

// scanTemplate emits a template chunk starting at start (a backtick or the
// '}' closing a substitution) whose text begins at from. The chunk ends at
// the closing backtick or just after a "${", which opens a substitution.
func (s *scanner) scanTemplate(start, from int) {
	src := s.src
	i := from
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2
			continue
		case src[i] == '`':
			s.emit(Template, start, i+1)
			s.pos = i + 1
			s.operand()
			return
		case src[i] == '$' && i+1 < len(src) && src[i+1] == '{':
			s.emit(Template, start, i+2)
			s.pos = i + 2
			s.templates = append(s.templates, 0)
			s.lastSig = '('
			s.lastWord = ""
			return
		}
		i++
	}
	s.emit(Template, start, len(src))
	s.pos = len(src)
}

// scanRegex returns the offset just past the regex literal body and flags.
func (s *scanner) scanRegex(from int) int {
	src := s.src
	i := from
	inClass := false
	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
			continue
		case c == '\n':
			return i
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			i++
			for i < len(src) && isIdentByte(src[i]) {
				i++
			}
			return i
		}
		i++
	}
	return len(src)
}

func (s *scanner) regexAllowed() bool {
	switch s.lastSig {
	case 0:
		return true
	case 'a':
		return regexPrefixKeywords[s.lastWord]
	case ')', ']', '}', '"':
		return false
	}
	return true
}

// jsxClosingTag reports whether the '/' at pos follows a '<', as in "</div>".
func (s *scanner) jsxClosingTag() bool {
	return s.pos > 0 && s.src[s.pos-1] == '<'
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// IsIdentByte reports whether c can appear in a JavaScript identifier.
// Non-ASCII bytes are treated as identifier bytes.
func IsIdentByte(c byte) bool {
	return isIdentByte(c)
}

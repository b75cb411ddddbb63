// Package langdetect classifies source files as TypeScript or JavaScript
// dialects using go-enry.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a source dialect srcfix can rewrite.
type Language string

const (
	Unknown    Language = ""
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	JavaScript Language = "javascript"
	JSX        Language = "jsx"
)

// All returns every supported language.
func All() []Language {
	return []Language{TypeScript, TSX, JavaScript, JSX}
}

func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return string(l)
}

// IsTypeScript reports whether l carries type annotations.
func (l Language) IsTypeScript() bool {
	return l == TypeScript || l == TSX
}

// Supported reports whether l is a language srcfix rewrites.
func (l Language) Supported() bool {
	return l != Unknown
}

// Classify determines the dialect of the file at path. Content resolves
// extensions shared with other languages, such as Qt translation files that
// also use ".ts".
func Classify(path string, content []byte) Language {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	var lang string
	if len(content) > 0 {
		lang = enry.GetLanguage(base, content)
	} else if l, safe := enry.GetLanguageByExtension(base); safe {
		lang = l
	}

	switch lang {
	case "TypeScript":
		if ext == ".tsx" {
			return TSX
		}
		return TypeScript
	case "TSX":
		return TSX
	case "JavaScript":
		if ext == ".jsx" {
			return JSX
		}
		return JavaScript
	case "":
		return byExtension(ext)
	default:
		return Unknown
	}
}

func byExtension(ext string) Language {
	switch ext {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	case ".js", ".mjs", ".cjs":
		return JavaScript
	case ".jsx":
		return JSX
	default:
		return Unknown
	}
}

// IsGenerated reports whether the file looks machine generated or minified.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, content)
}

// IsVendored reports whether path lies in a vendored dependency tree.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

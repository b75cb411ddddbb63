package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yaklabco/srcfix/pkg/lexer"
)

// maxExtendsDepth bounds how many "extends" links are followed.
const maxExtendsDepth = 5

// TSConfigHints are the import settings inferred from a tsconfig.json.
type TSConfigHints struct {
	// Path is the tsconfig.json that was read.
	Path string

	// Alias is the root alias, e.g. "@" for a "@/*" path mapping.
	Alias string

	// BaseDir is the directory the alias resolves to.
	BaseDir string

	// Directories are the non-hidden subdirectories of BaseDir.
	Directories []string
}

// ReadTSConfig reads compilerOptions.paths from a tsconfig.json, following
// relative "extends" links. It returns nil hints when no wildcard mapping
// is declared.
func ReadTSConfig(path string) (*TSConfigHints, error) {
	return readTSConfig(path, 0)
}

func readTSConfig(path string, depth int) (*TSConfigHints, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tsconfig: %w", err)
	}

	doc := stripJSONComments(string(content))
	dir := filepath.Dir(path)

	baseURL := gjson.Get(doc, "compilerOptions.baseUrl").String()

	var alias, target string
	gjson.Get(doc, "compilerOptions.paths").ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if !strings.HasSuffix(k, "/*") {
			return true
		}
		first := value.Get("0").String()
		if first == "" {
			return true
		}
		alias = strings.TrimSuffix(k, "/*")
		target = strings.TrimSuffix(strings.TrimSuffix(first, "*"), "/")
		return false
	})

	if alias == "" {
		parent := gjson.Get(doc, "extends").String()
		if parent == "" || depth >= maxExtendsDepth || !isRelative(parent) {
			return nil, nil
		}
		if !strings.HasSuffix(parent, ".json") {
			parent += ".json"
		}
		return readTSConfig(filepath.Join(dir, parent), depth+1)
	}

	baseDir := filepath.Clean(filepath.Join(dir, baseURL, target))
	dirs, err := listSourceDirs(baseDir)
	if err != nil {
		return nil, err
	}

	return &TSConfigHints{
		Path:        path,
		Alias:       alias,
		BaseDir:     baseDir,
		Directories: dirs,
	}, nil
}

func isRelative(p string) bool {
	return strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

// stripJSONComments blanks out comments so the JSONC that tsc accepts
// parses as JSON. Offsets are preserved.
func stripJSONComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for _, r := range lexer.Scan(src).Regions() {
		text := src[r.Start:r.End]
		if r.Kind.IsComment() {
			text = blank(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

func blank(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		return ' '
	}, s)
}

func listSourceDirs(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", baseDir, err)
	}

	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || name == "node_modules" {
			continue
		}
		dirs = append(dirs, name)
	}
	slices.Sort(dirs)
	return dirs, nil
}

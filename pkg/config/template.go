package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule family; otherwise a minimal template is written.
	Full bool

	// Format is "yaml" or "json".
	Format string
}

// FamilyInfo describes a rule family for template generation.
type FamilyInfo struct {
	ID          string
	Description string
	Languages   []string
	Enabled     bool
}

// FamilyInfoProvider returns information about the registered families.
// It decouples this package from pkg/rules.
type FamilyInfoProvider func() []FamilyInfo

// DefaultFamilyInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for family info.
var DefaultFamilyInfoProvider FamilyInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Extensions to rewrite
# extensions: [.ts, .tsx, .js, .jsx, .mjs, .cjs]

# Glob patterns to skip
# ignore:
#   - "**/node_modules/**"
#   - "**/*.d.ts"

# Import path normalization
imports:
  root_alias: "@"
  directories: [app, components, hooks, lib, middleware]
  # max_depth: 4
  # strategy: ladder   # or any-depth

# Rule families
# families:
#   empty-imports:
#     enabled: true
#   react-import:
#     enabled: true
#   unused-index:
#     enabled: true
`)
}

func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Every setting below is shown with its default value.\n\n")

	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}
	buf.Write(body)

	families := familyInfos()
	sort.Slice(families, func(i, j int) bool { return families[i].ID < families[j].ID })

	buf.WriteString("\n# Rule families:\n")
	for _, f := range families {
		fmt.Fprintf(&buf, "#\n#   %s (default: %s)\n", f.ID, onOff(f.Enabled))
		fmt.Fprintf(&buf, "#     %s\n", wrapComment(f.Description, commentWrapWidth))
		if len(f.Languages) > 0 {
			fmt.Fprintf(&buf, "#     Languages: %s\n", strings.Join(f.Languages, ", "))
		}
	}
	return buf.Bytes(), nil
}

func familyInfos() []FamilyInfo {
	if DefaultFamilyInfoProvider != nil {
		return DefaultFamilyInfoProvider()
	}

	defaults := DefaultFamilies()
	infos := make([]FamilyInfo, 0, len(defaults))
	for id, enabled := range defaults {
		infos = append(infos, FamilyInfo{ID: id, Enabled: enabled})
	}
	return infos
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

// wrapComment wraps text to maxWidth, continuing on indented comment lines.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n#     ")
}

// templateJSON renders the default configuration as indented JSON.
func templateJSON() ([]byte, error) {
	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(body, &generic); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# srcfix configuration
# See: https://github.com/yaklabco/srcfix`
}

package splice

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a set of splices loaded from a YAML document.
type Plan struct {
	Splices []Splice
}

type planFile struct {
	Splices []planEntry `yaml:"splices"`
}

type planEntry struct {
	Start *int    `yaml:"start"`
	End   *int    `yaml:"end"`
	Text  *string `yaml:"text"`
}

// LoadPlan reads a splice plan from path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read splice plan: %w", err)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// ParsePlan decodes a splice plan. Each entry needs start and end; text may
// be omitted to delete the range. Replacement text always ends with a
// newline so it never fuses with the line that follows it.
func ParsePlan(data []byte) (*Plan, error) {
	var raw planFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse splice plan: %w", err)
	}

	plan := &Plan{Splices: make([]Splice, 0, len(raw.Splices))}
	for i, entry := range raw.Splices {
		if entry.Start == nil || entry.End == nil {
			return nil, fmt.Errorf("splice %d: start and end are required", i)
		}

		s := Splice{Start: *entry.Start, End: *entry.End}
		if entry.Text != nil && *entry.Text != "" {
			text := *entry.Text
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			s.Lines = SplitLines(text)
		}
		plan.Splices = append(plan.Splices, s)
	}
	return plan, nil
}

// ApplyText splits text into lines, applies the plan and joins the result.
func (p *Plan) ApplyText(text string) (string, error) {
	lines, err := Apply(SplitLines(text), p.Splices)
	if err != nil {
		return "", err
	}
	return JoinLines(lines), nil
}

package reporter

import (
	"fmt"

	"github.com/yaklabco/srcfix/pkg/config"
)

// Format is an output format.
type Format = config.OutputFormat

// Output formats.
const (
	FormatText = config.FormatText
	FormatJSON = config.FormatJSON
	FormatDiff = config.FormatDiff
)

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	f := Format(name)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff", name)
	}
	return f, nil
}

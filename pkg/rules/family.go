// Package rules defines the rewrite rule families srcfix applies. The
// default set normalizes import paths, renames catch bindings and widens
// any to unknown; empty import cleanup, unused React default imports and
// unused index parameters are opt-in.
package rules

import (
	"slices"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/langdetect"
	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// Family is a named group of rules that is enabled or disabled as a unit.
type Family interface {
	ID() string
	Description() string

	// Languages lists the dialects the family applies to.
	Languages() []langdetect.Language

	// Build compiles the family's rules for cfg.
	Build(cfg *config.Config) (rewrite.Pass, error)
}

// AppliesTo reports whether f runs on files of lang.
func AppliesTo(f Family, lang langdetect.Language) bool {
	return slices.Contains(f.Languages(), lang)
}

// Info returns the family's metadata in the form used by config templates.
func Info(f Family) config.FamilyInfo {
	langs := make([]string, 0, len(f.Languages()))
	for _, l := range f.Languages() {
		langs = append(langs, l.String())
	}
	return config.FamilyInfo{
		ID:          f.ID(),
		Description: f.Description(),
		Languages:   langs,
		Enabled:     config.DefaultFamilies()[f.ID()],
	}
}

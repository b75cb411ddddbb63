// Package config defines the configuration types for srcfix.
// These types are plain data; loading and layering live in internal/configloader.
package config

import "slices"

// Rule family identifiers.
const (
	FamilyImports      = "imports"
	FamilyCatchBinding = "catch-binding"
	FamilyTypeWidening = "type-widening"
	FamilyEmptyImports = "empty-imports"
	FamilyReactImport  = "react-import"
	FamilyUnusedIndex  = "unused-index"
)

// Strategy selects how relative import depth is matched.
type Strategy string

const (
	// StrategyLadder emits one rule per depth, deepest first, up to MaxDepth.
	StrategyLadder Strategy = "ladder"
	// StrategyAnyDepth matches any number of "../" segments with one rule.
	StrategyAnyDepth Strategy = "any-depth"
)

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	return s == StrategyLadder || s == StrategyAnyDepth
}

// OutputFormat selects the report format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// FamilyConfig toggles a rule family.
type FamilyConfig struct {
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`
}

// ImportsConfig parameterizes the import path normalizer.
type ImportsConfig struct {
	// RootAlias replaces the "../" prefix, e.g. "@" gives "@/lib/x".
	RootAlias string `mapstructure:"root_alias" yaml:"root_alias"`

	// Directories are the top-level directories eligible for rewriting.
	Directories []string `mapstructure:"directories" yaml:"directories"`

	// MaxDepth is the deepest "../" chain rewritten by the ladder strategy.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	Strategy Strategy `mapstructure:"strategy" yaml:"strategy"`
}

// WarningsConfig parameterizes the warning-fix families.
type WarningsConfig struct {
	// UnusedMarker is the prefix that marks a binding as intentionally unused.
	UnusedMarker string `mapstructure:"unused_marker" yaml:"unused_marker"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode"    yaml:"mode"`
}

// Config is the root configuration structure for srcfix.
type Config struct {
	// Extensions lists the file extensions that are rewritten.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Include restricts discovery to paths matching any of these globs.
	Include []string `mapstructure:"include" yaml:"include"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Families toggles rule families by ID.
	Families map[string]FamilyConfig `mapstructure:"families" yaml:"families"`

	Imports  ImportsConfig  `mapstructure:"imports"  yaml:"imports"`
	Warnings WarningsConfig `mapstructure:"warnings" yaml:"warnings"`
	Backups  BackupsConfig  `mapstructure:"backups"  yaml:"backups"`

	// VerifyFixedPoint re-runs the rules on every rewritten file and refuses
	// to write output that would change again.
	VerifyFixedPoint bool `mapstructure:"verify_fixed_point" yaml:"verify_fixed_point"`

	// TSConfig points at a tsconfig.json whose path aliases seed Imports.
	TSConfig string `mapstructure:"tsconfig" yaml:"tsconfig,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun reports changes without writing files.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Check is DryRun that fails when any file would change.
	Check bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Only restricts the run to these families.
	Only []string `mapstructure:"-" yaml:"-"`

	// Disable turns these families off.
	Disable []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`

	// NoVerify skips the fixed-point check.
	NoVerify bool `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions are the extensions rewritten when none are configured.
func DefaultExtensions() []string {
	return []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}
}

// DefaultDirectories are the recognized top-level source directories.
func DefaultDirectories() []string {
	return []string{"app", "components", "hooks", "lib", "middleware"}
}

// DefaultFamilies returns the default enablement of every family.
func DefaultFamilies() map[string]bool {
	return map[string]bool{
		FamilyImports:      true,
		FamilyCatchBinding: true,
		FamilyTypeWidening: true,
		FamilyEmptyImports: false,
		FamilyReactImport:  false,
		FamilyUnusedIndex:  false,
	}
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	families := make(map[string]FamilyConfig)
	for id, enabled := range DefaultFamilies() {
		families[id] = FamilyConfig{Enabled: &enabled}
	}

	return &Config{
		Extensions: DefaultExtensions(),
		Ignore:     []string{"**/node_modules/**", "**/*.d.ts"},
		Families:   families,
		Imports: ImportsConfig{
			RootAlias:   "@",
			Directories: DefaultDirectories(),
			MaxDepth:    4,
			Strategy:    StrategyLadder,
		},
		Warnings: WarningsConfig{
			UnusedMarker: "_",
		},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		VerifyFixedPoint: true,
		Format:           FormatText,
		Jobs:             0, // 0 means use GOMAXPROCS
	}
}

// FamilyEnabled reports whether the family should run. --only wins over
// --disable, which wins over the families section, which wins over the
// built-in default. Families with no built-in default are enabled.
func (c *Config) FamilyEnabled(id string) bool {
	if len(c.Only) > 0 {
		return slices.Contains(c.Only, id)
	}
	if slices.Contains(c.Disable, id) {
		return false
	}
	if fc, ok := c.Families[id]; ok && fc.Enabled != nil {
		return *fc.Enabled
	}
	if enabled, ok := DefaultFamilies()[id]; ok {
		return enabled
	}
	return true
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups
}

// Verifies reports whether rewritten files are checked for a fixed point.
func (c *Config) Verifies() bool {
	return c.VerifyFixedPoint && !c.NoVerify
}

// Writes reports whether rewritten files are written back to disk.
func (c *Config) Writes() bool {
	return !c.DryRun && !c.Check
}

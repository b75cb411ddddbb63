package configloader

import (
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/srcfix/pkg/config"
)

// Explicit records which inferable settings a layer set.
type Explicit struct {
	RootAlias   bool
	Directories bool
}

func (e Explicit) or(other Explicit) Explicit {
	return Explicit{
		RootAlias:   e.RootAlias || other.RootAlias,
		Directories: e.Directories || other.Directories,
	}
}

// presence decodes only the keys whose presence matters.
type presence struct {
	Imports struct {
		RootAlias   *string  `yaml:"root_alias"`
		Directories []string `yaml:"directories"`
	} `yaml:"imports"`
}

// overlay decodes a YAML layer on top of base. Keys absent from data keep
// their current values; sequences replace, the families map merges by key.
func overlay(base *config.Config, data []byte) (*config.Config, Explicit, error) {
	result := base.Clone()
	if result.Families == nil {
		result.Families = make(map[string]config.FamilyConfig)
	}
	if err := yaml.Unmarshal(data, result); err != nil {
		return nil, Explicit{}, fmt.Errorf("parse YAML: %w", err)
	}

	var p presence
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, Explicit{}, fmt.Errorf("parse YAML: %w", err)
	}

	return result, Explicit{
		RootAlias:   p.Imports.RootAlias != nil,
		Directories: p.Imports.Directories != nil,
	}, nil
}

// mergeCLI applies flag values on top of base. Non-zero scalars and non-nil
// slices win; ignore patterns from flags add to the configured ones.
func mergeCLI(base, override *config.Config) (*config.Config, Explicit) {
	var explicit Explicit
	if override == nil {
		return base, explicit
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.TSConfig != "" {
		result.TSConfig = override.TSConfig
	}

	// Booleans can only be switched on from flags.
	if override.DryRun {
		result.DryRun = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.NoVerify {
		result.NoVerify = true
	}

	if override.Imports.RootAlias != "" {
		result.Imports.RootAlias = override.Imports.RootAlias
		explicit.RootAlias = true
	}
	if override.Imports.Directories != nil {
		result.Imports.Directories = override.Imports.Directories
		explicit.Directories = true
	}
	if override.Imports.MaxDepth != 0 {
		result.Imports.MaxDepth = override.Imports.MaxDepth
	}
	if override.Imports.Strategy != "" {
		result.Imports.Strategy = override.Imports.Strategy
	}
	if override.Warnings.UnusedMarker != "" {
		result.Warnings.UnusedMarker = override.Warnings.UnusedMarker
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Include != nil {
		result.Include = override.Include
	}
	if override.Ignore != nil {
		result.Ignore = append(result.Ignore, override.Ignore...)
	}
	if override.Only != nil {
		result.Only = override.Only
	}
	if override.Disable != nil {
		result.Disable = override.Disable
	}

	result.Families = mergeFamilies(result.Families, override.Families)

	return result, explicit
}

// mergeFamilies merges family toggles; set values in override win.
func mergeFamilies(base, override map[string]config.FamilyConfig) map[string]config.FamilyConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.FamilyConfig, len(base)+len(override))
	maps.Copy(result, base)
	for id, fc := range override {
		if fc.Enabled == nil {
			if _, ok := result[id]; ok {
				continue
			}
		}
		result[id] = fc
	}
	return result
}

package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration after a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return body, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from data
// are left at their zero value.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Families == nil {
		cfg.Families = make(map[string]FamilyConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Include = slices.Clone(c.Include)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Imports.Directories = slices.Clone(c.Imports.Directories)
	clone.Only = slices.Clone(c.Only)
	clone.Disable = slices.Clone(c.Disable)

	if c.Families != nil {
		clone.Families = make(map[string]FamilyConfig, len(c.Families))
		for id, fc := range c.Families {
			if fc.Enabled != nil {
				enabled := *fc.Enabled
				fc.Enabled = &enabled
			}
			clone.Families[id] = fc
		}
	}
	return &clone
}

// YAMLIndent returns the YAML indentation used for generated files.
func YAMLIndent() int {
	return 2
}

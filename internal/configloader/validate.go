package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/lexer"
	"github.com/yaklabco/srcfix/pkg/rules"
)

// ErrConfig is wrapped by every configuration error.
var ErrConfig = errors.New("invalid configuration")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "imports.strategy").
	Field string

	Value any

	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap lets errors.Is match ErrConfig.
func (e *ValidationError) Unwrap() error {
	return ErrConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown families.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !IsValidBackupMode(cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateImports(cfg, result)
	validateWarnings(cfg, result)
	validateFamilies(cfg, result)
	validatePatterns("ignore", cfg.Ignore, result)
	validatePatterns("include", cfg.Include, result)

	return result
}

func validateImports(cfg *config.Config, result *ValidationResult) {
	imp := cfg.Imports

	if !imp.Strategy.IsValid() {
		result.fail("imports.strategy", imp.Strategy,
			"invalid strategy %q; must be one of: ladder, any-depth", imp.Strategy)
	}
	if imp.MaxDepth < 1 {
		result.fail("imports.max_depth", imp.MaxDepth, "max_depth must be >= 1")
	}
	if strings.TrimSpace(imp.RootAlias) == "" {
		result.fail("imports.root_alias", imp.RootAlias, "root_alias must not be empty")
	} else if strings.ContainsAny(imp.RootAlias, " \t\n'\"`") {
		result.fail("imports.root_alias", imp.RootAlias,
			"root_alias %q must not contain quotes or whitespace", imp.RootAlias)
	}
	for i, dir := range imp.Directories {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			result.fail(fmt.Sprintf("imports.directories[%d]", i), dir,
				"directory %q must be a single path segment", dir)
		}
	}
}

func validateWarnings(cfg *config.Config, result *ValidationResult) {
	marker := cfg.Warnings.UnusedMarker
	if !IsValidUnusedMarker(marker) {
		result.fail("warnings.unused_marker", marker,
			"unused_marker %q must be a non-empty identifier prefix", marker)
	}
}

func validateFamilies(cfg *config.Config, result *ValidationResult) {
	known := func(id string) bool {
		_, ok := rules.DefaultRegistry.Get(id)
		return ok
	}

	for id := range cfg.Families {
		if !known(id) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "families." + id,
				Value:   id,
				Message: fmt.Sprintf("unknown rule family %q; it will be ignored", id),
			})
		}
	}
}

// validatePatterns checks that glob patterns are well formed.
func validatePatterns(field string, patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("%s[%d]", field, i), pattern,
				"invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	switch fsutil.BackupMode(mode) {
	case fsutil.BackupModeSidecar, fsutil.BackupModeNone:
		return true
	default:
		return false
	}
}

// IsValidUnusedMarker reports whether marker can prefix an identifier.
func IsValidUnusedMarker(marker string) bool {
	if marker == "" {
		return false
	}
	for i := range len(marker) {
		c := marker[i]
		if !lexer.IsIdentByte(c) || (i == 0 && c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

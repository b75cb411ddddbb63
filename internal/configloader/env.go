package configloader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/srcfix/pkg/config"
)

// EnvPrefix prefixes every srcfix environment variable.
const EnvPrefix = "SRCFIX_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		set(cfg, v)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		set(cfg, i)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		set(cfg, SplitList(v))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"EXTENSIONS", "Comma-separated file extensions to rewrite",
		listVar(func(c *config.Config, v []string) { c.Extensions = v })},
	{"INCLUDE", "Comma-separated globs restricting discovery",
		listVar(func(c *config.Config, v []string) { c.Include = v })},
	{"IGNORE", "Comma-separated globs to skip",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"ONLY", "Comma-separated rule families to run exclusively",
		listVar(func(c *config.Config, v []string) { c.Only = v })},
	{"DISABLE", "Comma-separated rule families to turn off",
		listVar(func(c *config.Config, v []string) { c.Disable = v })},
	{"ROOT_ALIAS", "Root alias for import rewriting, e.g. @",
		stringVar(func(c *config.Config, v string) { c.Imports.RootAlias = v })},
	{"DIRECTORIES", "Comma-separated top-level directories eligible for import rewriting",
		listVar(func(c *config.Config, v []string) { c.Imports.Directories = v })},
	{"MAX_DEPTH", "Deepest ../ chain rewritten by the ladder strategy",
		intVar(func(c *config.Config, v int) { c.Imports.MaxDepth = v })},
	{"STRATEGY", "Import strategy: ladder or any-depth",
		stringVar(func(c *config.Config, v string) { c.Imports.Strategy = config.Strategy(v) })},
	{"UNUSED_MARKER", "Prefix marking an intentionally unused binding",
		stringVar(func(c *config.Config, v string) { c.Warnings.UnusedMarker = v })},
	{"BACKUPS_ENABLED", "Write backups before rewriting: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"NO_BACKUPS", "Disable backups: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
	{"VERIFY_FIXED_POINT", "Refuse rewrites that are not idempotent: true or false",
		boolVar(func(c *config.Config, v bool) { c.VerifyFixedPoint = v })},
	{"TSCONFIG", "tsconfig.json used to infer the root alias",
		stringVar(func(c *config.Config, v string) { c.TSConfig = v })},
	{"DRY_RUN", "Report changes without writing: true or false",
		boolVar(func(c *config.Config, v bool) { c.DryRun = v })},
	{"JOBS", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config, v int) { c.Jobs = v })},
	{"FORMAT", "Output format: text, json or diff",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
}

// LoadFromEnv applies SRCFIX_* variables found by lookup to cfg. It reports
// whether the root alias or the directory list was set.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) (Explicit, error) {
	var explicit Explicit
	if cfg == nil || lookup == nil {
		return explicit, nil
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return explicit, fmt.Errorf("%s: %w", name, err)
		}
		switch ev.suffix {
		case "ROOT_ALIAS":
			explicit.RootAlias = true
		case "DIRECTORIES":
			explicit.Directories = true
		}
	}
	return explicit, nil
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[EnvPrefix+ev.suffix] = ev.description
	}
	return out
}

// EnvVarNames returns the supported variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, EnvPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}

// SplitList splits a comma-separated value, trimming blanks.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package cli provides the Cobra command structure for srcfix.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	chdir      string
}

// workDir returns the directory the command runs in.
func (g *globalFlags) workDir() (string, error) {
	if g.chdir != "" {
		dir, err := filepath.Abs(g.chdir)
		if err != nil {
			return "", fmt.Errorf("resolve -C directory: %w", err)
		}
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// explicitConfig resolves --config against the working directory.
func (g *globalFlags) explicitConfig(workDir string) string {
	if g.configPath == "" || filepath.IsAbs(g.configPath) {
		return g.configPath
	}
	return filepath.Join(workDir, g.configPath)
}

// NewRootCommand creates the root srcfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "srcfix",
		Short: "Batch rewriter for TypeScript and JavaScript source trees",
		Long: `srcfix rewrites TypeScript and JavaScript source trees in bulk.

It normalizes deep relative imports to a root alias, renames unused catch
bindings, widens explicit any to unknown and applies line splice plans.
Every rewrite is comment and string aware, idempotent and written
atomically; dry runs print the changes as unified diffs.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !pretty.ValidColorMode(globals.color) {
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", globals.color))
			}
			if globals.debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&globals.chdir, "chdir", "C", "",
		"run as if srcfix was started in this directory")

	rootCmd.AddCommand(newFixCommand(globals))
	rootCmd.AddCommand(newSpliceCommand(globals))
	rootCmd.AddCommand(newRestoreCommand(globals))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

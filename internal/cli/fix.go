package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/reporter"
	"github.com/yaklabco/srcfix/pkg/runner"
)

type fixFlags struct {
	format   string
	strategy string
	verbose  bool
	compact  bool
}

func newFixCommand(globals *globalFlags) *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Rewrite source files in place",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, globals, &cfg, flags)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Rewrite TypeScript and JavaScript files in place.

By default, rewrites every .ts, .tsx, .js, .jsx, .mjs and .cjs file under
the current directory, skipping hidden directories and node_modules.
Specify paths to rewrite specific files or directories.

Examples:
  srcfix fix                           # Rewrite the current directory
  srcfix fix app/ lib/                 # Rewrite two directories
  srcfix fix --dry-run                 # Show what would change
  srcfix fix --check                   # Exit 2 when anything would change
  srcfix fix --format diff --dry-run   # Print unified diffs
  srcfix fix --only imports            # Run a single rule family
  srcfix fix --root-alias '~' --dirs app,lib`

func runFix(cmd *cobra.Command, args []string, globals *globalFlags, cfg *config.Config, flags *fixFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Only values set on the command line override configuration.
	cfg.Format = config.OutputFormat(flags.format)
	cfg.Imports.Strategy = config.Strategy(flags.strategy)

	workDir, err := globals.workDir()
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.explicitConfig(workDir),
		CLIConfig:    cfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}
	if hints := loadResult.TSConfig; hints != nil {
		logger.Debug("inferred import settings",
			logging.FieldSource, hints.Path,
			"alias", finalCfg.Imports.RootAlias,
			"directories", finalCfg.Imports.Directories,
		)
	}

	processor, err := runner.NewProcessor(finalCfg, nil)
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}
	processor.Root = workDir

	logger.Debug("configuration loaded",
		logging.FieldDryRun, !finalCfg.Writes(),
		logging.FieldCheck, finalCfg.Check,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFamily, processor.Families(),
	)

	runOpts := runner.OptionsFromConfig(finalCfg, workDir, args)

	result, err := runner.New(processor).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("rewrite run failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      finalCfg.Format,
		Color:       globals.color,
		Applied:     finalCfg.Writes(),
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitFileErrors:
		return &ExitError{Code: ExitFileErrors, Err: ErrFilesFailed}
	case ExitChangesPending:
		return &ExitError{Code: ExitChangesPending, Err: ErrChangesPending}
	default:
		return nil
	}
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	f := cmd.Flags()

	f.BoolVar(&cfg.DryRun, "dry-run", false, "report changes without writing files")
	f.BoolVar(&cfg.Check, "check", false, "like --dry-run, but exit 2 when files would change")
	f.StringVar(&flags.format, "format", "", "output format: text, json, diff (default text)")
	f.IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "list skipped files and print a detailed summary")
	f.BoolVar(&flags.compact, "compact", false, "print JSON without indentation")

	f.StringSliceVar(&cfg.Only, "only", nil, "run only these rule families")
	f.StringSliceVar(&cfg.Disable, "disable", nil, "rule families to turn off")
	f.StringSliceVar(&cfg.Ignore, "ignore", nil, "additional glob patterns to skip")
	f.StringSliceVar(&cfg.Include, "include", nil, "only rewrite paths matching these globs")
	f.StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to rewrite (default .ts,.tsx,.js,.jsx,.mjs,.cjs)")

	f.StringVar(&cfg.Imports.RootAlias, "root-alias", "", "root alias for rewritten imports (default @)")
	f.StringSliceVar(&cfg.Imports.Directories, "dirs", nil, "top-level directories eligible for import rewriting")
	f.IntVar(&cfg.Imports.MaxDepth, "max-depth", 0, "deepest ../ chain rewritten by the ladder strategy (default 4)")
	f.StringVar(&flags.strategy, "strategy", "", "import depth strategy: ladder, any-depth")
	f.StringVar(&cfg.TSConfig, "tsconfig", "", "tsconfig.json to infer the root alias from")
	f.StringVar(&cfg.Warnings.UnusedMarker, "unused-marker", "", "prefix marking intentionally unused bindings (default _)")

	f.BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	f.BoolVar(&cfg.NoVerify, "no-verify", false, "skip the fixed-point check on rewritten files")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/pkg/config"
	"github.com/yaklabco/srcfix/pkg/fix"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/splice"
)

type spliceFlags struct {
	plan      string
	dryRun    bool
	noBackups bool
}

func newSpliceCommand(globals *globalFlags) *cobra.Command {
	flags := &spliceFlags{}

	cmd := &cobra.Command{
		Use:   "splice FILE --plan PLAN",
		Short: "Replace line ranges in a file from a splice plan",
		Long: `Apply a YAML splice plan to one file.

A plan lists zero-based, half-open line ranges and their replacement text.
Ranges are given against the original file and must not overlap; all of
them are applied or none is.

  splices:
    - start: 3
      end: 5
      text: |
        export const limit = 10;
    - start: 12
      end: 13

Examples:
  srcfix splice app/page.tsx --plan plan.yaml
  srcfix splice app/page.tsx --plan plan.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplice(cmd, args[0], globals, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.plan, "plan", "p", "", "YAML splice plan (required)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the diff without writing the file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation")

	return cmd
}

func runSplice(cmd *cobra.Command, file string, globals *globalFlags, flags *spliceFlags) error {
	logger := logging.Default()

	if flags.plan == "" {
		return usageError(errors.New("--plan is required"))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := globals.workDir()
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   globals.explicitConfig(workDir),
		IgnoreTSConfig: true,
		CLIConfig:      &config.Config{DryRun: flags.dryRun, NoBackups: flags.noBackups},
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := loadResult.Config

	plan, err := splice.LoadPlan(resolve(workDir, flags.plan))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return usageError(err)
	}

	path := resolve(workDir, file)
	original, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	modified, err := plan.ApplyText(original)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if modified == original {
		logger.Info("no changes", logging.FieldPath, file)
		return nil
	}

	if !cfg.Writes() {
		diff, err := fix.GenerateDiff(filepath.ToSlash(file), original, modified)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(cmd.OutOrStdout(), diff.FullString()); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
		return nil
	}

	backedUp := false
	if cfg.BackupsEnabled() {
		backedUp, err = fsutil.Backup(ctx, snap, original, fsutil.BackupMode(cfg.Backups.Mode))
		if err != nil {
			return fmt.Errorf("backup %s: %w", file, err)
		}
	}

	if err := snap.Replace(ctx, modified); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	logger.Info("applied splices",
		logging.FieldPath, file,
		logging.FieldFixes, len(plan.Splices),
		logging.FieldBackup, backedUp,
	)
	return nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

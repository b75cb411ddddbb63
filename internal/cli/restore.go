package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/pkg/fsutil"
	"github.com/yaklabco/srcfix/pkg/runner"
)

type restoreFlags struct {
	keep bool
}

func newRestoreCommand(globals *globalFlags) *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore rewritten files from their backups",
		Long: `Copy sidecar backups written by "srcfix fix" back over the files they
were taken from, then delete the backups.

Files are selected the same way "srcfix fix" selects them. Files without a
backup are left alone.

Examples:
  srcfix restore                # Undo every backed-up rewrite
  srcfix restore app/           # Undo rewrites under app/ only
  srcfix restore --keep         # Restore but keep the backup files`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, globals, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.keep, "keep", false, "keep backup files after restoring")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, globals *globalFlags, flags *restoreFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := globals.workDir()
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.explicitConfig(workDir),
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := loadResult.Config

	// Backups from earlier runs stay restorable after they are turned off.
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == fsutil.BackupModeNone {
		mode = fsutil.BackupModeSidecar
	}

	files, err := runner.Discover(ctx, runner.OptionsFromConfig(cfg, workDir, args))
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	restored, failed := 0, 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := fsutil.Restore(ctx, file, mode)
		if err != nil {
			failed++
			logger.Warn("restore failed", logging.FieldPath, file, logging.FieldError, err)
			continue
		}
		if !ok {
			continue
		}
		restored++

		if !flags.keep {
			if _, err := fsutil.RemoveBackup(file, mode); err != nil {
				logger.Warn("remove backup failed", logging.FieldPath, file, logging.FieldError, err)
			}
		}

		rel, relErr := filepath.Rel(workDir, file)
		if relErr != nil {
			rel = file
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	logger.Debug("restore complete",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldFilesRestored, restored,
		logging.FieldFilesErrored, failed,
	)

	if failed > 0 {
		return &ExitError{Code: ExitFileErrors, Err: ErrFilesFailed}
	}
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/srcfix/internal/configloader"
	"github.com/yaklabco/srcfix/internal/logging"
	"github.com/yaklabco/srcfix/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand(globals *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new srcfix configuration file",
		Long: `Create a .srcfix.yml configuration file in the current directory with
the default settings. Edit it to change the import alias, the directories
that are rewritten, or which rule families run.

Examples:
  srcfix init                     Create a minimal .srcfix.yml
  srcfix init --full              Document every rule family
  srcfix init --format json       Create .srcfix.json instead
  srcfix init --output ci.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, globals, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule family")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .srcfix.yml or .srcfix.json)")

	return cmd
}

func runInit(cmd *cobra.Command, globals *globalFlags, flags *initFlags) error {
	logger := logging.Default()

	if flags.format != "yaml" && flags.format != formatJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	workDir, err := globals.workDir()
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigName
		if flags.format == formatJSON {
			outputPath = ".srcfix.json"
		}
	}
	absPath := resolve(workDir, outputPath)

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isInteractive(cmd.InOrStdin()) {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite? [y/N] ", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'srcfix rules' to see the available rule families")

	return nil
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

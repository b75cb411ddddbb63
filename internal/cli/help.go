package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/srcfix/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Heading    lipgloss.Style
	Command    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style

	// Dim renders flag types and examples.
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Heading: plain, Command: plain, Subcommand: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ .CommandPath }} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trim":       trimTrailingWhitespaces,
	}
}

// flagUsages styles pflag's usage block: flag names in the flag color and
// value types dimmed, descriptions untouched.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" || !strings.HasPrefix(trimmed, "-") {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	// pflag separates the flag column from the description with 3+ spaces.
	cut := strings.Index(trimmed, "   ")
	if cut < 0 {
		return line
	}
	spec, rest := trimmed[:cut], trimmed[cut:]

	tokens := strings.Fields(spec)
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "-") {
			comma := strings.HasSuffix(tok, ",")
			tokens[i] = h.styles.Flag.Render(strings.TrimSuffix(tok, ","))
			if comma {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.Dim.Render(tok)
	}

	return indent + strings.Join(tokens, " ") + rest
}

// ApplyToCommand installs the styled templates on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	render := func(name, text string, out io.Writer, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(out, command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command.OutOrStderr(), command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

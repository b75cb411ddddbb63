package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/srcfix/internal/ui/pretty"
	"github.com/yaklabco/srcfix/pkg/rules"
)

const formatJSON = "json"

// familyInfo represents a rule family in JSON output.
type familyInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	Enabled     bool     `json:"enabledByDefault"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule families",
		Long: `List the rewrite rule families with their descriptions, the languages
they apply to and whether they run by default.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := familyInfos()

			switch format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "", "text":
				color, _ := cmd.Flags().GetString("color")
				return outputRulesText(cmd.OutOrStdout(), infos, color)
			default:
				return usageError(fmt.Errorf("invalid format %q: must be text or json", format))
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func familyInfos() []familyInfo {
	families := rules.DefaultRegistry.Families()
	infos := make([]familyInfo, 0, len(families))
	for _, f := range families {
		info := rules.Info(f)
		infos = append(infos, familyInfo{
			ID:          info.ID,
			Description: info.Description,
			Languages:   info.Languages,
			Enabled:     info.Enabled,
		})
	}
	return infos
}

func outputRulesText(w io.Writer, infos []familyInfo, color string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))

	width := 0
	for _, info := range infos {
		width = max(width, len(info.ID))
	}

	var b strings.Builder
	for _, info := range infos {
		state := styles.Success.Render("on ")
		if !info.Enabled {
			state = styles.Dim.Render("off")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", styles.Family.Render(fmt.Sprintf("%-*s", width, info.ID)), state,
			styles.Description.Render(info.Description))
		fmt.Fprintf(&b, "%*s  %s\n", width+3, "", styles.Dim.Render(strings.Join(info.Languages, ", ")))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	return nil
}

// outputRulesJSON outputs families as a JSON array.
func outputRulesJSON(w io.Writer, infos []familyInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

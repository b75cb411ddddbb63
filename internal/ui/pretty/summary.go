package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/srcfix/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line, such as
// "12 fixes in 3 files, 1 file failed (40 files checked)". applied selects
// between "fixes" and "fixes pending".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, applied bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
		stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))

	var parts []string
	if stats.TotalFixes == 0 {
		parts = append(parts, s.Success.Render("Nothing to fix"))
	} else {
		noun := plural(stats.TotalFixes, "fix", "fixes")
		if !applied {
			noun += " pending"
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s in %d %s",
			stats.TotalFixes, noun, stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a block with per-family counts.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	row := func(label string, value string) {
		fmt.Fprintf(&b, "  %-19s%s\n", label+":", value)
	}

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Dim.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	b.WriteString("\n")
	row("Total fixes", s.SummaryValue.Render(strconv.Itoa(stats.TotalFixes)))
	for _, family := range stats.Families() {
		fmt.Fprintf(&b, "    %-17s%s\n", family+":", s.Family.Render(strconv.Itoa(stats.ByFamily[family])))
	}

	b.WriteString("\n")
	if stats.FilesErrored > 0 {
		b.WriteString(s.Failure.Render("Completed with failures"))
	} else {
		b.WriteString(s.Success.Render("Completed"))
	}
	b.WriteString("\n")

	return b.String()
}

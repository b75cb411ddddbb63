package pretty

import (
	"fmt"

	"github.com/yaklabco/srcfix/pkg/rewrite"
)

// FormatFileHeader formats the line that introduces a file's changes.
func (s *Styles) FormatFileHeader(path string, fixes int, applied bool) string {
	verb := "would fix"
	if applied {
		verb = "fixed"
	}
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%s %d)", verb, fixes))
}

// FormatChange formats one change record as an indented line:
//
//	3x  imports  rewrite depth-2 relative import to @/ alias
func (s *Styles) FormatChange(rec rewrite.ChangeRecord) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Count.Render(fmt.Sprintf("%3dx", rec.Count)),
		s.Family.Render(rec.Family),
		s.Description.Render(rec.Description),
	)
}

// FormatFileError formats a file that could not be rewritten.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatSkip formats a file that was left alone on purpose.
func (s *Styles) FormatSkip(path, reason string) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Skipped.Render("skipped: "+reason))
}

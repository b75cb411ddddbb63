package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

const noNewlineMarker = "\\ No newline at end of file\n"

// Diff is a unified diff between the original and rewritten text of a file.
type Diff struct {
	Path      string
	Text      string
	Additions int
	Deletions int
}

// GenerateDiff renders a unified diff of original against modified.
// It returns nil when the texts are identical.
func GenerateDiff(path, original, modified string) (*Diff, error) {
	if original == modified {
		return nil, nil
	}

	name := strings.TrimPrefix(path, "/")
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(original),
		B:        diffLines(modified),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	d := &Diff{Path: path, Text: text}
	inHunk := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			d.Additions++
		case strings.HasPrefix(line, "-"):
			d.Deletions++
		}
	}
	return d, nil
}

// diffLines splits text after each newline. A final line without a
// terminator carries the no-newline marker so it never equals a terminated
// line and renders the way git expects.
func diffLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n" + noNewlineMarker
	return lines
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	name := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", name, name)
}

// String returns the diff body without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.Text
}

// FullString returns the git header followed by the diff body.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.Text
}

// HasChanges reports whether the diff has any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && d.Text != ""
}

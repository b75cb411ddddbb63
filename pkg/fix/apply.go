package fix

import "strings"

// Apply applies prepared edits to src in a single linear pass.
// Edits must come from Prepare.
func Apply(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.Text) - e.Len()
	}

	var out strings.Builder
	out.Grow(len(src) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(src[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.WriteString(src[cursor:])

	return out.String()
}

// ApplyAll prepares and applies edits, returning src untouched on error.
func ApplyAll(src string, edits []Edit) (string, error) {
	prepared, err := Prepare(edits, len(src))
	if err != nil {
		return src, err
	}
	return Apply(src, prepared), nil
}

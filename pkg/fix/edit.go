// Package fix applies byte-span edits to source text and renders the
// resulting change as a unified diff.
package fix

// Edit replaces the half-open byte range [Start, End) of a text with Text.
// A zero-width range is an insertion; an empty Text is a deletion.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Len returns the number of bytes the edit removes.
func (e Edit) Len() int {
	return e.End - e.Start
}

// Noop reports whether applying the edit to src would leave it unchanged.
func (e Edit) Noop(src string) bool {
	return src[e.Start:e.End] == e.Text
}

// Builder accumulates edits for a single text.
type Builder struct {
	edits []Edit
}

// Replace records a replacement of [start, end).
func (b *Builder) Replace(start, end int, text string) {
	b.edits = append(b.edits, Edit{Start: start, End: end, Text: text})
}

// Insert records an insertion at offset.
func (b *Builder) Insert(offset int, text string) {
	b.Replace(offset, offset, text)
}

// Delete records a deletion of [start, end).
func (b *Builder) Delete(start, end int) {
	b.Replace(start, end, "")
}

// Edits returns the accumulated edits in insertion order.
func (b *Builder) Edits() []Edit {
	return b.edits
}

// Len returns the number of accumulated edits.
func (b *Builder) Len() int {
	return len(b.edits)
}

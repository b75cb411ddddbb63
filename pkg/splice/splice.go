// Package splice replaces explicit line ranges of a buffer.
//
// Every splice is expressed in the coordinates of the original buffer. The
// set is validated up front, then applied from the highest start index down
// so that earlier replacements never shift the lines a later one targets.
package splice

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrOverlap is returned when two splices touch the same lines.
	ErrOverlap = errors.New("overlapping splices")

	// ErrOutOfRange is returned when a splice does not fit the buffer.
	ErrOutOfRange = errors.New("splice out of range")
)

// Splice replaces lines [Start, End) with Lines. Start == End inserts.
type Splice struct {
	Start int      `yaml:"start" json:"start"`
	End   int      `yaml:"end"   json:"end"`
	Lines []string `yaml:"-"     json:"lines"`
}

func (s Splice) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// RangeError reports a splice that lies outside the buffer.
type RangeError struct {
	Splice Splice
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("splice %s does not fit buffer of %d lines", e.Splice, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// OverlapError reports two splices whose ranges intersect.
type OverlapError struct {
	First  Splice
	Second Splice
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("splice %s overlaps %s", e.First, e.Second)
}

func (e *OverlapError) Unwrap() error {
	return ErrOverlap
}

// Validate checks splices against a buffer of n lines.
func Validate(splices []Splice, n int) error {
	for _, s := range splices {
		if s.Start < 0 || s.Start > s.End || s.End > n {
			return &RangeError{Splice: s, Len: n}
		}
	}

	sorted := slices.Clone(splices)
	slices.SortStableFunc(sorted, func(a, b Splice) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.Start < prev.End || (curr.Start == prev.Start && prev.Start == prev.End) {
			return &OverlapError{First: prev, Second: curr}
		}
	}
	return nil
}

// Apply returns a new buffer with every splice applied. The input slice is
// never modified; on error it is the caller's unchanged buffer that remains.
func Apply(lines []string, splices []Splice) ([]string, error) {
	if len(splices) == 0 {
		return lines, nil
	}
	if err := Validate(splices, len(lines)); err != nil {
		return nil, err
	}

	ordered := slices.Clone(splices)
	slices.SortStableFunc(ordered, func(a, b Splice) int {
		return b.Start - a.Start
	})

	out := slices.Clone(lines)
	for _, s := range ordered {
		out = slices.Replace(out, s.Start, s.End, s.Lines...)
	}
	return out, nil
}

// SplitLines splits text into lines that keep their terminators, so that
// JoinLines(SplitLines(s)) == s.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines concatenates lines produced by SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

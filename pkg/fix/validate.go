package fix

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidEdit is the sentinel wrapped by ValidationError and ConflictError.
var ErrInvalidEdit = errors.New("invalid edit")

// ValidationError describes an edit whose range does not fit the text.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEdit
}

// ConflictError describes two edits whose ranges overlap.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

func (e *ConflictError) Unwrap() error {
	return ErrInvalidEdit
}

// Validate checks that every edit lies within a text of length n.
func Validate(edits []Edit, n int) error {
	for _, e := range edits {
		switch {
		case e.Start < 0:
			return &ValidationError{Edit: e, Message: "start is negative"}
		case e.End < e.Start:
			return &ValidationError{Edit: e, Message: "end is before start"}
		case e.End > n:
			return &ValidationError{Edit: e, Message: fmt.Sprintf("end %d exceeds length %d", e.End, n)}
		}
	}
	return nil
}

// Sort orders edits by start, then end.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted
// slice. Two insertions at the same offset conflict because their relative
// order would be ambiguous.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.Start < prev.End || (curr.Start == prev.Start && prev.Len() == 0 && curr.Len() == 0) {
			return &ConflictError{First: prev, Second: curr}
		}
	}
	return nil
}

// Prepare validates, sorts and conflict-checks a copy of edits.
func Prepare(edits []Edit, n int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, n); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

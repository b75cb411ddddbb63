package rewrite

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFixedPoint is returned by Verify when a second run still rewrites.
var ErrNotFixedPoint = errors.New("rewrite did not reach a fixed point")

// FixedPointError carries the changes a second run would have made.
type FixedPointError struct {
	Changes []ChangeRecord
}

func (e *FixedPointError) Error() string {
	total := 0
	for _, c := range e.Changes {
		total += c.Count
	}
	return fmt.Sprintf("%v: second run made %d more change(s)", ErrNotFixedPoint, total)
}

func (e *FixedPointError) Unwrap() error {
	return ErrNotFixedPoint
}

// Pipeline runs passes in order over a single text.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns a pipeline of the non-nil passes.
func NewPipeline(passes ...Pass) *Pipeline {
	p := &Pipeline{}
	for _, pass := range passes {
		if pass != nil {
			p.passes = append(p.passes, pass)
		}
	}
	return p
}

// Passes returns the pass names in order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Empty reports whether the pipeline has no passes.
func (p *Pipeline) Empty() bool {
	return len(p.passes) == 0
}

// Run applies every pass. If any pass fails, Run returns the error and an
// empty result; no partial rewrite escapes.
func (p *Pipeline) Run(ctx context.Context, src string) (string, []ChangeRecord, error) {
	var changes []ChangeRecord
	cur := src
	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		out, recs, err := pass.Rewrite(ctx, cur)
		if err != nil {
			return "", nil, fmt.Errorf("pass %s: %w", pass.Name(), err)
		}
		changes = append(changes, recs...)
		cur = out
	}
	return cur, changes, nil
}

// Verify runs the pipeline over already rewritten text and fails if that
// changes it again.
func (p *Pipeline) Verify(ctx context.Context, rewritten string) error {
	again, changes, err := p.Run(ctx, rewritten)
	if err != nil {
		return err
	}
	if again != rewritten {
		return &FixedPointError{Changes: changes}
	}
	return nil
}

// Totals sums change counts by family.
func Totals(changes []ChangeRecord) map[string]int {
	totals := make(map[string]int)
	for _, c := range changes {
		totals[c.Family] += c.Count
	}
	return totals
}

package rewrite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/rewrite"
)

type failingPass struct{}

func (failingPass) Name() string { return "failing" }

func (failingPass) Rewrite(context.Context, string) (string, []rewrite.ChangeRecord, error) {
	return "partial", nil, errors.New("boom")
}

// growingPass appends to its input every time, so it never converges.
type growingPass struct{}

func (growingPass) Name() string { return "growing" }

func (growingPass) Rewrite(_ context.Context, src string) (string, []rewrite.ChangeRecord, error) {
	return src + "!", []rewrite.ChangeRecord{{Family: "growing", Description: "bang", Count: 1}}, nil
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline(
		compile(t, "one", rewrite.Rule{Pattern: `a`, Replacement: "b", Description: "a"}),
		nil,
		compile(t, "two", rewrite.Rule{Pattern: `b`, Replacement: "c", Description: "b"}),
	)
	assert.Equal(t, []string{"one", "two"}, p.Passes())
	assert.False(t, p.Empty())

	got, changes, err := p.Run(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, "cc", got)
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, rewrite.Totals(changes))

	require.NoError(t, p.Verify(context.Background(), got))
}

func TestPipeline_FailureDiscardsResult(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline(
		compile(t, "one", rewrite.Rule{Pattern: `a`, Replacement: "b"}),
		failingPass{},
	)

	got, changes, err := p.Run(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass failing")
	assert.Empty(t, got)
	assert.Nil(t, changes)
}

func TestPipeline_VerifyDetectsDrift(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline(growingPass{})
	out, _, err := p.Run(context.Background(), "x")
	require.NoError(t, err)

	err = p.Verify(context.Background(), out)
	require.ErrorIs(t, err, rewrite.ErrNotFixedPoint)

	var fpErr *rewrite.FixedPointError
	require.ErrorAs(t, err, &fpErr)
	assert.Len(t, fpErr.Changes, 1)
}

func TestPipeline_Empty(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline()
	assert.True(t, p.Empty())

	got, changes, err := p.Run(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "text", got)
	assert.Empty(t, changes)
}

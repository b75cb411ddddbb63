package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcfix/pkg/analysis"
	"github.com/yaklabco/srcfix/pkg/rewrite"
	"github.com/yaklabco/srcfix/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "/work/app/a.ts", Result: &runner.FileResult{
			Modified: true,
			Changes: []rewrite.ChangeRecord{
				{Family: "imports", Description: "../../lib", Count: 1},
				{Family: "imports", Description: "../lib", Count: 1},
			},
		}},
		{Path: "/work/app/b.ts", Result: &runner.FileResult{
			Modified: true,
			Changes: []rewrite.ChangeRecord{
				{Family: "type-widening", Description: ": any", Count: 3},
				{Family: "imports", Description: "../../lib", Count: 1},
			},
		}},
		{Path: "/work/app/c.ts", Result: &runner.FileResult{}},
		{Path: "/work/app/d.ts", Error: errors.New("boom")},
	}}
}

func TestAnalyze_ByCount(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortByCount, WorkingDir: "/work"})

	assert.Equal(t, analysis.Totals{Files: 4, FilesChanged: 2, Fixes: 6}, report.Totals)
	assert.Equal(t, []analysis.FileAnalysis{
		{Path: "app/b.ts", Fixes: 4, Families: []string{"imports", "type-widening"}},
		{Path: "app/a.ts", Fixes: 2, Families: []string{"imports"}},
	}, report.ByFile)
	assert.Equal(t, []analysis.FamilyAnalysis{
		{Family: "imports", Fixes: 3, Files: []string{"app/a.ts", "app/b.ts"}},
		{Family: "type-widening", Fixes: 3, Files: []string{"app/b.ts"}},
	}, report.ByFamily, "ties sort alphabetically")
}

func TestAnalyze_ByAlpha(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: analysis.SortByAlpha})

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "/work/app/a.ts", report.ByFile[0].Path)
	assert.Equal(t, "imports", report.ByFamily[0].Family)
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())

	assert.NotNil(t, report.ByFile)
	assert.NotNil(t, report.ByFamily)
	assert.Zero(t, report.Totals)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortByAlpha.IsValid())
	assert.False(t, analysis.SortField("severity").IsValid())
}

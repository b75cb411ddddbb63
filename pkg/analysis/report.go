package analysis

// Report contains pre-computed views of a rewrite run.
type Report struct {
	// ByFile lists every file that was, or would be, modified.
	ByFile []FileAnalysis `json:"byFile"`

	// ByFamily lists every family that made at least one change.
	ByFamily []FamilyAnalysis `json:"byFamily"`

	Totals Totals `json:"totals"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files        int `json:"files"`
	FilesChanged int `json:"filesChanged"`
	Fixes        int `json:"fixes"`
}

// FileAnalysis contains aggregated changes for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Fixes    int      `json:"fixes"`
	Families []string `json:"families"`
}

// FamilyAnalysis contains aggregated changes for a single rule family.
type FamilyAnalysis struct {
	Family string   `json:"family"`
	Fixes  int      `json:"fixes"`
	Files  []string `json:"files"`
}

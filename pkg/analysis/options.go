package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by fix count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts by family ID or path.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options configures the Analyze function.
type Options struct {
	// SortBy specifies how to sort ByFile and ByFamily.
	SortBy SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions sorts by count.
func DefaultOptions() Options {
	return Options{SortBy: SortByCount}
}

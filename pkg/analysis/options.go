package analysis

// SortField specifies how to sort per-table statistics.
type SortField string

const (
	// SortByDeclaration keeps source declaration order.
	SortByDeclaration SortField = "declaration"
	// SortByAlpha sorts alphabetically by table id.
	SortByAlpha SortField = "alpha"
	// SortByRules sorts by rule count (descending).
	SortByRules SortField = "rules"
	// SortByWeight sorts by total weight (descending).
	SortByWeight SortField = "weight"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByDeclaration, SortByAlpha, SortByRules, SortByWeight:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeGraph includes the reference graph in the report.
	IncludeGraph bool

	// SortBy specifies how to sort the Tables slice.
	SortBy SortField
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeGraph: true,
		SortBy:       SortByDeclaration,
	}
}

package analysis

import "time"

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Report contains pre-computed views of a parsed table program.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Tables holds per-table statistics in declaration order.
	Tables []TableStats `json:"tables"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Graph is the internal reference graph, when requested.
	Graph *Graph `json:"graph,omitempty"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// TableStats contains aggregated data for a single table.
type TableStats struct {
	ID           string   `json:"id"`
	Export       bool     `json:"export"`
	Line         int      `json:"line"`
	Rules        int      `json:"rules"`
	TotalWeight  float64  `json:"totalWeight"`
	References   []string `json:"references,omitempty"`
	ExternalRefs []string `json:"externalReferences,omitempty"`
	DiceRolls    int      `json:"diceRolls,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Tables         int     `json:"tables"`
	ExportedTables int     `json:"exportedTables"`
	Rules          int     `json:"rules"`
	TotalWeight    float64 `json:"totalWeight"`
	References     int     `json:"references"`
	ExternalRefs   int     `json:"externalReferences"`
	DiceRolls      int     `json:"diceRolls"`
}

// HasExternalRefs returns true if any table references an external
// collection.
func (t Totals) HasExternalRefs() bool {
	return t.ExternalRefs > 0
}

// TableIDs returns the declared ids in declaration order.
func (r *Report) TableIDs() []string {
	ids := make([]string, 0, len(r.Tables))
	for _, table := range r.Tables {
		ids = append(ids, table.ID)
	}
	return ids
}

// Declared reports whether the program declares the given table id.
func (r *Report) Declared(id string) bool {
	for _, table := range r.Tables {
		if table.ID == id {
			return true
		}
	}
	return false
}

package check

import "github.com/yaklabco/gotbl/pkg/diag"

// FindingBuilder helps construct Finding values.
type FindingBuilder struct {
	finding Finding
}

// NewFinding starts building a finding for the given check around an
// already-located diagnostic.
func NewFinding(checkID string, d diag.Diagnostic) *FindingBuilder {
	return &FindingBuilder{
		finding: Finding{
			CheckID:    checkID,
			Diagnostic: d,
		},
	}
}

// WithSeverity sets the severity on the underlying diagnostic.
func (b *FindingBuilder) WithSeverity(s diag.Severity) *FindingBuilder {
	b.finding.Diagnostic.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *FindingBuilder) WithSuggestion(s string) *FindingBuilder {
	b.finding.Diagnostic.Suggestion = s
	return b
}

// Build returns the constructed Finding.
func (b *FindingBuilder) Build() Finding {
	return b.finding
}

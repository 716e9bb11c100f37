// Package diag provides source-located diagnostics for TBL tooling:
// byte-offset to line/column mapping, structured diagnostic values with
// optional fix suggestions, and terminal rendering with caret markers.
package diag

// Kind classifies which stage produced a diagnostic.
type Kind string

const (
	KindLex      Kind = "lex"
	KindParse    Kind = "parse"
	KindSemantic Kind = "semantic"
)

// Severity indicates how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// SourceLocation pinpoints a diagnostic in the source text.
// Line and Column are 1-based; Position is the byte offset. Column counts
// bytes, not runes. EndPosition and EndColumn are zero for point
// diagnostics and are set only when the diagnostic covers a span, in which
// case the span never extends past the end of the starting line.
type SourceLocation struct {
	Position    int `json:"position"`
	Line        int `json:"line"`
	Column      int `json:"column"`
	EndPosition int `json:"end_position,omitempty"`
	EndColumn   int `json:"end_column,omitempty"`
}

// IsSpan reports whether the location covers a range rather than a point.
func (l SourceLocation) IsSpan() bool {
	return l.EndColumn > l.Column
}

// Diagnostic is a structured, source-located problem report with an
// optional fix suggestion and the raw text of the offending line.
type Diagnostic struct {
	Kind       Kind           `json:"kind"`
	Severity   Severity       `json:"severity"`
	Location   SourceLocation `json:"location"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	SourceLine string         `json:"source_line"`
}

// WithSuggestion returns a copy of the diagnostic carrying a fix hint.
// The receiver is not modified, so a diagnostic can be built and
// decorated in a single expression at the error site.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// WithSeverity returns a copy of the diagnostic with the given severity.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

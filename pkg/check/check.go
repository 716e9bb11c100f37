// Package check runs registered analysis passes over a TBL source and
// reports findings beyond hard construction errors: duplicate tables,
// unreachable tables, dangling references, external dependencies, and
// reference cycles. Findings carry pkg/diag diagnostics so they render
// with the same caret markers as lexer and parser errors.
package check

import "github.com/yaklabco/gotbl/pkg/diag"

// Finding is a single issue reported by a check.
type Finding struct {
	// CheckID is the identifier of the check that produced this finding.
	CheckID string `json:"check"`

	// Diagnostic locates and describes the issue. Its severity is the
	// finding's severity.
	Diagnostic diag.Diagnostic `json:"diagnostic"`
}

// Severity returns the severity of the underlying diagnostic.
func (f Finding) Severity() diag.Severity {
	return f.Diagnostic.Severity
}

// Message returns the human-readable description of the issue.
func (f Finding) Message() string {
	return f.Diagnostic.Message
}

// Check defines the interface all checks implement.
type Check interface {
	// ID returns the unique identifier for this check
	// (e.g., "duplicate-table").
	ID() string

	// Description returns a one-line description of what the check looks
	// for.
	Description() string

	// Disableable reports whether the check may be turned off. The
	// construct check is the one check that always runs.
	Disableable() bool

	// Run executes the check against the given context and returns its
	// findings.
	//
	// Checks must:
	//   - Tolerate a nil Program (the source failed to parse).
	//   - Return findings for each issue found.
	//   - Return error only for internal failures, not for issues.
	Run(ctx *Context) ([]Finding, error)
}

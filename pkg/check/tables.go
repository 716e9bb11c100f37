package check

import (
	"fmt"

	"github.com/yaklabco/gotbl/pkg/diag"
)

// DuplicateTableCheck finds tables declared more than once in one file.
// Compilation keeps the last declaration, so the earlier ones silently
// disappear from generation.
type DuplicateTableCheck struct {
	BaseCheck
}

// NewDuplicateTableCheck creates a new duplicate-table check.
func NewDuplicateTableCheck() *DuplicateTableCheck {
	return &DuplicateTableCheck{
		BaseCheck: NewBaseCheck(
			"duplicate-table",
			"Two tables in one file share the same id",
			true,
		),
	}
}

// Run flags the second and later declarations of each repeated id.
func (c *DuplicateTableCheck) Run(ctx *Context) ([]Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	var findings []Finding
	seen := make(map[string]bool)

	for _, node := range ctx.Program.Tables {
		id := node.Value.Metadata.ID
		if seen[id] {
			span := headerSpan(node)
			d := ctx.Collector().
				SemanticDiagnosticSpan(span.Start, span.End,
					fmt.Sprintf("Table '%s' is defined more than once", id))
			findings = append(findings, NewFinding(c.ID(), d).
				WithSeverity(diag.SeverityWarning).
				WithSuggestion("Later definitions replace earlier ones. Rename or remove one").
				Build())
		}
		seen[id] = true
	}

	return findings, nil
}

// UnreachableTableCheck finds tables nothing points at: not exported,
// not referenced by any other table, and not the file's default
// generation entry (the first table, when nothing is exported).
type UnreachableTableCheck struct {
	BaseCheck
}

// NewUnreachableTableCheck creates a new unreachable-table check.
func NewUnreachableTableCheck() *UnreachableTableCheck {
	return &UnreachableTableCheck{
		BaseCheck: NewBaseCheck(
			"unreachable-table",
			"A table is never referenced and not exported",
			true,
		),
	}
}

// Run flags tables with no inbound references and no export flag.
// Self-references do not count as inbound.
func (c *UnreachableTableCheck) Run(ctx *Context) ([]Finding, error) {
	report := ctx.Analysis()
	if report == nil || len(report.Tables) == 0 {
		return nil, nil
	}
	if ctx.Cancelled() {
		return nil, fmt.Errorf("check cancelled: %w", ctx.Ctx.Err())
	}

	referenced := make(map[string]bool)
	for _, table := range report.Tables {
		for _, ref := range table.References {
			if ref != table.ID {
				referenced[ref] = true
			}
		}
	}

	entry := ""
	if report.Totals.ExportedTables == 0 {
		entry = report.Tables[0].ID
	}

	var findings []Finding
	flagged := make(map[string]bool)

	for _, table := range report.Tables {
		if table.Export || table.ID == entry || referenced[table.ID] || flagged[table.ID] {
			continue
		}
		flagged[table.ID] = true

		span, ok := ctx.DeclarationSpan(table.ID)
		if !ok {
			continue
		}
		d := ctx.Collector().
			SemanticDiagnosticSpan(span.Start, span.End,
				fmt.Sprintf("Table '%s' is never referenced and not exported", table.ID))
		findings = append(findings, NewFinding(c.ID(), d).
			WithSeverity(diag.SeverityWarning).
			WithSuggestion("Reference it from another table, add [export], or remove it").
			Build())
	}

	return findings, nil
}

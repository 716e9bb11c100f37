package check

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/diag"
)

// UndefinedReferenceCheck finds '{#x}' expressions naming a table the
// file does not define. Compilation rejects these too, but its error
// names only the tables involved; this check points at the offending
// expression itself.
type UndefinedReferenceCheck struct {
	BaseCheck
}

// NewUndefinedReferenceCheck creates a new undefined-reference check.
func NewUndefinedReferenceCheck() *UndefinedReferenceCheck {
	return &UndefinedReferenceCheck{
		BaseCheck: NewBaseCheck(
			"undefined-reference",
			"A rule references a table that is not defined in the file",
			true,
		),
	}
}

// Run flags every table reference whose target is not declared.
func (c *UndefinedReferenceCheck) Run(ctx *Context) ([]Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}
	if ctx.Cancelled() {
		return nil, fmt.Errorf("check cancelled: %w", ctx.Ctx.Err())
	}

	declared := make(map[string]bool, len(ctx.Program.Tables))
	for _, node := range ctx.Program.Tables {
		declared[node.Value.Metadata.ID] = true
	}

	var findings []Finding
	for _, site := range ctx.ExpressionSites() {
		if site.Kind != ast.ExprTableReference || declared[site.TableID] {
			continue
		}
		d := ctx.Collector().
			SemanticDiagnosticSpan(site.Span.Start, site.Span.End,
				fmt.Sprintf("Reference to undefined table '%s'", site.TableID))
		findings = append(findings, NewFinding(c.ID(), d).
			WithSuggestion(fmt.Sprintf("Define a table with '#%s' or fix the reference", site.TableID)).
			Build())
	}

	return findings, nil
}

// ExternalDependencyCheck reports every reference into another
// collection. Single-file generation never resolves these, so each one
// is a dependency the file's user has to know about.
type ExternalDependencyCheck struct {
	BaseCheck
}

// NewExternalDependencyCheck creates a new external-dependency check.
func NewExternalDependencyCheck() *ExternalDependencyCheck {
	return &ExternalDependencyCheck{
		BaseCheck: NewBaseCheck(
			"external-dependency",
			"A rule references a table from an external collection",
			true,
		),
	}
}

// Run emits an informational finding per external reference.
func (c *ExternalDependencyCheck) Run(ctx *Context) ([]Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	var findings []Finding
	for _, site := range ctx.ExpressionSites() {
		if site.Kind != ast.ExprExternalTableReference {
			continue
		}
		name := fmt.Sprintf("@%s/%s#%s", site.Publisher, site.Collection, site.TableID)
		d := ctx.Collector().
			SemanticDiagnosticSpan(site.Span.Start, site.Span.End,
				fmt.Sprintf("External dependency '%s' is not available", name))
		findings = append(findings, NewFinding(c.ID(), d).
			WithSeverity(diag.SeverityInfo).
			WithSuggestion("Inline the referenced table to make this file self-contained").
			Build())
	}

	return findings, nil
}

// ReferenceCycleCheck finds reference cycles between tables. Generation
// recursion has no depth guard, so a cycle terminates only through its
// weighted non-referencing rules.
type ReferenceCycleCheck struct {
	BaseCheck
}

// NewReferenceCycleCheck creates a new reference-cycle check.
func NewReferenceCycleCheck() *ReferenceCycleCheck {
	return &ReferenceCycleCheck{
		BaseCheck: NewBaseCheck(
			"reference-cycle",
			"Tables reference each other in a cycle",
			true,
		),
	}
}

// Run reports one finding for the first cycle found, anchored at the
// declaration of the table that opens it.
func (c *ReferenceCycleCheck) Run(ctx *Context) ([]Finding, error) {
	report := ctx.Analysis()
	if report == nil || report.Graph == nil {
		return nil, nil
	}

	cycle := report.Graph.FindCycle()
	if cycle == nil {
		return nil, nil
	}

	span, ok := ctx.DeclarationSpan(cycle[0])
	if !ok {
		return nil, nil
	}
	d := ctx.Collector().
		SemanticDiagnosticSpan(span.Start, span.End,
			fmt.Sprintf("Tables reference each other in a cycle: %s", strings.Join(cycle, " -> ")))
	return []Finding{NewFinding(c.ID(), d).
		WithSeverity(diag.SeverityWarning).
		WithSuggestion("Give at least one table in the cycle a rule with no references").
		Build()}, nil
}

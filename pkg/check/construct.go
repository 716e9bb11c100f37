package check

import (
	"errors"

	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/parser"
)

// ConstructCheck surfaces lexer, parser, and collection construction
// failures as error findings. It is the one check that cannot be
// disabled: a file that does not compile is broken no matter what else
// the checks have to say about it.
type ConstructCheck struct {
	BaseCheck
}

// NewConstructCheck creates a new construct check.
func NewConstructCheck() *ConstructCheck {
	return &ConstructCheck{
		BaseCheck: NewBaseCheck(
			"construct",
			"Source fails to lex, parse, or compile into a collection",
			false,
		),
	}
}

// Run reports the compilation failure, if any, as a single finding.
func (c *ConstructCheck) Run(ctx *Context) ([]Finding, error) {
	if ctx.ConstructErr == nil {
		return nil, nil
	}
	return []Finding{NewFinding(c.ID(), constructDiagnostic(ctx)).Build()}, nil
}

// constructDiagnostic converts the compilation failure into a located
// diagnostic. Parser errors already carry one. Collection errors carry
// none, so they anchor at the table declaration they name; reference
// errors anchor at the referencing table, and the reference checks add
// the expression-level spans.
func constructDiagnostic(ctx *Context) diag.Diagnostic {
	err := ctx.ConstructErr

	var parseErr *parser.Error
	if errors.As(err, &parseErr) && parseErr.Diagnostic != nil {
		return *parseErr.Diagnostic
	}

	var collErr *collection.Error
	if errors.As(err, &collErr) {
		switch collErr.Kind {
		case collection.EmptyTable:
			if span, ok := ctx.DeclarationSpan(collErr.TableID); ok {
				return ctx.Collector().
					SemanticDiagnosticSpan(span.Start, span.End, collErr.Error()).
					WithSuggestion("Add at least one rule, like '1.0: some value'")
			}
		case collection.InvalidTableReference, collection.MissingDependency:
			if span, ok := ctx.DeclarationSpan(collErr.ReferencingTable); ok {
				return ctx.Collector().
					SemanticDiagnosticSpan(span.Start, span.End, collErr.Error())
			}
		}
	}

	return ctx.Collector().SemanticDiagnostic(0, err.Error())
}

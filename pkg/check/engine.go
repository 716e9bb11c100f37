package check

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/parser"
)

// Result contains the outcome of checking a single source.
type Result struct {
	// Path is the path of the checked file, empty for anonymous sources.
	Path string

	// Program is the parsed source. Nil when parsing failed.
	Program *ast.Program

	// Collection is the compiled program. Nil when compilation failed.
	Collection *collection.Collection

	// Findings contains all issues found, in source order.
	Findings []Finding

	// CheckErrors contains any internal errors from check execution.
	CheckErrors map[string]error
}

// HasFindings returns true if any findings were reported.
func (r *Result) HasFindings() bool {
	return len(r.Findings) > 0
}

// HasErrors returns true if any finding has error severity.
func (r *Result) HasErrors() bool {
	return r.SeverityCount(diag.SeverityError) > 0
}

// SeverityCount returns the number of findings with the given severity.
func (r *Result) SeverityCount(s diag.Severity) int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity() == s {
			count++
		}
	}
	return count
}

// Engine coordinates compilation and check execution.
type Engine struct {
	// Registry holds the checks to run.
	Registry *Registry

	// Disabled lists check IDs to skip. Checks that are not disableable
	// run regardless.
	Disabled []string
}

// NewEngine creates an Engine over the given registry. A nil registry
// means the default registry with the built-in checks.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Engine{Registry: registry}
}

// CheckSource compiles and checks a single source. A source that fails
// to compile is a normal outcome reported through the construct check;
// the returned error is only ever a cancellation.
func (e *Engine) CheckSource(ctx context.Context, path, source string) (*Result, error) {
	var coll *collection.Collection

	program, constructErr := parser.Parse(source)
	if constructErr == nil {
		coll, constructErr = collection.FromProgram(program)
	}

	result := &Result{
		Path:        path,
		Program:     program,
		Collection:  coll,
		CheckErrors: make(map[string]error),
	}
	checkCtx := NewContext(ctx, path, source, program, coll, constructErr)

	for _, check := range e.Registry.Checks() {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("checks cancelled: %w", ctx.Err())
		default:
		}

		if check.Disableable() && slices.Contains(e.Disabled, check.ID()) {
			continue
		}

		findings, err := check.Run(checkCtx)
		if err != nil {
			result.CheckErrors[check.ID()] = err
			continue
		}
		result.Findings = append(result.Findings, findings...)
	}

	// Checks run in ID order; readers want source order.
	slices.SortStableFunc(result.Findings, func(a, b Finding) int {
		if c := cmp.Compare(a.Diagnostic.Location.Position, b.Diagnostic.Location.Position); c != 0 {
			return c
		}
		return cmp.Compare(a.CheckID, b.CheckID)
	})

	return result, nil
}

// Package analysis computes structural reports over parsed table
// programs: per-table statistics, aggregate totals, and the reference
// graph used for reachability and cycle checks.
package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/diag"
)

// Analyze transforms a parsed program into a Report. It performs a
// single pass over the tables to compute all views. The source text is
// needed to resolve declaration line numbers.
func Analyze(source string, program *ast.Program, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if program == nil {
		return report
	}

	collector := diag.NewCollector(source)
	edges := make(map[string][]string, len(program.Tables))

	for _, tableNode := range program.Tables {
		table := tableNode.Value
		stats := TableStats{
			ID:     table.Metadata.ID,
			Export: table.Metadata.Export,
			Line:   collector.LocationAt(tableNode.Span.Start).Line,
			Rules:  len(table.Rules),
		}

		seenRefs := make(map[string]bool)
		seenExternal := make(map[string]bool)
		for _, ruleNode := range table.Rules {
			rule := ruleNode.Value
			stats.TotalWeight += rule.Weight

			for _, item := range rule.Content {
				if item.Kind != ast.ContentExpression {
					continue
				}
				switch expr := item.Expression; expr.Kind {
				case ast.ExprTableReference:
					if !seenRefs[expr.TableID] {
						seenRefs[expr.TableID] = true
						stats.References = append(stats.References, expr.TableID)
					}
				case ast.ExprExternalTableReference:
					key := fmt.Sprintf("@%s/%s#%s", expr.Publisher, expr.Collection, expr.TableID)
					if !seenExternal[key] {
						seenExternal[key] = true
						stats.ExternalRefs = append(stats.ExternalRefs, key)
					}
				case ast.ExprDiceRoll:
					stats.DiceRolls++
				}
			}
		}

		edges[stats.ID] = stats.References
		report.Tables = append(report.Tables, stats)

		report.Totals.Tables++
		if stats.Export {
			report.Totals.ExportedTables++
		}
		report.Totals.Rules += stats.Rules
		report.Totals.TotalWeight += stats.TotalWeight
		report.Totals.References += len(stats.References)
		report.Totals.ExternalRefs += len(stats.ExternalRefs)
		report.Totals.DiceRolls += stats.DiceRolls
	}

	sortTableStats(report.Tables, opts.SortBy)

	if opts.IncludeGraph {
		report.Graph = &Graph{Edges: edges}
	}
	return report
}

func sortTableStats(tables []TableStats, sortBy SortField) {
	switch sortBy {
	case SortByAlpha:
		slices.SortStableFunc(tables, func(left, right TableStats) int {
			return cmp.Compare(left.ID, right.ID)
		})
	case SortByRules:
		slices.SortStableFunc(tables, func(left, right TableStats) int {
			return cmp.Compare(right.Rules, left.Rules)
		})
	case SortByWeight:
		slices.SortStableFunc(tables, func(left, right TableStats) int {
			return cmp.Compare(right.TotalWeight, left.TotalWeight)
		})
	}
}

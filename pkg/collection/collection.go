// Package collection compiles parsed table programs into an optimized,
// sampleable form and generates weighted random text from them.
package collection

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/parser"
)

// optimizedTable keeps a table's rules beside the prefix sums of their
// weights, so sampling is a binary search instead of a linear scan.
type optimizedTable struct {
	metadata          ast.TableMetadata
	rules             []ast.Node[ast.Rule]
	cumulativeWeights []float64
	totalWeight       float64
}

// Collection is a compiled set of tables ready for generation.
//
// A Collection is not safe for concurrent use: every generation call
// advances the random source. Use one Collection per goroutine, or
// guard calls with a mutex.
type Collection struct {
	tables   map[string]*optimizedTable
	tableIDs []string
	rng      *rand.Rand
}

// New compiles source text into a Collection. Construction is
// all-or-nothing: the first problem found aborts with no partial
// result. The returned error, when non-nil, is always a *Error.
func New(source string) (*Collection, error) {
	return NewSeeded(source, rand.Uint64())
}

// NewSeeded compiles source text like New but seeds the sampler, making
// every generation sequence reproducible.
func NewSeeded(source string, seed uint64) (*Collection, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, parseError(err)
	}
	return fromProgram(program, rand.New(rand.NewPCG(seed, seed)))
}

// FromProgram compiles an already-parsed program into a Collection.
func FromProgram(program *ast.Program) (*Collection, error) {
	return fromProgram(program, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func fromProgram(program *ast.Program, rng *rand.Rand) (*Collection, error) {
	c := &Collection{
		tables: make(map[string]*optimizedTable, len(program.Tables)),
		rng:    rng,
	}

	for _, tableNode := range program.Tables {
		table := tableNode.Value
		if len(table.Rules) == 0 {
			return nil, emptyTableError(table.Metadata.ID)
		}

		cumulative := make([]float64, len(table.Rules))
		total := 0.0
		for i, ruleNode := range table.Rules {
			total += ruleNode.Value.Weight
			cumulative[i] = total
		}

		c.tables[table.Metadata.ID] = &optimizedTable{
			metadata:          table.Metadata,
			rules:             table.Rules,
			cumulativeWeights: cumulative,
			totalWeight:       total,
		}
		c.tableIDs = append(c.tableIDs, table.Metadata.ID)
	}

	if err := c.validateReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

// validateReferences checks every expression in every rule: internal
// references must name a table in the collection, and external
// references always fail because this engine never resolves them.
// Iteration follows the table map, so which error surfaces first is not
// tied to source order.
func (c *Collection) validateReferences() error {
	for id, table := range c.tables {
		for _, ruleNode := range table.rules {
			for _, item := range ruleNode.Value.Content {
				if item.Kind != ast.ContentExpression {
					continue
				}
				expr := item.Expression
				switch expr.Kind {
				case ast.ExprTableReference:
					if _, ok := c.tables[expr.TableID]; !ok {
						return invalidTableReferenceError(expr.TableID, id)
					}
				case ast.ExprExternalTableReference:
					return missingDependencyError(expr.Publisher, expr.Collection, expr.TableID, id)
				}
			}
		}
	}
	return nil
}

// Generate produces count independent samples from the named table and
// joins them with ", ". A count of zero yields the empty string.
func (c *Collection) Generate(tableID string, count int) (string, error) {
	if _, ok := c.tables[tableID]; !ok {
		return "", tableNotFoundError(tableID)
	}

	results := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result, err := c.generateOne(tableID)
		if err != nil {
			return "", err
		}
		results = append(results, result)
	}
	return strings.Join(results, ", "), nil
}

// generateOne samples a rule from the table and expands its content.
// The result is trimmed of surrounding whitespace once per call, so an
// inner reference's padding is already gone before the outer rule
// concatenates it.
func (c *Collection) generateOne(tableID string) (string, error) {
	table, ok := c.tables[tableID]
	if !ok {
		return "", tableNotFoundError(tableID)
	}

	rule, err := c.sampleRule(table)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, item := range rule.Content {
		switch item.Kind {
		case ast.ContentText:
			out.WriteString(item.Text)
		case ast.ContentExpression:
			expanded, err := c.expandExpression(item.Expression, tableID)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// sampleRule draws a uniform value in [0, totalWeight) and binary
// searches the prefix sums for the first rule whose cumulative weight
// reaches it. Boundary draws resolve to the lowest qualifying index;
// the index is clamped in case floating-point rounding overshoots the
// last rule.
func (c *Collection) sampleRule(table *optimizedTable) (ast.Rule, error) {
	if len(table.rules) == 0 {
		return ast.Rule{}, generationError(fmt.Sprintf("table '%s' has no rules to sample", table.metadata.ID))
	}

	draw := c.rng.Float64() * table.totalWeight
	index := sort.Search(len(table.cumulativeWeights), func(i int) bool {
		return table.cumulativeWeights[i] >= draw
	})
	if index >= len(table.rules) {
		index = len(table.rules) - 1
	}
	return table.rules[index].Value, nil
}

func (c *Collection) expandExpression(expr *ast.Expression, referencingTable string) (string, error) {
	switch expr.Kind {
	case ast.ExprTableReference:
		result, err := c.generateOne(expr.TableID)
		if err != nil {
			return "", err
		}
		for _, modifier := range expr.Modifiers {
			result = applyModifier(result, modifier)
		}
		return result, nil
	case ast.ExprExternalTableReference:
		return "", missingDependencyError(expr.Publisher, expr.Collection, expr.TableID, referencingTable)
	case ast.ExprDiceRoll:
		return strconv.Itoa(c.rollDice(expr)), nil
	default:
		return "", generationError(fmt.Sprintf("unknown expression kind '%s'", expr.Kind))
	}
}

// rollDice sums count independent uniform draws from 1..sides. A roll
// with no explicit count rolls one die.
func (c *Collection) rollDice(expr *ast.Expression) int {
	count := 1
	if expr.Count != nil {
		count = int(*expr.Count)
	}

	sum := 0
	for i := 0; i < count; i++ {
		sum += 1 + c.rng.IntN(int(expr.Sides))
	}
	return sum
}

// HasTable reports whether the collection contains the named table.
func (c *Collection) HasTable(tableID string) bool {
	_, ok := c.tables[tableID]
	return ok
}

// TableIDs returns every table id in source declaration order.
func (c *Collection) TableIDs() []string {
	return append([]string(nil), c.tableIDs...)
}

// ExportedTableIDs returns the ids flagged export, preserving
// declaration order.
func (c *Collection) ExportedTableIDs() []string {
	var exported []string
	for _, id := range c.tableIDs {
		if table, ok := c.tables[id]; ok && table.metadata.Export {
			exported = append(exported, id)
		}
	}
	return exported
}

// RuleCount returns the number of rules in the named table, or zero
// when the table does not exist.
func (c *Collection) RuleCount(tableID string) int {
	table, ok := c.tables[tableID]
	if !ok {
		return 0
	}
	return len(table.rules)
}

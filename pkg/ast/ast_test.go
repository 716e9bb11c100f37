package ast_test

import (
	"testing"

	"github.com/yaklabco/gotbl/pkg/ast"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	span := ast.NewSpan(3, 9)
	if span.Len() != 6 {
		t.Errorf("expected length 6, got %d", span.Len())
	}
	if span.IsEmpty() {
		t.Error("expected non-empty span")
	}
	if !ast.NewSpan(4, 4).IsEmpty() {
		t.Error("expected empty span")
	}

	covered := span.Cover(ast.NewSpan(1, 5))
	if covered.Start != 1 || covered.End != 9 {
		t.Errorf("expected cover [1, 9), got [%d, %d)", covered.Start, covered.End)
	}

	source := "#shape\n1.0: x"
	if got := ast.NewSpan(0, 6).Text(source); got != "#shape" {
		t.Errorf("expected %q, got %q", "#shape", got)
	}
	if got := ast.NewSpan(5, 99).Text(source); got != "" {
		t.Errorf("expected empty text for out-of-range span, got %q", got)
	}
}

func TestExpressionString(t *testing.T) {
	t.Parallel()

	two := uint32(2)

	tests := []struct {
		name     string
		expr     ast.Expression
		expected string
	}{
		{
			name:     "plain table reference",
			expr:     ast.NewTableReference("color", nil),
			expected: "{#color}",
		},
		{
			name:     "reference with modifiers",
			expr:     ast.NewTableReference("animal", []string{"indefinite", "capitalize"}),
			expected: "{#animal|indefinite|capitalize}",
		},
		{
			name:     "external reference",
			expr:     ast.NewExternalTableReference("user", "common", "name", []string{"capitalize"}),
			expected: "{@user/common#name|capitalize}",
		},
		{
			name:     "dice with count",
			expr:     ast.NewDiceRoll(&two, 10),
			expected: "{2d10}",
		},
		{
			name:     "dice without count",
			expr:     ast.NewDiceRoll(nil, 6),
			expected: "{d6}",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.expr.String(); got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestRuleContentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rule     ast.Rule
		expected string
	}{
		{
			name: "plain text trimmed",
			rule: ast.Rule{
				Weight:  1.5,
				Content: []ast.RuleContent{ast.NewText(" simple rule")},
			},
			expected: "simple rule",
		},
		{
			name: "mixed text and references",
			rule: ast.Rule{
				Weight: 1.0,
				Content: []ast.RuleContent{
					ast.NewText(" "),
					ast.NewExpressionContent(ast.NewTableReference("color", nil)),
					ast.NewText(" "),
					ast.NewExpressionContent(ast.NewTableReference("shape", nil)),
				},
			},
			expected: "{#color} {#shape}",
		},
		{
			name: "single modified reference round-trips",
			rule: ast.Rule{
				Weight: 1.0,
				Content: []ast.RuleContent{
					ast.NewExpressionContent(
						ast.NewTableReference("animal", []string{"indefinite", "capitalize"}),
					),
				},
			},
			expected: "{#animal|indefinite|capitalize}",
		},
		{
			name: "dice inside text",
			rule: ast.Rule{
				Weight: 2.0,
				Content: []ast.RuleContent{
					ast.NewText("roll "),
					ast.NewExpressionContent(ast.NewDiceRoll(nil, 20)),
					ast.NewText(" now"),
				},
			},
			expected: "roll {d20} now",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := testCase.rule.ContentText(); got != testCase.expected {
				t.Errorf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestNodeCarriesSpan(t *testing.T) {
	t.Parallel()

	table := ast.Table{Metadata: ast.TableMetadata{ID: "shape", Export: true}}
	node := ast.NewNode(table, ast.NewSpan(0, 14))

	if node.Value.Metadata.ID != "shape" {
		t.Errorf("expected id %q, got %q", "shape", node.Value.Metadata.ID)
	}
	if !node.Value.Metadata.Export {
		t.Error("expected export flag to be set")
	}
	if node.Span.Start != 0 || node.Span.End != 14 {
		t.Errorf("expected span [0, 14), got [%d, %d)", node.Span.Start, node.Span.End)
	}
}

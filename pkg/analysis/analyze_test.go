package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/parser"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()

	program, err := parser.Parse(source)
	require.NoError(t, err)
	return program
}

func TestAnalyze_NilProgram(t *testing.T) {
	t.Parallel()

	report := Analyze("", nil, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Tables)
	assert.Empty(t, report.Tables)
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	source := "#loot[export]\n" +
		"3.0: {#gem} x{2d4}\n" +
		"1.0: {@user/shared#art}\n" +
		"\n" +
		"#gem\n" +
		"1.0: ruby\n" +
		"2.0: opal\n"
	program := parseSource(t, source)

	report := Analyze(source, program, DefaultOptions())

	require.Len(t, report.Tables, 2)

	loot := report.Tables[0]
	assert.Equal(t, "loot", loot.ID)
	assert.True(t, loot.Export)
	assert.Equal(t, 1, loot.Line)
	assert.Equal(t, 2, loot.Rules)
	assert.InDelta(t, 4.0, loot.TotalWeight, 1e-9)
	assert.Equal(t, []string{"gem"}, loot.References)
	assert.Equal(t, []string{"@user/shared#art"}, loot.ExternalRefs)
	assert.Equal(t, 1, loot.DiceRolls)

	gem := report.Tables[1]
	assert.Equal(t, "gem", gem.ID)
	assert.False(t, gem.Export)
	assert.Equal(t, 5, gem.Line)
	assert.Equal(t, 2, gem.Rules)
	assert.InDelta(t, 3.0, gem.TotalWeight, 1e-9)
	assert.Empty(t, gem.References)

	totals := report.Totals
	assert.Equal(t, 2, totals.Tables)
	assert.Equal(t, 1, totals.ExportedTables)
	assert.Equal(t, 4, totals.Rules)
	assert.InDelta(t, 7.0, totals.TotalWeight, 1e-9)
	assert.Equal(t, 1, totals.References)
	assert.Equal(t, 1, totals.ExternalRefs)
	assert.Equal(t, 1, totals.DiceRolls)
	assert.True(t, totals.HasExternalRefs())
}

func TestAnalyze_DeduplicatesReferences(t *testing.T) {
	t.Parallel()

	source := "#pair\n1.0: {#word} and {#word}\n\n#word\n1.0: echo\n"
	program := parseSource(t, source)

	report := Analyze(source, program, DefaultOptions())

	assert.Equal(t, []string{"word"}, report.Tables[0].References)
	assert.Equal(t, 1, report.Totals.References)
}

func TestAnalyze_SortOrders(t *testing.T) {
	t.Parallel()

	source := "#zeta\n1.0: z\n2.0: zz\n3.0: zzz\n\n#alpha\n5.0: a\n"
	program := parseSource(t, source)

	t.Run("declaration order by default", func(t *testing.T) {
		report := Analyze(source, program, DefaultOptions())
		assert.Equal(t, []string{"zeta", "alpha"}, report.TableIDs())
	})

	t.Run("alphabetical", func(t *testing.T) {
		report := Analyze(source, program, Options{SortBy: SortByAlpha})
		assert.Equal(t, []string{"alpha", "zeta"}, report.TableIDs())
	})

	t.Run("by rule count", func(t *testing.T) {
		report := Analyze(source, program, Options{SortBy: SortByRules})
		assert.Equal(t, []string{"zeta", "alpha"}, report.TableIDs())
	})

	t.Run("by weight", func(t *testing.T) {
		report := Analyze(source, program, Options{SortBy: SortByWeight})
		assert.Equal(t, []string{"zeta", "alpha"}, report.TableIDs())
	})
}

func TestAnalyze_GraphToggle(t *testing.T) {
	t.Parallel()

	source := "#a\n1.0: {#b}\n\n#b\n1.0: x\n"
	program := parseSource(t, source)

	withGraph := Analyze(source, program, DefaultOptions())
	require.NotNil(t, withGraph.Graph)
	assert.Equal(t, []string{"b"}, withGraph.Graph.Edges["a"])

	withoutGraph := Analyze(source, program, Options{})
	assert.Nil(t, withoutGraph.Graph)
}

func TestReport_Declared(t *testing.T) {
	t.Parallel()

	source := "#a\n1.0: x\n"
	program := parseSource(t, source)
	report := Analyze(source, program, DefaultOptions())

	assert.True(t, report.Declared("a"))
	assert.False(t, report.Declared("b"))
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByDeclaration.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.True(t, SortByRules.IsValid())
	assert.True(t, SortByWeight.IsValid())
	assert.False(t, SortField("bogus").IsValid())
}

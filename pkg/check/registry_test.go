package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/diag"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := check.NewRegistry()

	first := &stubCheck{BaseCheck: check.NewBaseCheck("sample", "first", true)}
	registry.Register(first)

	got, ok := registry.Get("sample")
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = registry.Get("absent")
	assert.False(t, ok)

	// Re-registering the same ID replaces the check.
	second := &stubCheck{BaseCheck: check.NewBaseCheck("sample", "second", true)}
	registry.Register(second)

	got, ok = registry.Get("sample")
	require.True(t, ok)
	assert.Equal(t, "second", got.Description())
}

func TestRegistrySortedListing(t *testing.T) {
	registry := check.NewRegistry()
	for _, id := range []string{"zebra", "alpha", "mid"} {
		registry.Register(&stubCheck{BaseCheck: check.NewBaseCheck(id, "", true)})
	}

	assert.Equal(t, []string{"alpha", "mid", "zebra"}, registry.IDs())

	checks := registry.Checks()
	require.Len(t, checks, 3)
	assert.Equal(t, "alpha", checks[0].ID())
	assert.Equal(t, "zebra", checks[2].ID())
}

func TestDefaultRegistryBuiltins(t *testing.T) {
	expected := []string{
		"construct",
		"duplicate-table",
		"external-dependency",
		"reference-cycle",
		"undefined-reference",
		"unreachable-table",
	}
	assert.Equal(t, expected, check.DefaultRegistry.IDs())

	construct, ok := check.DefaultRegistry.Get("construct")
	require.True(t, ok)
	assert.False(t, construct.Disableable())

	for _, id := range expected[1:] {
		c, ok := check.DefaultRegistry.Get(id)
		require.True(t, ok, id)
		assert.True(t, c.Disableable(), id)
		assert.NotEmpty(t, c.Description(), id)
	}
}

func TestFindingBuilder(t *testing.T) {
	collector := diag.NewCollector("#t\n1.0: x\n")
	d := collector.SemanticDiagnosticSpan(0, 2, "something is off")

	finding := check.NewFinding("sample", d).
		WithSeverity(diag.SeverityInfo).
		WithSuggestion("look closer").
		Build()

	assert.Equal(t, "sample", finding.CheckID)
	assert.Equal(t, diag.SeverityInfo, finding.Severity())
	assert.Equal(t, "something is off", finding.Message())
	assert.Equal(t, "look closer", finding.Diagnostic.Suggestion)
	assert.Equal(t, "#t", finding.Diagnostic.SourceLine)
	assert.Equal(t, 3, finding.Diagnostic.Location.EndColumn)
}

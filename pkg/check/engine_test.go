package check_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaklabco/gotbl/pkg/check"
)

// stubCheck is a test check with a canned outcome.
type stubCheck struct {
	check.BaseCheck
	findings []check.Finding
	err      error
}

func (c *stubCheck) Run(_ *check.Context) ([]check.Finding, error) {
	return c.findings, c.err
}

func TestEngineDisable(t *testing.T) {
	source := "#colors\n" +
		"1.0: red\n" +
		"\n" +
		"#colors\n" +
		"1.0: blue\n"

	t.Run("enabled by default", func(t *testing.T) {
		result := checkSource(t, source)
		assert.Len(t, byCheck(result, "duplicate-table"), 1)
	})

	t.Run("disabled check is skipped", func(t *testing.T) {
		engine := check.NewEngine(nil)
		engine.Disabled = []string{"duplicate-table"}

		result, err := engine.CheckSource(context.Background(), "test.tbl", source)
		require.NoError(t, err)
		assert.Empty(t, result.Findings)
	})
}

func TestEngineConstructAlwaysRuns(t *testing.T) {
	engine := check.NewEngine(nil)
	engine.Disabled = []string{"construct"}

	result, err := engine.CheckSource(context.Background(), "test.tbl", "not a table\n")
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	assert.Equal(t, "construct", result.Findings[0].CheckID)
}

func TestEngineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := check.NewEngine(nil).CheckSource(ctx, "test.tbl", "#t\n1.0: x\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Empty(t, result.Findings)
}

func TestEngineRecordsCheckErrors(t *testing.T) {
	boom := errors.New("boom")
	registry := check.NewRegistry()
	check.RegisterBuiltins(registry)
	registry.Register(&stubCheck{
		BaseCheck: check.NewBaseCheck("exploding", "always fails", true),
		err:       boom,
	})

	result, err := check.NewEngine(registry).CheckSource(
		context.Background(), "test.tbl", "#t\n1.0: x\n")
	require.NoError(t, err)

	require.Contains(t, result.CheckErrors, "exploding")
	assert.ErrorIs(t, result.CheckErrors["exploding"], boom)
	assert.Empty(t, result.Findings)
}

func TestEngineSortsFindingsBySource(t *testing.T) {
	source := "#roll\n" +
		"1.0: {#gone} and {@far/away#dust}\n"

	result := checkSource(t, source)

	ids := make([]string, 0, len(result.Findings))
	for _, f := range result.Findings {
		ids = append(ids, f.CheckID)
	}
	assert.Equal(t, []string{"construct", "undefined-reference", "external-dependency"}, ids)

	for i := 1; i < len(result.Findings); i++ {
		prev := result.Findings[i-1].Diagnostic.Location.Position
		curr := result.Findings[i].Diagnostic.Location.Position
		assert.LessOrEqual(t, prev, curr)
	}
}

func TestNewEngineDefaultRegistry(t *testing.T) {
	engine := check.NewEngine(nil)
	assert.Same(t, check.DefaultRegistry, engine.Registry)
}

package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotbl/internal/cli"
	"github.com/yaklabco/gotbl/pkg/analysis"
	"github.com/yaklabco/gotbl/pkg/lexer"
)

// lootTables is a small valid table file: one exported table referencing
// a second one, with a dice roll and a modifier.
const lootTables = `#loot[export]
3.0: {1d4} copper coins
1.0: {#gem|indefinite}

#gem
1.0: ruby
1.0: opal
`

// brokenTables references a table that does not exist, which the
// undefined-reference check reports as an error.
const brokenTables = `#main[export]
1.0: {#missing}
`

// orphanTables contains a table nothing reaches, which the
// unreachable-table check reports as a warning.
const orphanTables = `#main[export]
1.0: treasure

#orphan
1.0: dust
`

// writeConfig writes a config file pinning every output-affecting option,
// so test runs are isolated from developer and project configuration.
func writeConfig(t *testing.T) string {
	t.Helper()

	content := "count: 1\ncolor: never\noutput: text\nworkers: 1\nchecks:\n  disable: []\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeTable writes content to name under a fresh temp directory and
// returns the full path.
func writeTable(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the CLI with args and returns stdout, stderr, and the
// command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	info := cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_GenerateDeterministic(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	first, _, err := execute(t, "generate", tblPath, "--seed", "7", "-n", "3", "--config", cfgPath)
	require.NoError(t, err)
	require.NotEmpty(t, strings.TrimSpace(first))

	second, _, err := execute(t, "generate", tblPath, "--seed", "7", "-n", "3", "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed should produce identical output")
}

func TestIntegration_GenerateNamedTable(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "generate", tblPath, "gem", "--config", cfgPath)
	require.NoError(t, err)

	result := strings.TrimSpace(stdout)
	assert.Contains(t, []string{"ruby", "opal"}, result)
}

func TestIntegration_GenerateCountAndSeparator(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "generate", tblPath, "gem", "-n", "3", "--sep", "|", "--config", cfgPath)
	require.NoError(t, err)

	fields := strings.Split(strings.TrimSpace(stdout), "|")
	require.Len(t, fields, 3)
	for _, field := range fields {
		assert.Contains(t, []string{"ruby", "opal"}, field)
	}
}

func TestIntegration_GenerateToFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)
	outPath := filepath.Join(t.TempDir(), "out.txt")

	stdout, _, err := execute(t, "generate", tblPath, "gem", "-o", outPath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Empty(t, stdout, "results should go to the file, not stdout")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(content), "\n"))
	assert.Contains(t, []string{"ruby", "opal"}, strings.TrimSpace(string(content)))
}

func TestIntegration_GenerateDefaultsToExportedTable(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "tables.tbl", "#a\n1.0: aye\n\n#b[export]\n1.0: bee\n")

	stdout, _, err := execute(t, "generate", tblPath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "bee", strings.TrimSpace(stdout),
		"exported table should win over earlier declarations")
}

func TestIntegration_GenerateParseError(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "bad.tbl", "#loot[export]\n1.0: {#broken\n")

	_, stderr, err := execute(t, "generate", tblPath, "--config", cfgPath)

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stderr, "error")
	assert.Contains(t, stderr, "Expected '}'")
	assert.Contains(t, stderr, "^", "diagnostic should include a caret marker")
}

func TestIntegration_GenerateTableNotFound(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	_, stderr, err := execute(t, "generate", tblPath, "nope", "--config", cfgPath)

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stderr, "not found")
	assert.Contains(t, stderr, "available tables")
}

func TestIntegration_GenerateFromMarkdown(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	content := "# Palette\n\nSome prose.\n\n```tbl\n#color[export]\n1.0: teal\n```\n"
	mdPath := writeTable(t, "README.md", content)

	stdout, _, err := execute(t, "generate", mdPath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "teal", strings.TrimSpace(stdout))
}

func TestIntegration_GenerateMissingFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	missing := filepath.Join(t.TempDir(), "missing.tbl")

	_, _, err := execute(t, "generate", missing, "--config", cfgPath)

	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrIssuesFound)
}

func TestIntegration_CheckCleanFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "check", tblPath, "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
}

func TestIntegration_CheckReportsFindings(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "broken.tbl", brokenTables)

	stdout, _, err := execute(t, "check", tblPath, "--config", cfgPath)

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stdout, "undefined-reference")
	assert.Contains(t, stdout, "missing")
}

func TestIntegration_CheckJSONFormat(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "broken.tbl", brokenTables)

	stdout, _, err := execute(t, "check", tblPath, "--format", "json", "--config", cfgPath)

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stdout, `"version"`)
	assert.Contains(t, stdout, `"1.0.0"`)
	assert.Contains(t, stdout, "undefined-reference")
}

func TestIntegration_CheckStrictPromotesWarnings(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "orphan.tbl", orphanTables)

	_, _, err := execute(t, "check", tblPath, "--config", cfgPath)
	require.NoError(t, err, "warnings alone should not fail the run")

	_, _, err = execute(t, "check", tblPath, "--strict", "--config", cfgPath)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestIntegration_CheckDisable(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "orphan.tbl", orphanTables)

	// Strict would fail on the unreachable-table warning; disabling the
	// check removes the finding entirely.
	_, _, err := execute(t, "check", tblPath, "--strict",
		"--disable", "unreachable-table", "--config", cfgPath)

	require.NoError(t, err)
}

func TestIntegration_CheckSkipsDirectories(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.tbl"), []byte(lootTables), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "broken.tbl"), []byte(brokenTables), 0644))

	_, _, err := execute(t, "check", dir, "--config", cfgPath)
	require.ErrorIs(t, err, cli.ErrIssuesFound, "broken draft should fail without --skip")

	_, _, err = execute(t, "check", dir, "--skip", "drafts", "--config", cfgPath)
	require.NoError(t, err)
}

func TestIntegration_TablesList(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tables", tblPath, "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{"loot", "gem"}, lines, "tables should list in declaration order")
}

func TestIntegration_TablesExported(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tables", tblPath, "--exported", "--config", cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "loot", strings.TrimSpace(stdout))
}

func TestIntegration_TablesStats(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tables", tblPath, "--stats", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "TABLE")
	assert.Contains(t, stdout, "RULES")
	assert.Contains(t, stdout, "loot")
	assert.Contains(t, stdout, "yes", "exported tables should be marked")
}

func TestIntegration_TablesJSON(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tables", tblPath, "--json", "--config", cfgPath)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, "1.0.0", report.Version)
	require.Len(t, report.Tables, 2)
	assert.Equal(t, "loot", report.Tables[0].ID)
	assert.True(t, report.Tables[0].Export)
}

func TestIntegration_TokensDump(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tokens", tblPath, "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "hash")
	assert.Contains(t, stdout, "identifier")
	assert.Contains(t, stdout, `"loot"`)
}

func TestIntegration_TokensJSON(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "loot.tbl", lootTables)

	stdout, _, err := execute(t, "tokens", tblPath, "--json", "--config", cfgPath)
	require.NoError(t, err)

	var tokens []lexer.Token
	require.NoError(t, json.Unmarshal([]byte(stdout), &tokens))

	require.NotEmpty(t, tokens)
	assert.Equal(t, lexer.TokenHash, tokens[0].Type)
}

func TestIntegration_TokensLexError(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t)
	tblPath := writeTable(t, "bad.tbl", "#t\n1..0: x\n")

	_, stderr, err := execute(t, "tokens", tblPath, "--config", cfgPath)

	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, stderr, "not a valid number")
}

func TestIntegration_InitCreatesConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(".gotbl.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# gotbl configuration"))

	// A second run refuses to clobber the file unless forced.
	_, _, err = execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestIntegration_InitExample(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "init", "--example")
	require.NoError(t, err)

	require.FileExists(t, "example.tbl")

	// The scaffolded file and config should work end to end.
	stdout, _, err := execute(t, "generate", "example.tbl", "--seed", "3", "--config", ".gotbl.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(stdout))
}

func TestIntegration_InitOutputPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")

	_, _, err := execute(t, "init", "-o", path)
	require.NoError(t, err)

	require.FileExists(t, path)
}

func TestIntegration_UnknownCommand(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "frobnicate")

	require.Error(t, err)
	assert.Equal(t, cli.ExitUsageError, cli.ExitCode(err))
}

func TestIntegration_HelpEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "help", "environment")
	require.NoError(t, err)

	assert.Contains(t, stdout, "GOTBL_COUNT")
	assert.Contains(t, stdout, "GOTBL_SEED")
}

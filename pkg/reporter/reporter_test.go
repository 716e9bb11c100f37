package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotbl/pkg/reporter"
	"github.com/yaklabco/gotbl/pkg/runner"
)

// checkedResult runs the real pipeline over the given sources so
// reporter tests see findings exactly as the check command produces
// them.
func checkedResult(t *testing.T, sources map[string]string) *runner.Result {
	t.Helper()

	dir := t.TempDir()
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	return result
}

const brokenSource = "#loot[export]\n1.0: {#missing}\n"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid formats")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatJSON, true},
		{reporter.FormatSummary, true},
		{reporter.FormatTable, true},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{
				Writer: &buf,
				Format: tt.format,
				Color:  "never",
			})
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_Findings(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTextReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, result.Stats.FindingsTotal, count)

	out := buf.String()
	assert.Contains(t, out, "broken.tbl")
	assert.Contains(t, out, "(undefined-reference)")
	assert.Contains(t, out, "error")
	// Source context with caret markers.
	assert.Contains(t, out, "1.0: {#missing}")
	assert.Contains(t, out, "^")
	// One-line summary at the end.
	assert.Contains(t, out, "in 1 file")
}

func TestTextReporter_RelativizesPaths(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = filepath.Dir(result.Files[0].Path)

	rep := reporter.NewTextReporter(opts)
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "broken.tbl:")
	assert.NotContains(t, buf.String(), result.Files[0].Path+":")
}

func TestTextReporter_CleanRun(t *testing.T) {
	result := checkedResult(t, map[string]string{"good.tbl": "#loot[export]\n1.0: gold\n"})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTextReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No issues found")
}

func TestTextReporter_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTextReporter(opts)
	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestTextReporter_FileError(t *testing.T) {
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "vanished.tbl", Error: errors.New("read file: gone")},
		},
		Stats: runner.Stats{
			FilesDiscovered:    1,
			FilesErrored:       1,
			FindingsBySeverity: map[string]int{},
		},
	}

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTextReporter(opts)
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "vanished.tbl")
	assert.Contains(t, out, "error: read file: gone")
	assert.Contains(t, out, "1 file unreadable")
}

func TestTextReporter_NoContext(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"
	opts.ShowContext = false
	opts.GroupByFile = false
	opts.ShowSummary = false

	rep := reporter.NewTextReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, result.Stats.FindingsTotal, count)

	// No source excerpt and no summary line, just the findings.
	out := buf.String()
	assert.Contains(t, out, "(undefined-reference)")
	assert.NotContains(t, out, "        1.0: {#missing}")
	assert.NotContains(t, out, "in 1 file")
}

func TestJSONReporter(t *testing.T) {
	result := checkedResult(t, map[string]string{
		"broken.tbl": brokenSource,
		"good.tbl":   "#weather[export]\n1.0: rain\n2.0: fog\n",
	})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = reporter.FormatJSON

	rep := reporter.NewJSONReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.FindingsTotal, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Files, 2)

	// Files arrive in discovery order.
	broken := output.Files[0]
	assert.True(t, strings.HasSuffix(broken.Path, "broken.tbl"))
	require.NotEmpty(t, broken.Findings)

	var undefined *reporter.JSONFinding
	for i := range broken.Findings {
		if broken.Findings[i].CheckID == "undefined-reference" {
			undefined = &broken.Findings[i]
		}
	}
	require.NotNil(t, undefined)
	assert.Equal(t, "error", undefined.Severity)
	assert.Equal(t, 2, undefined.Line)
	assert.Positive(t, undefined.Column)

	assert.Equal(t, 2, output.Summary.FilesChecked)
	assert.Equal(t, 1, output.Summary.FilesWithFindings)
	assert.Equal(t, 2, output.Summary.Tables)
	assert.Equal(t, result.Stats.FindingsTotal, output.Summary.TotalFindings)
	assert.Positive(t, output.Summary.BySeverity["error"])
}

func TestJSONReporter_CamelCaseSchema(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"checkId"`)
	assert.Contains(t, out, `"filesChecked"`)
	assert.Contains(t, out, `"bySeverity"`)
	assert.Contains(t, out, `"totalFindings"`)
}

func TestJSONReporter_Compact(t *testing.T) {
	result := checkedResult(t, map[string]string{"good.tbl": "#loot[export]\n1.0: gold\n"})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Compact = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)

	// Compact output is a single line.
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestSummaryReporter(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewSummaryReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.FindingsTotal, count)

	out := buf.String()
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files checked:")
	assert.Contains(t, out, "By check")
	assert.Contains(t, out, "undefined-reference")
	// Aggregate only: no individual finding lines.
	assert.NotContains(t, out, "{#missing}")
}

func TestTableReporter(t *testing.T) {
	result := checkedResult(t, map[string]string{"broken.tbl": brokenSource})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTableReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, result.Stats.FindingsTotal, count)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "LOC")
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, "CHECK")
	assert.Contains(t, out, "undefined-reference")
	assert.Contains(t, out, "files checked")
}

func TestTableReporter_AllPassed(t *testing.T) {
	result := checkedResult(t, map[string]string{"good.tbl": "#loot[export]\n1.0: gold\n"})

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Color = "never"

	rep := reporter.NewTableReporter(opts)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "All files passed!")
}

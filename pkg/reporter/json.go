package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/runner"
)

// jsonSchemaVersion identifies the output schema, bumped on breaking
// field changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Tables   int           `json:"tables"`
	Findings []JSONFinding `json:"findings"`
	Error    string        `json:"error,omitempty"`
}

// JSONFinding represents a single check finding.
type JSONFinding struct {
	CheckID    string `json:"checkId"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	EndColumn  int    `json:"endColumn,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int            `json:"filesChecked"`
	FilesWithFindings int            `json:"filesWithFindings"`
	FilesErrored      int            `json:"filesErrored"`
	Tables            int            `json:"tables"`
	TotalFindings     int            `json:"totalFindings"`
	BySeverity        map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalFindings, nil
}

// buildJSONOutput rebuilds the summary while walking the files, so the
// summary block always agrees with the files array.
func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     file.Path,
			Findings: make([]JSONFinding, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Check != nil {
			if file.Check.Program != nil {
				fileResult.Tables = len(file.Check.Program.Tables)
				output.Summary.Tables += fileResult.Tables
			}

			for _, finding := range file.Check.Findings {
				loc := finding.Diagnostic.Location

				severity := string(finding.Severity())
				if severity == "" {
					severity = string(diag.SeverityWarning)
				}

				fileResult.Findings = append(fileResult.Findings, JSONFinding{
					CheckID:    finding.CheckID,
					Severity:   severity,
					Message:    finding.Message(),
					Line:       loc.Line,
					Column:     loc.Column,
					EndColumn:  loc.EndColumn,
					Suggestion: finding.Diagnostic.Suggestion,
				})

				output.Summary.TotalFindings++
				output.Summary.BySeverity[severity]++
			}
		}

		if len(fileResult.Findings) > 0 {
			output.Summary.FilesWithFindings++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

package runner

import (
	"time"

	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/diag"
)

// FileOutcome wraps a per-file check result with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Check contains the check result for this file.
	// Nil if the file could not be read.
	Check *check.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read or
	// checked.
	FilesErrored int

	// FilesWithFindings is the number of files with at least one finding.
	FilesWithFindings int

	// TablesTotal is the total number of table declarations across all
	// parsed files.
	TablesTotal int

	// FindingsTotal is the total number of findings across all files.
	FindingsTotal int

	// FindingsBySeverity maps severity levels to counts.
	FindingsBySeverity map[string]int

	// Duration is the wall-clock time of the run, discovery included.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether the run found error-severity findings or
// files that could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsBySeverity[string(diag.SeverityError)] > 0 ||
		r.Stats.FilesErrored > 0
}

// HasFindings reports whether any findings were reported.
func (r *Result) HasFindings() bool {
	if r == nil {
		return false
	}
	return r.Stats.FindingsTotal > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		FindingsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Check == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Check.Program != nil {
		r.Stats.TablesTotal += len(outcome.Check.Program.Tables)
	}

	findingCount := len(outcome.Check.Findings)
	r.Stats.FindingsTotal += findingCount
	if findingCount > 0 {
		r.Stats.FilesWithFindings++
	}

	for _, finding := range outcome.Check.Findings {
		severity := string(finding.Severity())
		if severity == "" {
			severity = string(diag.SeverityWarning)
		}
		r.Stats.FindingsBySeverity[severity]++
	}
}

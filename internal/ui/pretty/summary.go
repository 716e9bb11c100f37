package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gotbl/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 findings (2 errors, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FindingsTotal == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files, %d tables checked)",
				stats.FilesProcessed, stats.TablesTotal)) + "\n"
	}

	var parts []string

	if stats.FindingsTotal > 0 {
		findingWord := "findings"
		if stats.FindingsTotal == 1 {
			findingWord = "finding"
		}

		var severityParts []string
		if errors := stats.FindingsBySeverity["error"]; errors > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
		}
		if warnings := stats.FindingsBySeverity["warning"]; warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
		}
		if infos := stats.FindingsBySeverity["info"]; infos > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
		}

		if len(severityParts) > 0 {
			parts = append(parts, fmt.Sprintf("%d %s (%s)",
				stats.FindingsTotal, findingWord, strings.Join(severityParts, ", ")))
		} else {
			parts = append(parts, fmt.Sprintf("%d %s", stats.FindingsTotal, findingWord))
		}

		fileWord := wordFiles
		if stats.FilesWithFindings == 1 {
			fileWord = wordFile
		}
		parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithFindings, fileWord))
	}

	if stats.FilesErrored > 0 {
		fileWord := wordFiles
		if stats.FilesErrored == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s unreadable", stats.FilesErrored, fileWord)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files and tables
	builder.WriteString("  Files checked:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	builder.WriteString("  Tables parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.TablesTotal)) + "\n")

	if stats.FilesWithFindings > 0 {
		builder.WriteString("  Files with issues:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithFindings)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:   " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Findings by severity
	builder.WriteString("  Total findings:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FindingsTotal)) + "\n")

	if errors := stats.FindingsBySeverity["error"]; errors > 0 {
		builder.WriteString("    Errors:           " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.FindingsBySeverity["warning"]; warnings > 0 {
		builder.WriteString("    Warnings:         " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.FindingsBySeverity["info"]; infos > 0 {
		builder.WriteString("    Info:             " +
			s.Info.Render(strconv.Itoa(infos)) + "\n")
	}

	if stats.Duration > 0 {
		builder.WriteString("  Duration:           " +
			s.Dim.Render(stats.Duration.Round(time.Millisecond).String()) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FindingsBySeverity["error"] > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.FindingsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

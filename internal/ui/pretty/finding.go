package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/diag"
)

// FormatFinding formats a single check finding for terminal output.
// When showContext is set, the diagnostic's captured source line is
// rendered beneath the finding with a caret marker.
func (s *Styles) FormatFinding(path string, f check.Finding, showContext bool) string {
	var builder strings.Builder

	d := f.Diagnostic

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		d.Location.Line,
		d.Location.Column,
	)

	// Main line: location  severity  message  (check-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.CheckID.Render("("+f.CheckID+")"),
	))

	if showContext && d.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(d.SourceLine, d.Location))
	}

	if d.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(d.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev diag.Severity) string {
	switch sev {
	case diag.SeverityError:
		return s.Error.Render("error")
	case diag.SeverityWarning:
		return s.Warning.Render("warning")
	case diag.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with carets under the
// offending span.
func (s *Styles) FormatSourceContext(line string, loc diag.SourceLocation) string {
	var builder strings.Builder

	// Indent to align with finding output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if loc.Column > 0 {
		width := 1
		if loc.IsSpan() {
			width = loc.EndColumn - loc.Column
		}
		padding := indent + strings.Repeat(" ", loc.Column-1)
		builder.WriteString(padding + s.Caret.Render(strings.Repeat("^", width)) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.FilePath.Render(path)
	if findingCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d findings)", findingCount))
	}
	return header
}

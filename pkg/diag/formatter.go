package diag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Formatter renders diagnostics for terminal display: a severity-prefixed
// message line, a line:column header, the offending source line with its
// line number, a caret marker (a run of carets for span diagnostics), and
// an indented suggestion line when one is present.
//
// Formatters are value types; the With methods return updated copies so a
// configured formatter can be built in one expression.
type Formatter struct {
	colors      bool
	suggestions bool
}

// NewFormatter returns a formatter with colors disabled and suggestions
// enabled. Callers rendering to a terminal decide color separately, based
// on TTY detection, and opt in via WithColors.
func NewFormatter() Formatter {
	return Formatter{suggestions: true}
}

// WithColors returns a copy of the formatter with color output set.
func (f Formatter) WithColors(enabled bool) Formatter {
	f.colors = enabled
	return f
}

// WithSuggestions returns a copy of the formatter with suggestion
// rendering set.
func (f Formatter) WithSuggestions(enabled bool) Formatter {
	f.suggestions = enabled
	return f
}

// formatterStyles holds the lipgloss styles used by one Format call.
type formatterStyles struct {
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Info       lipgloss.Style
	Location   lipgloss.Style
	Gutter     lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style
	Suggestion lipgloss.Style
}

func newFormatterStyles(colorEnabled bool) formatterStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return formatterStyles{
			Error:      plain,
			Warning:    plain,
			Info:       plain,
			Location:   plain,
			Gutter:     plain,
			SourceLine: plain,
			Caret:      plain,
			Suggestion: plain,
		}
	}
	return formatterStyles{
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Gutter:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),
	}
}

// Format renders a single diagnostic. The output has no trailing newline.
// A nil diagnostic renders as the empty string.
func (f Formatter) Format(d *Diagnostic) string {
	if d == nil {
		return ""
	}

	styles := newFormatterStyles(f.colors)
	loc := d.Location
	lineNum := strconv.Itoa(loc.Line)
	pad := strings.Repeat(" ", len(lineNum))
	bar := pad + " " + styles.Gutter.Render("|")

	lines := []string{
		f.renderSeverity(styles, d.Severity) + ": " + d.Message,
		pad + styles.Gutter.Render("--> ") + styles.Location.Render(fmt.Sprintf("line %d:%d", loc.Line, loc.Column)),
		bar,
		styles.Gutter.Render(lineNum+" | ") + styles.SourceLine.Render(d.SourceLine),
		bar + " " + strings.Repeat(" ", loc.Column-1) + styles.Caret.Render(strings.Repeat("^", caretWidth(loc))),
	}

	if f.suggestions && d.Suggestion != "" {
		lines = append(lines,
			bar,
			pad+" "+styles.Gutter.Render("=")+" "+styles.Suggestion.Render("suggestion: "+d.Suggestion),
		)
	}

	return strings.Join(lines, "\n")
}

// FormatAll renders several diagnostics separated by blank lines.
func (f Formatter) FormatAll(diagnostics []*Diagnostic) string {
	rendered := make([]string, 0, len(diagnostics))
	for _, d := range diagnostics {
		if d == nil {
			continue
		}
		rendered = append(rendered, f.Format(d))
	}
	return strings.Join(rendered, "\n\n")
}

func (f Formatter) renderSeverity(styles formatterStyles, sev Severity) string {
	switch sev {
	case SeverityError:
		return styles.Error.Render("error")
	case SeverityWarning:
		return styles.Warning.Render("warning")
	case SeverityInfo:
		return styles.Info.Render("info")
	default:
		return string(sev)
	}
}

func caretWidth(loc SourceLocation) int {
	if loc.IsSpan() {
		return loc.EndColumn - loc.Column
	}
	return 1
}

package diag_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gotbl/pkg/diag"
)

func TestFormatterPointDiagnostic(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector("#shape\n-1.0: x")
	d := collector.LexDiagnostic(7, "Invalid character '-'").
		WithSuggestion("Negative numbers are not allowed. Use positive weights like 1.0, 2.5")

	got := diag.NewFormatter().Format(&d)
	expected := strings.Join([]string{
		"error: Invalid character '-'",
		" --> line 2:1",
		"  |",
		"2 | -1.0: x",
		"  | ^",
		"  |",
		"  = suggestion: Negative numbers are not allowed. Use positive weights like 1.0, 2.5",
	}, "\n")

	if got != expected {
		t.Errorf("unexpected rendering:\n--- got ---\n%s\n--- want ---\n%s", got, expected)
	}
}

func TestFormatterSpanDiagnostic(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector("#colors[invalid]\n1.0: red")
	d := collector.ParseDiagnosticSpan(7, 16, "Unknown flag in table declaration")

	got := diag.NewFormatter().Format(&d)
	expected := strings.Join([]string{
		"error: Unknown flag in table declaration",
		" --> line 1:8",
		"  |",
		"1 | #colors[invalid]",
		"  |        ^^^^^^^^^",
	}, "\n")

	if got != expected {
		t.Errorf("unexpected rendering:\n--- got ---\n%s\n--- want ---\n%s", got, expected)
	}
}

func TestFormatterSuggestionsDisabled(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector("#shape\n-1.0: x")
	d := collector.LexDiagnostic(7, "Invalid character '-'").
		WithSuggestion("use a positive weight")

	got := diag.NewFormatter().WithSuggestions(false).Format(&d)
	if strings.Contains(got, "suggestion:") {
		t.Errorf("suggestion rendered despite being disabled:\n%s", got)
	}
}

func TestFormatterSeverityPrefix(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector("#a\n1.0: x")

	tests := []struct {
		name     string
		severity diag.Severity
		prefix   string
	}{
		{"error", diag.SeverityError, "error: "},
		{"warning", diag.SeverityWarning, "warning: "},
		{"info", diag.SeverityInfo, "info: "},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			d := collector.SemanticDiagnostic(0, "message").WithSeverity(testCase.severity)
			got := diag.NewFormatter().Format(&d)
			if !strings.HasPrefix(got, testCase.prefix) {
				t.Errorf("expected prefix %q, got %q", testCase.prefix, got)
			}
		})
	}
}

func TestFormatterFormatAll(t *testing.T) {
	t.Parallel()

	collector := diag.NewCollector("#a\n#b")
	first := collector.ParseDiagnostic(0, "first problem")
	second := collector.ParseDiagnostic(3, "second problem")

	got := diag.NewFormatter().FormatAll([]*diag.Diagnostic{&first, nil, &second})

	if !strings.Contains(got, "first problem") || !strings.Contains(got, "second problem") {
		t.Fatalf("missing diagnostics in output:\n%s", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("expected a blank line between diagnostics:\n%s", got)
	}
	if strings.Count(got, "error:") != 2 {
		t.Errorf("expected exactly two rendered diagnostics:\n%s", got)
	}
}

func TestFormatterNilDiagnostic(t *testing.T) {
	t.Parallel()

	if got := diag.NewFormatter().Format(nil); got != "" {
		t.Errorf("expected empty string for nil diagnostic, got %q", got)
	}
}

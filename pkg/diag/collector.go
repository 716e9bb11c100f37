package diag

import "strings"

// Collector builds diagnostics against a single source text. It owns the
// raw source so every diagnostic can carry its enclosing line for display.
//
// Location lookups scan the source from the start on each call, which is
// O(lines). Diagnostics are only constructed on error paths, so the scan
// cost never sits on the hot path.
type Collector struct {
	source string
}

// NewCollector creates a collector for the given source text.
func NewCollector(source string) *Collector {
	return &Collector{source: source}
}

// Source returns the raw text the collector was created with.
func (c *Collector) Source() string {
	return c.source
}

// LocationAt converts a byte offset to a 1-based line and column.
// Offsets outside the source clamp to its bounds.
func (c *Collector) LocationAt(offset int) SourceLocation {
	offset = c.clamp(offset)

	line := 1
	column := 1
	for i := range offset {
		if c.source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}

	return SourceLocation{Position: offset, Line: line, Column: column}
}

// LocationSpan converts a half-open byte range [start, end) to a location
// with end information. When the range stays on one line the end column is
// exact; a range crossing a newline is clipped to the end of the starting
// line so caret rendering never spills across lines.
func (c *Collector) LocationSpan(start, end int) SourceLocation {
	loc := c.LocationAt(start)
	lineStart, lineEnd := c.lineBounds(start)

	end = c.clamp(end)
	if end > lineEnd {
		end = lineEnd
	}
	if end < start {
		end = start
	}

	loc.EndPosition = end
	loc.EndColumn = end - lineStart + 1
	return loc
}

// SourceLineAt returns the text of the line enclosing the given byte
// offset, without its trailing newline.
func (c *Collector) SourceLineAt(offset int) string {
	start, end := c.lineBounds(offset)
	return strings.TrimSuffix(c.source[start:end], "\r")
}

// LexDiagnostic builds an error diagnostic for a lexical failure at offset.
func (c *Collector) LexDiagnostic(offset int, message string) Diagnostic {
	return Diagnostic{
		Kind:       KindLex,
		Severity:   SeverityError,
		Location:   c.LocationAt(offset),
		Message:    message,
		SourceLine: c.SourceLineAt(offset),
	}
}

// ParseDiagnostic builds an error diagnostic for a parse failure at offset.
func (c *Collector) ParseDiagnostic(offset int, message string) Diagnostic {
	return Diagnostic{
		Kind:       KindParse,
		Severity:   SeverityError,
		Location:   c.LocationAt(offset),
		Message:    message,
		SourceLine: c.SourceLineAt(offset),
	}
}

// ParseDiagnosticSpan builds an error diagnostic for a parse failure
// covering the byte range [start, end).
func (c *Collector) ParseDiagnosticSpan(start, end int, message string) Diagnostic {
	return Diagnostic{
		Kind:       KindParse,
		Severity:   SeverityError,
		Location:   c.LocationSpan(start, end),
		Message:    message,
		SourceLine: c.SourceLineAt(start),
	}
}

// SemanticDiagnostic builds a diagnostic for a semantic finding at offset.
func (c *Collector) SemanticDiagnostic(offset int, message string) Diagnostic {
	return Diagnostic{
		Kind:       KindSemantic,
		Severity:   SeverityError,
		Location:   c.LocationAt(offset),
		Message:    message,
		SourceLine: c.SourceLineAt(offset),
	}
}

// SemanticDiagnosticSpan builds a diagnostic for a semantic finding
// covering the byte range [start, end).
func (c *Collector) SemanticDiagnosticSpan(start, end int, message string) Diagnostic {
	return Diagnostic{
		Kind:       KindSemantic,
		Severity:   SeverityError,
		Location:   c.LocationSpan(start, end),
		Message:    message,
		SourceLine: c.SourceLineAt(start),
	}
}

func (c *Collector) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(c.source) {
		return len(c.source)
	}
	return offset
}

// lineBounds returns the [start, end) byte range of the line enclosing
// offset, excluding the terminating newline. An offset pointing at a
// newline belongs to the line that newline terminates.
func (c *Collector) lineBounds(offset int) (int, int) {
	offset = c.clamp(offset)

	start := strings.LastIndexByte(c.source[:offset], '\n') + 1
	end := strings.IndexByte(c.source[offset:], '\n')
	if end < 0 {
		end = len(c.source)
	} else {
		end += offset
	}
	return start, end
}

package lexer

import "github.com/yaklabco/gotbl/pkg/diag"

// ErrorKind discriminates the lexer's failure modes.
type ErrorKind int

const (
	// InvalidCharacter reports a byte the active mode's grammar cannot
	// accept.
	InvalidCharacter ErrorKind = iota
	// InvalidNumber reports a malformed number, a non-positive weight, or
	// a malformed dice roll.
	InvalidNumber
)

// Error is the lexer's failure type. Every error carries a diagnostic
// with the exact source location, the offending line, and an optional
// suggestion.
type Error struct {
	Kind       ErrorKind
	Character  rune   // set for InvalidCharacter
	Reason     string // set for InvalidNumber
	Diagnostic *diag.Diagnostic
}

// Error renders the underlying diagnostic, carets and suggestion
// included, without color.
func (e *Error) Error() string {
	return diag.NewFormatter().Format(e.Diagnostic)
}

func invalidCharacterError(d diag.Diagnostic, character rune) *Error {
	return &Error{Kind: InvalidCharacter, Character: character, Diagnostic: &d}
}

func invalidNumberError(d diag.Diagnostic) *Error {
	return &Error{Kind: InvalidNumber, Reason: d.Message, Diagnostic: &d}
}

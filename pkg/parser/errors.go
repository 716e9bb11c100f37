package parser

import (
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/lexer"
)

// ErrorKind discriminates the parser's failure modes. Lexical failures
// surface through the last two kinds so callers see one error type for
// the whole source-to-tree translation.
type ErrorKind int

const (
	// UnexpectedToken reports a token the grammar does not allow at the
	// current position.
	UnexpectedToken ErrorKind = iota
	// UnexpectedEOF reports input that ended where the grammar required
	// more, including an input with no table at all.
	UnexpectedEOF
	// InvalidCharacter wraps the lexer failure of the same name.
	InvalidCharacter
	// InvalidNumber wraps the lexer failure of the same name.
	InvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidCharacter:
		return "invalid character"
	case InvalidNumber:
		return "invalid number"
	default:
		return "unknown"
	}
}

// Error is the parser's failure type. Every error owns one diagnostic
// with the exact source location and an optional suggestion.
type Error struct {
	Kind       ErrorKind
	Diagnostic *diag.Diagnostic
}

// Error renders the underlying diagnostic, carets and suggestion
// included, without color.
func (e *Error) Error() string {
	return diag.NewFormatter().Format(e.Diagnostic)
}

func unexpectedTokenError(d diag.Diagnostic) *Error {
	return &Error{Kind: UnexpectedToken, Diagnostic: &d}
}

func unexpectedEOFError(d diag.Diagnostic) *Error {
	return &Error{Kind: UnexpectedEOF, Diagnostic: &d}
}

// fromLexError maps a lexer failure onto the parser's error type. The
// mapping is total: both lexer kinds have a counterpart here, and the
// diagnostic is carried over untouched.
func fromLexError(lexErr *lexer.Error) *Error {
	kind := InvalidCharacter
	if lexErr.Kind == lexer.InvalidNumber {
		kind = InvalidNumber
	}
	return &Error{Kind: kind, Diagnostic: lexErr.Diagnostic}
}

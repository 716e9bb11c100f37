package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/diag"
)

// Mode identifies which sub-grammar the lexer is scanning. The mode is
// explicit state: every scan step reads it to pick a scanner and updates
// it on the transition characters.
type Mode int

const (
	// ModeDeclaration scans table headers, flag lists, and rule weights.
	// It is the initial mode and the mode after every newline.
	ModeDeclaration Mode = iota
	// ModeRuleContent scans literal rule text. Entered on ':', exited on
	// newline.
	ModeRuleContent
	// ModeExpression scans inside '{' ... '}'.
	ModeExpression
)

func (m Mode) String() string {
	switch m {
	case ModeDeclaration:
		return "declaration"
	case ModeRuleContent:
		return "rule-content"
	case ModeExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// Lexer scans one source text into tokens.
type Lexer struct {
	source    string
	pos       int
	mode      Mode
	afterPipe bool
	prev      TokenType
	tokens    []Token
	collector *diag.Collector
}

// Tokenize converts source text into its token stream, ending with an EOF
// token. The returned error, when non-nil, is always a *Error.
func Tokenize(source string) ([]Token, error) {
	l := &Lexer{
		source:    source,
		prev:      TokenNewline,
		collector: diag.NewCollector(source),
	}

	for l.pos < len(l.source) {
		var err *Error
		switch l.mode {
		case ModeDeclaration:
			err = l.scanDeclaration()
		case ModeRuleContent:
			err = l.scanRuleContent()
		case ModeExpression:
			err = l.scanExpression()
		}
		if err != nil {
			return nil, err
		}
	}

	l.emit(Token{Type: TokenEOF, Span: ast.NewSpan(len(l.source), len(l.source))})
	return l.tokens, nil
}

func (l *Lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
	l.prev = tok.Type
	l.afterPipe = tok.Type == TokenPipe
}

// emitByte emits a single-byte token at the current position.
func (l *Lexer) emitByte(t TokenType) {
	l.emit(Token{Type: t, Text: l.source[l.pos : l.pos+1], Span: ast.NewSpan(l.pos, l.pos+1)})
	l.pos++
}

func (l *Lexer) emitNewline() {
	l.emit(Token{Type: TokenNewline, Text: "\n", Span: ast.NewSpan(l.pos, l.pos+1)})
	l.pos++
	l.mode = ModeDeclaration
}

func (l *Lexer) scanDeclaration() *Error {
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	switch {
	case r == '\n':
		l.emitNewline()
	case r == ' ' || r == '\t' || r == '\r':
		l.pos++
	case r == '/' && l.peekCommentStart():
		return l.scanComment()
	case r == '#':
		l.emitByte(TokenHash)
	case r == ':':
		l.emitByte(TokenColon)
		l.mode = ModeRuleContent
	case r == '[':
		l.emitByte(TokenLeftBracket)
	case r == ']':
		l.emitByte(TokenRightBracket)
	case r == ',':
		l.emitByte(TokenComma)
	case r >= '0' && r <= '9':
		return l.scanWeight()
	case r == '-':
		return l.invalidCharacter(l.pos, r,
			"Negative numbers are not allowed. Use positive weights like 1.0, 2.5")
	case unicode.IsLetter(r):
		start, word := l.scanWord()
		l.emit(Token{Type: TokenIdentifier, Text: word, Span: ast.NewSpan(start, l.pos)})
	default:
		return l.invalidCharacter(l.pos, r, "")
	}
	return nil
}

func (l *Lexer) scanRuleContent() *Error {
	c := l.source[l.pos]
	switch {
	case c == '\n':
		l.emitNewline()
	case c == '\r' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '\n':
		l.pos++
	case c == '{':
		l.emitByte(TokenLeftBrace)
		l.mode = ModeExpression
	case c == '/' && l.peekCommentStart():
		return l.scanComment()
	default:
		l.scanText()
	}
	return nil
}

// scanText consumes a literal text run, verbatim, up to the next
// expression, newline, or comment start. A lone '/' stays literal; '//'
// and '/*' always begin a comment.
func (l *Lexer) scanText() {
	start := l.pos
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c == '\n' || c == '{' {
			break
		}
		if c == '\r' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '\n' {
			break
		}
		if c == '/' && l.peekCommentStart() {
			break
		}
		l.pos++
	}
	l.emit(Token{Type: TokenText, Text: l.source[start:l.pos], Span: ast.NewSpan(start, l.pos)})
}

func (l *Lexer) scanExpression() *Error {
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	switch {
	case r == '\n':
		l.emitNewline()
	case r == ' ' || r == '\t' || r == '\r':
		l.pos++
	case r == '/' && l.peekCommentStart():
		return l.scanComment()
	case r == '}':
		l.emitByte(TokenRightBrace)
		l.mode = ModeRuleContent
	case r == '#':
		l.emitByte(TokenHash)
	case r == '@':
		l.emitByte(TokenAt)
	case r == '/':
		l.emitByte(TokenSlash)
	case r == '|':
		l.emitByte(TokenPipe)
	case r >= '0' && r <= '9':
		if l.prev == TokenHash {
			return l.invalidCharacter(l.pos, r, "Table ids must start with a letter")
		}
		if l.prev == TokenAt || l.prev == TokenSlash {
			return l.invalidCharacter(l.pos, r, "Publisher and collection names must start with a letter")
		}
		return l.scanDice()
	case unicode.IsLetter(r):
		return l.scanExpressionWord()
	default:
		return l.invalidCharacter(l.pos, r, "")
	}
	return nil
}

// scanExpressionWord classifies a word inside an expression: a modifier
// keyword directly after '|', a countless dice roll like d6 at the start
// of the expression, and a plain identifier otherwise.
func (l *Lexer) scanExpressionWord() *Error {
	start, word := l.scanWord()

	if l.afterPipe {
		tokenType := TokenIdentifier
		if IsModifierKeyword(word) {
			tokenType = TokenModifier
		}
		l.emit(Token{Type: tokenType, Text: word, Span: ast.NewSpan(start, l.pos)})
		return nil
	}

	if l.prev == TokenLeftBrace && isDiceWord(word) {
		return l.emitCountlessDice(start, word)
	}

	l.emit(Token{Type: TokenIdentifier, Text: word, Span: ast.NewSpan(start, l.pos)})
	return nil
}

// scanDice consumes a dice roll of the form <count>d<sides>.
func (l *Lexer) scanDice() *Error {
	start := l.pos
	l.consumeDigits()
	countText := l.source[start:l.pos]

	if l.pos >= len(l.source) || l.source[l.pos] != 'd' {
		return l.malformedDiceFrom(start)
	}
	l.pos++

	sidesStart := l.pos
	if l.pos >= len(l.source) || !isDigit(l.source[l.pos]) {
		return l.malformedDiceFrom(start)
	}
	l.consumeDigits()
	sidesText := l.source[sidesStart:l.pos]

	if l.pos < len(l.source) {
		r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
		if r == '.' || isIdentifierPart(r) {
			return l.malformedDiceFrom(start)
		}
	}

	text := l.source[start:l.pos]
	count64, err := strconv.ParseUint(countText, 10, 32)
	if err != nil {
		return l.malformedDice(start, text)
	}
	sides64, err := strconv.ParseUint(sidesText, 10, 32)
	if err != nil {
		return l.malformedDice(start, text)
	}
	if count64 == 0 {
		return l.invalidDice(start, fmt.Sprintf("Dice roll '%s' must roll at least one die", text))
	}
	if sides64 == 0 {
		return l.invalidDice(start, fmt.Sprintf("Dice roll '%s' must have at least one side", text))
	}

	count := uint32(count64)
	l.emit(Token{
		Type: TokenDiceRoll,
		Text: text,
		Span: ast.NewSpan(start, l.pos),
		Dice: &Dice{Count: &count, Sides: uint32(sides64)},
	})
	return nil
}

// emitCountlessDice emits a d<sides> roll already scanned as a word.
func (l *Lexer) emitCountlessDice(start int, word string) *Error {
	sides64, err := strconv.ParseUint(word[1:], 10, 32)
	if err != nil {
		return l.malformedDice(start, word)
	}
	if sides64 == 0 {
		return l.invalidDice(start, fmt.Sprintf("Dice roll '%s' must have at least one side", word))
	}

	l.emit(Token{
		Type: TokenDiceRoll,
		Text: word,
		Span: ast.NewSpan(start, l.pos),
		Dice: &Dice{Sides: uint32(sides64)},
	})
	return nil
}

// scanComment consumes a comment; the caller has already seen '//' or
// '/*' at the current position. Comments produce no tokens, except that
// a block comment containing a newline emits a newline token and resets
// the mode, exactly as a real newline would.
func (l *Lexer) scanComment() *Error {
	start := l.pos
	if l.source[l.pos+1] == '/' {
		l.pos += 2
		for l.pos < len(l.source) && l.source[l.pos] != '\n' {
			l.pos++
		}
		return nil
	}

	l.pos += 2
	newlineAt := -1
	for l.pos < len(l.source) {
		if l.source[l.pos] == '\n' && newlineAt < 0 {
			newlineAt = l.pos
		}
		if l.source[l.pos] == '*' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/' {
			l.pos += 2
			if newlineAt >= 0 {
				l.emit(Token{Type: TokenNewline, Text: "\n", Span: ast.NewSpan(newlineAt, newlineAt+1)})
				l.mode = ModeDeclaration
			}
			return nil
		}
		l.pos++
	}

	d := l.collector.LexDiagnostic(start, "Unterminated block comment").
		WithSuggestion("Close the comment with */")
	return invalidCharacterError(d, '/')
}

func (l *Lexer) scanWeight() *Error {
	start := l.pos
	l.consumeDigits()

	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		l.pos++
		if l.pos >= len(l.source) || !isDigit(l.source[l.pos]) {
			return l.malformedNumber(start)
		}
		l.consumeDigits()
	}

	if l.pos < len(l.source) {
		r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
		if r == '.' || isIdentifierPart(r) {
			return l.malformedNumber(start)
		}
	}

	text := l.source[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.malformedNumber(start)
	}
	if value <= 0 {
		d := l.collector.LexDiagnostic(start, fmt.Sprintf("Weight must be positive, but got %s", text)).
			WithSuggestion("Try using a positive number like 1.0, 2.5, or 10")
		return invalidNumberError(d)
	}

	l.emit(Token{Type: TokenNumber, Text: text, Value: value, Span: ast.NewSpan(start, l.pos)})
	return nil
}

// scanWord consumes an identifier-shaped run: letters, digits,
// underscores, and hyphens, starting at a letter.
func (l *Lexer) scanWord() (int, string) {
	start := l.pos
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIdentifierPart(r) {
			break
		}
		l.pos += size
	}
	return start, l.source[start:l.pos]
}

func (l *Lexer) consumeDigits() {
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.pos++
	}
}

// consumeNumberJunk extends the current position over the remainder of a
// malformed numeric run so the diagnostic can show the whole offender.
func (l *Lexer) consumeNumberJunk() {
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if r != '.' && !isIdentifierPart(r) {
			break
		}
		l.pos += size
	}
}

func (l *Lexer) malformedNumber(start int) *Error {
	l.consumeNumberJunk()
	text := l.source[start:l.pos]
	d := l.collector.LexDiagnostic(start, fmt.Sprintf("'%s' is not a valid number", text)).
		WithSuggestion("Numbers should be positive decimal values like 1.5, 2.0, or 42")
	return invalidNumberError(d)
}

func (l *Lexer) malformedDiceFrom(start int) *Error {
	l.consumeNumberJunk()
	return l.malformedDice(start, l.source[start:l.pos])
}

func (l *Lexer) malformedDice(start int, text string) *Error {
	d := l.collector.LexDiagnostic(start, fmt.Sprintf("'%s' is not a valid dice roll", text)).
		WithSuggestion("Dice rolls look like d6, 2d10, or 3d8")
	return invalidNumberError(d)
}

func (l *Lexer) invalidDice(start int, message string) *Error {
	d := l.collector.LexDiagnostic(start, message).
		WithSuggestion("Dice rolls look like d6, 2d10, or 3d8")
	return invalidNumberError(d)
}

func (l *Lexer) invalidCharacter(offset int, r rune, suggestion string) *Error {
	d := l.collector.LexDiagnostic(offset, fmt.Sprintf("Invalid character '%c'", r))
	if suggestion != "" {
		d = d.WithSuggestion(suggestion)
	}
	return invalidCharacterError(d, r)
}

// peekCommentStart reports whether the '/' at the current position opens
// a comment.
func (l *Lexer) peekCommentStart() bool {
	return l.pos+1 < len(l.source) &&
		(l.source[l.pos+1] == '/' || l.source[l.pos+1] == '*')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDiceWord(word string) bool {
	if len(word) < 2 || word[0] != 'd' {
		return false
	}
	for i := 1; i < len(word); i++ {
		if !isDigit(word[i]) {
			return false
		}
	}
	return true
}

func isIdentifierPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

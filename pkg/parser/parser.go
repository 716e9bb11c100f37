// Package parser turns tokenized source text into the typed syntax
// tree. It is a recursive-descent parser over the lexer's token stream;
// every failure carries a caret diagnostic pointing at the offending
// token.
package parser

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotbl/pkg/ast"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/lexer"
)

// Parse translates source text into a program. The returned error, when
// non-nil, is always a *Error; lexer failures map onto it, so this is
// the single failure type for source-to-tree translation.
func Parse(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, fromLexError(err.(*lexer.Error))
	}
	return ParseTokens(source, tokens)
}

// ParseTokens parses an already-tokenized source. The source text is
// still needed to build diagnostics.
func ParseTokens(source string, tokens []lexer.Token) (*ast.Program, error) {
	p := &parser{tokens: tokens, collector: diag.NewCollector(source)}
	program, perr := p.parseProgram()
	if perr != nil {
		return nil, perr
	}
	return program, nil
}

type parser struct {
	tokens    []lexer.Token
	pos       int
	collector *diag.Collector
}

// peek returns the current token without consuming it. The stream always
// ends with an EOF token, so peek is safe at any position.
func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

// next consumes and returns the current token. The EOF token is never
// consumed, so the parser cannot run off the end of the stream.
func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) skipNewlines() {
	for p.peek().Type == lexer.TokenNewline {
		p.next()
	}
}

func (p *parser) parseProgram() (*ast.Program, *Error) {
	program := &ast.Program{}

	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenNewline:
			p.next()
		case lexer.TokenHash:
			table, err := p.parseTable()
			if err != nil {
				return nil, err
			}
			program.Tables = append(program.Tables, table)
		case lexer.TokenEOF:
			if len(program.Tables) == 0 {
				return nil, p.errorAt(tok, "Expected at least one table definition",
					"Start a table with '#' followed by a name, like '#colors'")
			}
			return program, nil
		default:
			return nil, p.errorAt(tok,
				fmt.Sprintf("Expected '#' to start a table definition, but found %s", describe(tok)),
				"Start a table with '#' followed by a name, like '#colors'")
		}
	}
}

func (p *parser) parseTable() (ast.Node[ast.Table], *Error) {
	var table ast.Table

	hash := p.next()
	start := hash.Span.Start

	id := p.next()
	if id.Type != lexer.TokenIdentifier {
		return ast.Node[ast.Table]{}, p.errorAt(id,
			fmt.Sprintf("Expected a table id after '#', but found %s", describe(id)),
			"Table ids start with a letter, like '#colors'")
	}
	table.Metadata.ID = id.Text
	end := id.Span.End

	if p.peek().Type == lexer.TokenLeftBracket {
		flagsEnd, err := p.parseFlags(&table.Metadata)
		if err != nil {
			return ast.Node[ast.Table]{}, err
		}
		end = flagsEnd
	}

	switch p.peek().Type {
	case lexer.TokenNewline, lexer.TokenHash, lexer.TokenEOF:
	default:
		tok := p.peek()
		return ast.Node[ast.Table]{}, p.errorAt(tok,
			fmt.Sprintf("Expected a newline after the table declaration, but found %s", describe(tok)),
			"Put each rule on its own line")
	}
	p.skipNewlines()

	for p.peek().Type == lexer.TokenNumber {
		rule, err := p.parseRule()
		if err != nil {
			return ast.Node[ast.Table]{}, err
		}
		table.Rules = append(table.Rules, rule)
		end = rule.Span.End
		p.skipNewlines()
	}

	return ast.NewNode(table, ast.NewSpan(start, end)), nil
}

// parseFlags consumes a '[' ... ']' flag list and returns the byte
// offset just past the closing bracket.
func (p *parser) parseFlags(meta *ast.TableMetadata) (int, *Error) {
	bracket := p.next()

	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenIdentifier:
			if tok.Text != "export" {
				return 0, p.unknownFlagError(bracket, tok)
			}
			meta.Export = true
			p.next()
		case lexer.TokenComma:
			p.next()
		case lexer.TokenRightBracket:
			p.next()
			return tok.Span.End, nil
		case lexer.TokenNewline, lexer.TokenHash, lexer.TokenEOF:
			return 0, p.errorAt(tok,
				fmt.Sprintf("Expected ']' to close the flag list, but found %s", describe(tok)),
				"Close the flag list with ']'")
		default:
			return 0, p.unknownFlagError(bracket, tok)
		}
	}
}

// unknownFlagError builds a diagnostic spanning the whole bracketed
// list, from '[' up to ']' or wherever the list stops making sense,
// rather than pointing at the one offending token.
func (p *parser) unknownFlagError(bracket, offending lexer.Token) *Error {
	end := offending.Span.End
	for i := p.pos; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		if tok.Type == lexer.TokenRightBracket {
			end = tok.Span.End
			break
		}
		if tok.Type == lexer.TokenNewline || tok.Type == lexer.TokenHash || tok.Type == lexer.TokenEOF {
			break
		}
		end = tok.Span.End
	}

	d := p.collector.ParseDiagnosticSpan(bracket.Span.Start, end,
		fmt.Sprintf("Unknown flag '%s' in table declaration", offending.Text)).
		WithSuggestion("The only supported flag is 'export'")
	return unexpectedTokenError(d)
}

func (p *parser) parseRule() (ast.Node[ast.Rule], *Error) {
	weight := p.next()
	start := weight.Span.Start

	colon := p.next()
	if colon.Type != lexer.TokenColon {
		return ast.Node[ast.Rule]{}, p.errorAt(colon,
			fmt.Sprintf("Expected ':' after the rule weight, but found %s", describe(colon)),
			"Write rules as 'weight: content', like '1.0: some text'")
	}

	rule := ast.Rule{Weight: weight.Value}
	end := colon.Span.End

loop:
	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenText:
			p.next()
			rule.Content = append(rule.Content, ast.NewText(tok.Text))
			end = tok.Span.End
		case lexer.TokenLeftBrace:
			expr, exprEnd, err := p.parseExpression()
			if err != nil {
				return ast.Node[ast.Rule]{}, err
			}
			rule.Content = append(rule.Content, ast.NewExpressionContent(expr))
			end = exprEnd
		case lexer.TokenNewline, lexer.TokenEOF:
			break loop
		default:
			return ast.Node[ast.Rule]{}, p.errorAt(tok,
				fmt.Sprintf("Unexpected %s in rule content", describe(tok)), "")
		}
	}

	if emptyContent(rule.Content) {
		d := p.collector.ParseDiagnostic(colon.Span.Start, "Rule content cannot be empty").
			WithSuggestion("Add text or a reference after ':', like '1.0: some value'")
		return ast.Node[ast.Rule]{}, unexpectedTokenError(d)
	}

	return ast.NewNode(rule, ast.NewSpan(start, end)), nil
}

// emptyContent reports whether a rule has no content worth keeping:
// either nothing at all, or only text segments that are all whitespace.
func emptyContent(content []ast.RuleContent) bool {
	for _, item := range content {
		if item.Kind != ast.ContentText {
			return false
		}
		if strings.TrimSpace(item.Text) != "" {
			return false
		}
	}
	return true
}

// parseExpression consumes a '{' ... '}' expression and returns it with
// the byte offset just past the closing brace.
func (p *parser) parseExpression() (ast.Expression, int, *Error) {
	p.next()

	tok := p.peek()
	switch tok.Type {
	case lexer.TokenHash:
		p.next()
		return p.parseTableReference()
	case lexer.TokenAt:
		p.next()
		return p.parseExternalReference()
	case lexer.TokenDiceRoll:
		p.next()
		closing, err := p.expectRightBrace()
		if err != nil {
			return ast.Expression{}, 0, err
		}
		return ast.NewDiceRoll(tok.Dice.Count, tok.Dice.Sides), closing.Span.End, nil
	default:
		return ast.Expression{}, 0, p.errorAt(tok,
			fmt.Sprintf("Expected a table reference, external reference, or dice roll after '{', but found %s", describe(tok)),
			"Write '{#table-id}', '{@publisher/collection#table-id}', or '{2d6}'")
	}
}

func (p *parser) parseTableReference() (ast.Expression, int, *Error) {
	id := p.next()
	if id.Type != lexer.TokenIdentifier {
		return ast.Expression{}, 0, p.errorAt(id,
			fmt.Sprintf("Expected a table id after '#', but found %s", describe(id)),
			"Reference tables like '{#table-id}'")
	}

	modifiers, err := p.parseModifiers()
	if err != nil {
		return ast.Expression{}, 0, err
	}

	closing, err := p.expectRightBrace()
	if err != nil {
		return ast.Expression{}, 0, err
	}
	return ast.NewTableReference(id.Text, modifiers), closing.Span.End, nil
}

func (p *parser) parseExternalReference() (ast.Expression, int, *Error) {
	publisher := p.next()
	if publisher.Type != lexer.TokenIdentifier {
		return ast.Expression{}, 0, p.errorAt(publisher,
			fmt.Sprintf("Expected a publisher name after '@', but found %s", describe(publisher)),
			"External references look like '{@publisher/collection#table-id}'")
	}

	slash := p.next()
	if slash.Type != lexer.TokenSlash {
		return ast.Expression{}, 0, p.errorAt(slash,
			fmt.Sprintf("Expected '/' after the publisher name, but found %s", describe(slash)),
			"External references look like '{@publisher/collection#table-id}'")
	}

	collection := p.next()
	if collection.Type != lexer.TokenIdentifier {
		return ast.Expression{}, 0, p.errorAt(collection,
			fmt.Sprintf("Expected a collection name after '/', but found %s", describe(collection)),
			"External references look like '{@publisher/collection#table-id}'")
	}

	hash := p.next()
	if hash.Type != lexer.TokenHash {
		return ast.Expression{}, 0, p.errorAt(hash,
			fmt.Sprintf("Expected '#' before the table id, but found %s", describe(hash)),
			"External references look like '{@publisher/collection#table-id}'")
	}

	id := p.next()
	if id.Type != lexer.TokenIdentifier {
		return ast.Expression{}, 0, p.errorAt(id,
			fmt.Sprintf("Expected a table id after '#', but found %s", describe(id)),
			"External references look like '{@publisher/collection#table-id}'")
	}

	modifiers, err := p.parseModifiers()
	if err != nil {
		return ast.Expression{}, 0, err
	}

	closing, err := p.expectRightBrace()
	if err != nil {
		return ast.Expression{}, 0, err
	}
	return ast.NewExternalTableReference(publisher.Text, collection.Text, id.Text, modifiers), closing.Span.End, nil
}

func (p *parser) parseModifiers() ([]string, *Error) {
	var modifiers []string

	for p.peek().Type == lexer.TokenPipe {
		p.next()

		tok := p.next()
		if tok.Type != lexer.TokenModifier {
			message := fmt.Sprintf("Expected a modifier after '|', but found %s", describe(tok))
			if tok.Type == lexer.TokenIdentifier {
				message = fmt.Sprintf("Unknown modifier '%s'", tok.Text)
			}
			return nil, p.errorAt(tok, message,
				"Valid modifiers are: "+strings.Join(lexer.ModifierKeywords(), ", "))
		}
		modifiers = append(modifiers, tok.Text)
	}

	return modifiers, nil
}

func (p *parser) expectRightBrace() (lexer.Token, *Error) {
	tok := p.next()
	if tok.Type != lexer.TokenRightBrace {
		return lexer.Token{}, p.errorAt(tok,
			fmt.Sprintf("Expected '}' to close the expression, but found %s", describe(tok)),
			"Close the expression with '}'")
	}
	return tok, nil
}

// errorAt builds an error whose diagnostic underlines the offending
// token. An EOF offender reports as UnexpectedEOF, everything else as
// UnexpectedToken.
func (p *parser) errorAt(tok lexer.Token, message, suggestion string) *Error {
	d := p.collector.ParseDiagnosticSpan(tok.Span.Start, tok.Span.End, message)
	if suggestion != "" {
		d = d.WithSuggestion(suggestion)
	}
	if tok.Type == lexer.TokenEOF {
		return unexpectedEOFError(d)
	}
	return unexpectedTokenError(d)
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenNewline:
		return "end of line"
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}

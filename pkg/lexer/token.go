// Package lexer converts TBL source text into a token stream. Scanning is
// mode-sensitive: table declarations, rule content, and embedded {...}
// expressions each use their own sub-grammar, and the active mode is
// carried as explicit state across the scan loop.
package lexer

import "github.com/yaklabco/gotbl/pkg/ast"

// TokenType classifies a token.
type TokenType string

const (
	TokenNumber       TokenType = "number"
	TokenColon        TokenType = "colon"
	TokenHash         TokenType = "hash"
	TokenIdentifier   TokenType = "identifier"
	TokenLeftBracket  TokenType = "left_bracket"
	TokenRightBracket TokenType = "right_bracket"
	TokenLeftBrace    TokenType = "left_brace"
	TokenRightBrace   TokenType = "right_brace"
	TokenPipe         TokenType = "pipe"
	TokenAt           TokenType = "at"
	TokenSlash        TokenType = "slash"
	TokenComma        TokenType = "comma"
	TokenModifier     TokenType = "modifier"
	TokenDiceRoll     TokenType = "dice_roll"
	TokenText         TokenType = "text"
	TokenNewline      TokenType = "newline"
	TokenEOF          TokenType = "eof"
)

// Dice holds the parsed parts of a dice-roll token. A nil Count means a
// single die.
type Dice struct {
	Count *uint32 `json:"count,omitempty"`
	Sides uint32  `json:"sides"`
}

// Token is one lexical unit of a TBL source. Text is the literal source
// text the token covers. Value is set for number tokens; Dice is set for
// dice-roll tokens.
type Token struct {
	Type  TokenType `json:"type"`
	Text  string    `json:"text"`
	Span  ast.Span  `json:"span"`
	Value float64   `json:"value,omitempty"`
	Dice  *Dice     `json:"dice,omitempty"`
}

// Modifiers recognized after '|' inside an expression. Any other word in
// that position lexes as a plain identifier.
var modifierKeywords = map[string]bool{
	"indefinite": true,
	"definite":   true,
	"capitalize": true,
	"uppercase":  true,
	"lowercase":  true,
}

// IsModifierKeyword reports whether word is one of the recognized
// modifier names.
func IsModifierKeyword(word string) bool {
	return modifierKeywords[word]
}

// ModifierKeywords returns the recognized modifier names in a stable
// order, for use in suggestions and documentation.
func ModifierKeywords() []string {
	return []string{"capitalize", "definite", "indefinite", "lowercase", "uppercase"}
}

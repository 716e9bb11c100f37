package ast

import (
	"fmt"
	"strings"
)

// Program is the root of a parsed TBL source: the tables in declaration
// order.
type Program struct {
	Tables []Node[Table] `json:"tables"`
}

// TableMetadata carries a table's declaration attributes.
type TableMetadata struct {
	ID     string `json:"id"`
	Export bool   `json:"export"`
}

// Table is a named, optionally exported group of weighted rules.
// A table with no rules parses successfully; the restriction to
// non-empty tables is enforced when a collection is built.
type Table struct {
	Metadata TableMetadata `json:"metadata"`
	Rules    []Node[Rule]  `json:"rules"`
}

// Rule is one weighted alternative within a table. Weight is always
// positive; the lexer rejects anything else.
type Rule struct {
	Weight  float64       `json:"weight"`
	Content []RuleContent `json:"content"`
}

// ContentKind discriminates the payloads rule content can carry.
type ContentKind string

const (
	ContentText       ContentKind = "text"
	ContentExpression ContentKind = "expression"
)

// RuleContent is one element of a rule body: a literal text segment,
// kept verbatim, or an embedded expression.
type RuleContent struct {
	Kind       ContentKind `json:"kind"`
	Text       string      `json:"text,omitempty"`
	Expression *Expression `json:"expression,omitempty"`
}

// NewText creates a literal text content element.
func NewText(text string) RuleContent {
	return RuleContent{Kind: ContentText, Text: text}
}

// NewExpressionContent wraps an expression as a content element.
func NewExpressionContent(expr Expression) RuleContent {
	return RuleContent{Kind: ContentExpression, Expression: &expr}
}

// ExpressionKind discriminates the expression variants.
type ExpressionKind string

const (
	ExprTableReference         ExpressionKind = "table_reference"
	ExprExternalTableReference ExpressionKind = "external_table_reference"
	ExprDiceRoll               ExpressionKind = "dice_roll"
)

// Expression is an embedded {...} construct inside rule content: a
// reference to a table in the same collection, a reference into another
// collection, or a dice roll.
type Expression struct {
	Kind ExpressionKind `json:"kind"`

	// Reference fields, internal and external. Modifiers apply left to
	// right to the expanded result.
	TableID   string   `json:"table_id,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`

	// External reference coordinates.
	Publisher  string `json:"publisher,omitempty"`
	Collection string `json:"collection,omitempty"`

	// Dice roll fields. A nil Count means a single die.
	Count *uint32 `json:"count,omitempty"`
	Sides uint32  `json:"sides,omitempty"`
}

// NewTableReference creates a reference to a table in the same collection.
func NewTableReference(tableID string, modifiers []string) Expression {
	return Expression{Kind: ExprTableReference, TableID: tableID, Modifiers: modifiers}
}

// NewExternalTableReference creates a reference into another collection.
func NewExternalTableReference(publisher, collection, tableID string, modifiers []string) Expression {
	return Expression{
		Kind:       ExprExternalTableReference,
		Publisher:  publisher,
		Collection: collection,
		TableID:    tableID,
		Modifiers:  modifiers,
	}
}

// NewDiceRoll creates a dice-roll expression. Pass a nil count for a
// single die.
func NewDiceRoll(count *uint32, sides uint32) Expression {
	return Expression{Kind: ExprDiceRoll, Count: count, Sides: sides}
}

// String renders the expression in its canonical source form, braces
// included.
func (e Expression) String() string {
	var b strings.Builder
	b.WriteByte('{')

	switch e.Kind {
	case ExprTableReference:
		b.WriteByte('#')
		b.WriteString(e.TableID)
		for _, m := range e.Modifiers {
			b.WriteByte('|')
			b.WriteString(m)
		}
	case ExprExternalTableReference:
		b.WriteByte('@')
		b.WriteString(e.Publisher)
		b.WriteByte('/')
		b.WriteString(e.Collection)
		b.WriteByte('#')
		b.WriteString(e.TableID)
		for _, m := range e.Modifiers {
			b.WriteByte('|')
			b.WriteString(m)
		}
	case ExprDiceRoll:
		if e.Count != nil {
			fmt.Fprintf(&b, "%d", *e.Count)
		}
		fmt.Fprintf(&b, "d%d", e.Sides)
	}

	b.WriteByte('}')
	return b.String()
}

// ContentText renders the rule's content back to canonical source form:
// text segments verbatim, expressions re-braced, the whole result
// trimmed of surrounding whitespace.
func (r Rule) ContentText() string {
	var b strings.Builder
	for _, item := range r.Content {
		switch item.Kind {
		case ContentText:
			b.WriteString(item.Text)
		case ContentExpression:
			if item.Expression != nil {
				b.WriteString(item.Expression.String())
			}
		}
	}
	return strings.TrimSpace(b.String())
}

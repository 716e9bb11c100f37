package ast

// Node pairs a parsed value with the span it came from. The value is
// owned exclusively by its parent container.
type Node[T any] struct {
	Value T    `json:"value"`
	Span  Span `json:"span"`
}

// NewNode wraps a value with its source span.
func NewNode[T any](value T, span Span) Node[T] {
	return Node[T]{Value: value, Span: span}
}

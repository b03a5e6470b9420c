// Package token defines the lexical tokens produced by the lexer.
package token

import (
	"fmt"

	"github.com/leonardosnt/assembler-interpreter/span"
)

// Type identifies the kind of a token.
type Type int

const (
	Symbol Type = iota
	String
	Integer
	Colon
	Comma
	BracketOpen
	BracketClose
	NewLine
	EOF
)

var names = map[Type]string{
	Symbol:       "SYMBOL",
	String:       "STRING",
	Integer:      "INT",
	Colon:        ":",
	Comma:        ",",
	BracketOpen:  "[",
	BracketClose: "]",
	NewLine:      "NEW_LINE",
	EOF:          "EOF",
}

// friendly is used inside error messages, where a lowercase, reader-facing
// word reads better than the token's canonical name.
var friendly = map[Type]string{
	Symbol:       "symbol",
	String:       "string",
	Integer:      "integer",
	Colon:        ":",
	Comma:        ",",
	BracketOpen:  "[",
	BracketClose: "]",
	NewLine:      "new line",
	EOF:          "eof",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Friendly returns the reader-facing spelling used in diagnostic messages.
func (t Type) Friendly() string {
	if s, ok := friendly[t]; ok {
		return s
	}
	return t.String()
}

// Token is a single lexical unit with its source span. Exactly one of the
// Str/Int fields is meaningful, depending on Type.
type Token struct {
	Type Type
	Str  string
	Int  int64
	Span span.Span
}

// Value renders the token the way diagnostics quote it, e.g. 'foo' for a
// string literal, 5 for an integer, jmp for a symbol.
func (t Token) Value() string {
	switch t.Type {
	case Symbol:
		return t.Str
	case String:
		return "'" + t.Str + "'"
	case Integer:
		return fmt.Sprintf("%d", t.Int)
	case NewLine:
		return "<new line>"
	case EOF:
		return "<eof>"
	default:
		return t.Type.Friendly()
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value())
}

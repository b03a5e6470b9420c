package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardosnt/assembler-interpreter/span"
)

func TestValue(t *testing.T) {
	cases := []struct {
		name string
		tok  Token
		want string
	}{
		{"symbol", Token{Type: Symbol, Str: "jmp"}, "jmp"},
		{"string", Token{Type: String, Str: "hi"}, "'hi'"},
		{"integer", Token{Type: Integer, Int: 42}, "42"},
		{"newline", Token{Type: NewLine}, "<new line>"},
		{"eof", Token{Type: EOF}, "<eof>"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.tok.Value())
		})
	}
}

func TestFriendly(t *testing.T) {
	assert.Equal(t, "symbol", Symbol.Friendly())
	assert.Equal(t, "]", BracketClose.Friendly())
	assert.Equal(t, "new line", NewLine.Friendly())
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: Integer, Int: 3, Span: span.Span{Line: 1, ColStart: 0, ColEnd: 1}}
	assert.Contains(t, tok.String(), "INT")
}

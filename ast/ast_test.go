package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardosnt/assembler-interpreter/span"
	"github.com/leonardosnt/assembler-interpreter/token"
)

func TestOperandSimple_Span(t *testing.T) {
	sp := span.Span{Line: 1, ColStart: 2, ColEnd: 5}
	op := &OperandSimple{Token: token.Token{Type: token.Symbol, Str: "a", Span: sp}}
	assert.Equal(t, sp, op.Span())
}

func TestOperandMemAddress_Span(t *testing.T) {
	sp := span.Span{Line: 2, ColStart: 0, ColEnd: 4}
	op := &OperandMemAddress{Register: token.Token{Str: "a"}, Sp: sp}
	assert.Equal(t, sp, op.Span())
}

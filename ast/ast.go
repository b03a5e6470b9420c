// Package ast defines the parse tree produced by the parser: operands,
// instructions, labels and the top-level program node.
package ast

import (
	"github.com/leonardosnt/assembler-interpreter/span"
	"github.com/leonardosnt/assembler-interpreter/token"
)

// Operand is either an OperandSimple or an OperandMemAddress.
type Operand interface {
	Span() span.Span
	operandNode()
}

// OperandSimple wraps a single token: a symbol, integer or string.
type OperandSimple struct {
	Token token.Token
}

func (o *OperandSimple) Span() span.Span { return o.Token.Span }
func (*OperandSimple) operandNode()      {}

// OperandMemAddress spells `[reg]` or `offset[reg]`. Offset is nil
// when the bracketed form has no leading integer.
type OperandMemAddress struct {
	Offset   *token.Token
	Register token.Token
	Sp       span.Span
}

func (o *OperandMemAddress) Span() span.Span { return o.Sp }
func (*OperandMemAddress) operandNode()      {}

// Instruction is an opcode symbol together with its ordered operands.
type Instruction struct {
	Opcode   token.Token
	Operands []Operand
}

// Label is a name followed by one or more instructions belonging to it.
type Label struct {
	Name         token.Token
	Instructions []*Instruction
}

// TopLevel is the root of the parse tree: label-less instructions in
// source order, followed by labels in source order.
type TopLevel struct {
	Instructions []*Instruction
	Labels       []*Label
}

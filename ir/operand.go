package ir

import "github.com/leonardosnt/assembler-interpreter/span"

// Operand is the lowered form of an AST operand: exactly one of the
// concrete types below. Every operand carries the span of the source
// token(s) it lowered from, so a per-operand diagnostic can point at the
// operand itself rather than at the instruction's mnemonic.
type Operand interface {
	Span() span.Span
	operand()
}

// Register names one of the 26 registers by index (0 for 'a' .. 25 for
// 'z'). Index is -1 when the source symbol wasn't a single lowercase
// letter; the validator turns that into "invalid register".
type Register struct {
	Index int
	Sp    span.Span
}

// Integer is a literal numeric operand.
type Integer struct {
	Value int64
	Sp    span.Span
}

// String is a literal quoted operand, only meaningful to msg and print.
type String struct {
	Value string
	Sp    span.Span
}

// Branch is a resolved jump/call target: the index into Program.Instructions
// of the first instruction under the target label.
type Branch struct {
	Target int
	Sp     span.Span
}

// UnresolvedBranch is a branch operand before label resolution runs. The
// builder leaves one in the Program when no label matches; the validator
// reports each one as "label not defined".
type UnresolvedBranch struct {
	Label string
	Sp    span.Span
}

// MemAddress is `offset[register]` or `[register]` (Offset zero). Register
// carries the same -1-for-invalid convention as Register.
type MemAddress struct {
	Register int
	Offset   int64
	Sp       span.Span
}

func (o Register) Span() span.Span         { return o.Sp }
func (o Integer) Span() span.Span          { return o.Sp }
func (o String) Span() span.Span           { return o.Sp }
func (o Branch) Span() span.Span           { return o.Sp }
func (o UnresolvedBranch) Span() span.Span { return o.Sp }
func (o MemAddress) Span() span.Span       { return o.Sp }

func (Register) operand()         {}
func (Integer) operand()          {}
func (String) operand()           {}
func (Branch) operand()           {}
func (UnresolvedBranch) operand() {}
func (MemAddress) operand()       {}

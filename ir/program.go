package ir

import (
	"fmt"
	"strings"

	"github.com/leonardosnt/assembler-interpreter/span"
)

// Instruction is a single lowered operation with its resolved operands and
// the span of the mnemonic that produced it, kept for runtime diagnostics.
type Instruction struct {
	Opcode   Opcode
	Operands []Operand
	Span     span.Span
}

// Program is a flat instruction stream ready for validation or execution.
// Label-less instructions come first in source order, followed by every
// label's instructions in source order.
type Program struct {
	Instructions []Instruction
}

// Disassemble renders the program one instruction per line, in the style
// of an objdump listing: index, mnemonic, operands.
func (p *Program) Disassemble() string {
	var b strings.Builder
	for i, ins := range p.Instructions {
		fmt.Fprintf(&b, "%4d  %s", i, ins.Opcode)
		for j, op := range ins.Operands {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte(' ')
			b.WriteString(formatOperand(op))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatOperand(op Operand) string {
	switch o := op.(type) {
	case Register:
		if o.Index < 0 {
			return "<invalid register>"
		}
		return string(rune('a' + o.Index))
	case Integer:
		return fmt.Sprintf("%d", o.Value)
	case String:
		return fmt.Sprintf("%q", o.Value)
	case Branch:
		return fmt.Sprintf("L%d", o.Target)
	case UnresolvedBranch:
		return o.Label
	case MemAddress:
		reg := "<invalid register>"
		if o.Register >= 0 {
			reg = string(rune('a' + o.Register))
		}
		if o.Offset == 0 {
			return fmt.Sprintf("[%s]", reg)
		}
		return fmt.Sprintf("%d[%s]", o.Offset, reg)
	default:
		return "?"
	}
}

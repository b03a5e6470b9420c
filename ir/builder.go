package ir

import (
	"github.com/leonardosnt/assembler-interpreter/ast"
	"github.com/leonardosnt/assembler-interpreter/token"
)

// labelRange records where a label's instructions landed in the flattened
// instruction stream, used to resolve branch targets after every
// instruction has been converted.
type labelRange struct {
	name  string
	start int
}

// Build flattens top into a Program and resolves every branch operand to
// the instruction index its label starts at. Label-less instructions are
// placed first, then each label's instructions in source order.
// A branch whose label has no match is left as an UnresolvedBranch for the
// validator to report.
func Build(top *ast.TopLevel) *Program {
	prog := &Program{}

	for _, inst := range top.Instructions {
		prog.Instructions = append(prog.Instructions, convertInstruction(inst))
	}

	var labels []labelRange
	for _, lbl := range top.Labels {
		labels = append(labels, labelRange{name: lbl.Name.Str, start: len(prog.Instructions)})
		for _, inst := range lbl.Instructions {
			prog.Instructions = append(prog.Instructions, convertInstruction(inst))
		}
	}

	resolveBranches(prog, labels)
	return prog
}

func resolveBranches(prog *Program, labels []labelRange) {
	for i, inst := range prog.Instructions {
		for j, op := range inst.Operands {
			ub, ok := op.(UnresolvedBranch)
			if !ok {
				continue
			}
			for _, lbl := range labels {
				if lbl.name == ub.Label {
					prog.Instructions[i].Operands[j] = Branch{Target: lbl.start, Sp: ub.Sp}
					break
				}
			}
		}
	}
}

func convertInstruction(inst *ast.Instruction) Instruction {
	op, ok := LookupOpcode(inst.Opcode.Str)
	if !ok {
		op = Invalid
	}

	// A branch opcode's single symbol operand is a label reference, not a
	// register, so it lowers differently than every other operand.
	asBranchTarget := IsBranch(op) && len(inst.Operands) == 1

	operands := make([]Operand, 0, len(inst.Operands))
	for _, o := range inst.Operands {
		operands = append(operands, convertOperand(o, asBranchTarget))
	}

	return Instruction{Opcode: op, Operands: operands, Span: inst.Opcode.Span}
}

func convertOperand(o ast.Operand, asBranchTarget bool) Operand {
	sp := o.Span()

	switch v := o.(type) {
	case *ast.OperandMemAddress:
		var offset int64
		if v.Offset != nil {
			offset = v.Offset.Int
		}
		return MemAddress{Register: registerIndex(v.Register.Str), Offset: offset, Sp: sp}

	case *ast.OperandSimple:
		switch v.Token.Type {
		case token.Integer:
			return Integer{Value: v.Token.Int, Sp: sp}
		case token.String:
			return String{Value: v.Token.Str, Sp: sp}
		default: // token.Symbol
			if asBranchTarget {
				return UnresolvedBranch{Label: v.Token.Str, Sp: sp}
			}
			return Register{Index: registerIndex(v.Token.Str), Sp: sp}
		}
	}
	return Register{Index: -1, Sp: sp}
}

// registerIndex returns 0..25 for a single lowercase letter "a".."z", or
// -1 for anything else.
func registerIndex(name string) int {
	if len(name) != 1 {
		return -1
	}
	c := name[0]
	if c < 'a' || c > 'z' {
		return -1
	}
	return int(c - 'a')
}

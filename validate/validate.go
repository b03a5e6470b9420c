// Package validate checks a lowered ir.Program for the invariants the
// interpreter and the C back end both assume: every opcode is known,
// every instruction has the right number and kind of operands, every
// register is real, and every label reference resolved.
package validate

import (
	"fmt"

	"github.com/leonardosnt/assembler-interpreter/ast"
	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/span"
)

const (
	kindRegister = "register"
	kindInteger  = "integer"
	kindString   = "string"
	kindMemory   = "memory address"
	kindLabel    = "label"
)

// rule describes one operand position's accepted kinds. variadic rules
// repeat their single slot for every remaining operand (used by msg).
type rule struct {
	kinds    []string
	variadic bool
}

// opcodeRules lists, per opcode, the rule for every required operand.
var opcodeRules = map[ir.Opcode][]rule{
	ir.Mov: {{kinds: []string{kindRegister, kindMemory}}, {kinds: []string{kindRegister, kindInteger, kindMemory}}},
	ir.Inc: {{kinds: []string{kindRegister}}},
	ir.Dec: {{kinds: []string{kindRegister}}},
	ir.Add: {{kinds: []string{kindRegister, kindMemory}}, {kinds: []string{kindRegister, kindInteger, kindMemory}}},
	ir.Sub: {{kinds: []string{kindRegister, kindMemory}}, {kinds: []string{kindRegister, kindInteger, kindMemory}}},
	ir.Mul: {{kinds: []string{kindRegister, kindMemory}}, {kinds: []string{kindRegister, kindInteger, kindMemory}}},
	ir.Div: {{kinds: []string{kindRegister, kindMemory}}, {kinds: []string{kindRegister, kindInteger, kindMemory}}},
	ir.Jmp: {{kinds: []string{kindLabel}}},
	ir.Cmp: {{kinds: []string{kindRegister, kindInteger}}, {kinds: []string{kindRegister, kindInteger}}},
	ir.Jne: {{kinds: []string{kindLabel}}},
	ir.Je:  {{kinds: []string{kindLabel}}},
	ir.Jge: {{kinds: []string{kindLabel}}},
	ir.Jg:  {{kinds: []string{kindLabel}}},
	ir.Jle: {{kinds: []string{kindLabel}}},
	ir.Jl:  {{kinds: []string{kindLabel}}},
	ir.Call: {{kinds: []string{kindLabel}}},
	ir.Ret:  {},
	ir.Msg:  {{kinds: []string{kindRegister, kindInteger, kindString, kindMemory}, variadic: true}},
	ir.End:  {},
	ir.Print:  {{kinds: []string{kindRegister, kindInteger, kindString, kindMemory}, variadic: true}},
	ir.Push:   {{kinds: []string{kindRegister}}},
	ir.Pop:    {{kinds: []string{kindRegister}}},
	ir.Malloc: {{kinds: []string{kindRegister}}, {kinds: []string{kindRegister}}},
	ir.Mfree:  {{kinds: []string{kindRegister}}},
}

var ordinals = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth"}

func ordinal(i int) string {
	if i < len(ordinals) {
		return ordinals[i]
	}
	return fmt.Sprintf("%dth", i+1)
}

func operandKind(op ir.Operand) string {
	switch op.(type) {
	case ir.Register:
		return kindRegister
	case ir.Integer:
		return kindInteger
	case ir.String:
		return kindString
	case ir.MemAddress:
		return kindMemory
	case ir.Branch, ir.UnresolvedBranch:
		return kindLabel
	default:
		return "unknown"
	}
}

// Validate walks prog's instructions and reports every violation it finds
// through reporter. It does not stop at the first error unless reporter
// does (the default reporter terminates the process on first Report).
func Validate(top *ast.TopLevel, prog *ir.Program, reporter diag.Reporter) {
	checkDuplicateLabels(top, reporter)
	checkInstructions(prog, reporter)
}

func checkDuplicateLabels(top *ast.TopLevel, reporter diag.Reporter) {
	seen := make(map[string]span.Span)
	for _, lbl := range top.Labels {
		if _, ok := seen[lbl.Name.Str]; ok {
			reporter.Report(diag.KindBuild, fmt.Sprintf("duplicated label '%s'", lbl.Name.Str), lbl.Name.Span)
			continue
		}
		seen[lbl.Name.Str] = lbl.Name.Span
	}
}

func checkInstructions(prog *ir.Program, reporter diag.Reporter) {
	for i := range prog.Instructions {
		checkInstruction(&prog.Instructions[i], reporter)
	}
}

func checkInstruction(inst *ir.Instruction, reporter diag.Reporter) {
	if inst.Opcode == ir.Invalid {
		reporter.Report(diag.KindBuild, "invalid opcode", inst.Span)
		return
	}

	rules := opcodeRules[inst.Opcode]
	if !checkArity(inst, rules, reporter) {
		return
	}

	for i, op := range inst.Operands {
		r := ruleFor(rules, i)
		checkOperandKind(inst.Opcode, op, i, r, reporter, op.Span())
		checkRegisterValidity(op, reporter, op.Span())
	}
}

func ruleFor(rules []rule, i int) rule {
	if i < len(rules) {
		return rules[i]
	}
	if len(rules) > 0 && rules[len(rules)-1].variadic {
		return rules[len(rules)-1]
	}
	return rule{}
}

func checkArity(inst *ir.Instruction, rules []rule, reporter diag.Reporter) bool {
	if len(rules) > 0 && rules[len(rules)-1].variadic {
		min := len(rules)
		if len(inst.Operands) < min {
			reporter.Report(diag.KindBuild, fmt.Sprintf(
				"incorrect number of operands for opcode '%s'. Required: at least %d, got: %d",
				inst.Opcode, min, len(inst.Operands)), inst.Span)
			return false
		}
		return true
	}

	if len(inst.Operands) != len(rules) {
		reporter.Report(diag.KindBuild, fmt.Sprintf(
			"incorrect number of operands for opcode '%s'. Required: %d, got: %d",
			inst.Opcode, len(rules), len(inst.Operands)), inst.Span)
		return false
	}
	return true
}

func checkOperandKind(op ir.Opcode, operand ir.Operand, idx int, r rule, reporter diag.Reporter, sp span.Span) {
	if len(r.kinds) == 0 {
		return
	}
	got := operandKind(operand)
	for _, k := range r.kinds {
		if k == got {
			return
		}
	}
	reporter.Report(diag.KindBuild, fmt.Sprintf(
		"opcode '%s' requires a '%s' as its %s operand, but got a '%s'",
		op, joinKinds(r.kinds), ordinal(idx), got), sp)
}

func joinKinds(kinds []string) string {
	if len(kinds) == 1 {
		return kinds[0]
	}
	s := kinds[0]
	for _, k := range kinds[1 : len(kinds)-1] {
		s += "', '" + k
	}
	s += "' or '" + kinds[len(kinds)-1]
	return s
}

func checkRegisterValidity(op ir.Operand, reporter diag.Reporter, sp span.Span) {
	switch v := op.(type) {
	case ir.Register:
		if v.Index < 0 {
			reporter.Report(diag.KindBuild, "invalid register", sp)
		}
	case ir.MemAddress:
		if v.Register < 0 {
			reporter.Report(diag.KindBuild, "invalid register specified in memory address", sp)
		}
	case ir.UnresolvedBranch:
		reporter.Report(diag.KindBuild, "label not defined", sp)
	}
}

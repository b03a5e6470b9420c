// Package codegen translates a validated ir.Program into standalone C99,
// the repo's second execution target alongside the interp package's
// tree-walking interpreter.
//
// call/ret thread through a `switch (pc)` dispatch inside an infinite
// loop rather than GNU computed goto (`goto *cs[--csp]`), a gcc/clang
// extension no portable C99 compiler accepts. One statement (or small
// guarded block) is emitted per source instruction.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leonardosnt/assembler-interpreter/ir"
)

// Generate renders prog as a complete, self-contained C99 source file.
func Generate(prog *ir.Program) string {
	var b strings.Builder

	b.WriteString("#include <stdio.h>\n")
	b.WriteString("#include <stdint.h>\n")
	b.WriteString("#include <stdlib.h>\n")
	b.WriteString("#include <string.h>\n\n")

	writeDeclarations(&b, prog)

	b.WriteString("\nint main(void) {\n")
	b.WriteString("\tint pc = 0;\n")
	b.WriteString("\tfor (;;) {\n")
	b.WriteString("\t\tswitch (pc) {\n")

	for i, inst := range prog.Instructions {
		fmt.Fprintf(&b, "\t\tcase %d: /* %s */\n", i, strings.TrimSpace(disasm(inst)))
		writeInstruction(&b, i, inst)
	}

	fmt.Fprintf(&b, "\t\tcase %d: goto done;\n", len(prog.Instructions))
	b.WriteString("\t\tdefault: goto done;\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t}\n")
	b.WriteString("done:\n")
	b.WriteString("\tprintf(\"%s\\n\", msg);\n")
	b.WriteString("\treturn 0;\n")
	b.WriteString("}\n")

	return b.String()
}

func disasm(inst ir.Instruction) string {
	parts := make([]string, len(inst.Operands))
	for i, op := range inst.Operands {
		parts[i] = cOperandComment(op)
	}
	return inst.Opcode.String() + " " + strings.Join(parts, ", ")
}

func cOperandComment(op ir.Operand) string {
	switch v := op.(type) {
	case ir.Register:
		return regName(v.Index)
	case ir.Integer:
		return fmt.Sprintf("%d", v.Value)
	case ir.String:
		return fmt.Sprintf("%q", v.Value)
	case ir.Branch:
		return fmt.Sprintf("L%d", v.Target)
	case ir.MemAddress:
		return fmt.Sprintf("%d[%s]", v.Offset, regName(v.Register))
	default:
		return "?"
	}
}

func regName(index int) string {
	return "r" + string(rune('a'+index))
}

// writeDeclarations emits a variable only for registers the program
// actually touches, plus the fixed-size buffers every generated program
// shares: the message buffer, call stack and operand stack.
func writeDeclarations(b *strings.Builder, prog *ir.Program) {
	used := map[int]bool{}
	var scan func(op ir.Operand)
	scan = func(op ir.Operand) {
		switch v := op.(type) {
		case ir.Register:
			used[v.Index] = true
		case ir.MemAddress:
			used[v.Register] = true
		}
	}
	for _, inst := range prog.Instructions {
		for _, op := range inst.Operands {
			scan(op)
		}
	}

	indices := make([]int, 0, len(used))
	for idx := range used {
		if idx >= 0 {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	if len(indices) > 0 {
		names := make([]string, len(indices))
		for i, idx := range indices {
			names[i] = regName(idx) + " = 0"
		}
		fmt.Fprintf(b, "int64_t %s;\n", strings.Join(names, ", "))
	}

	b.WriteString("char msg[4096] = {0};\n")
	b.WriteString("int cmp = 0;\n")
	b.WriteString("int cs[1000]; size_t csp = 0;\n")
	b.WriteString("int64_t stack[500]; size_t sp = 0;\n")
}

func writeInstruction(b *strings.Builder, index int, inst ir.Instruction) {
	next := index + 1
	indent := "\t\t\t"

	switch inst.Opcode {
	case ir.Mov:
		fmt.Fprintf(b, "%s%s = %s;\n", indent, lvalue(inst.Operands[0]), rvalue(inst.Operands[1]))
	case ir.Inc:
		fmt.Fprintf(b, "%s%s += 1;\n", indent, lvalue(inst.Operands[0]))
	case ir.Dec:
		fmt.Fprintf(b, "%s%s -= 1;\n", indent, lvalue(inst.Operands[0]))
	case ir.Add:
		fmt.Fprintf(b, "%s%s += %s;\n", indent, lvalue(inst.Operands[0]), rvalue(inst.Operands[1]))
	case ir.Sub:
		fmt.Fprintf(b, "%s%s -= %s;\n", indent, lvalue(inst.Operands[0]), rvalue(inst.Operands[1]))
	case ir.Mul:
		fmt.Fprintf(b, "%s%s *= %s;\n", indent, lvalue(inst.Operands[0]), rvalue(inst.Operands[1]))
	case ir.Div:
		fmt.Fprintf(b, "%sif (%s == 0) { fprintf(stderr, \"division by zero\\n\"); exit(1); }\n", indent, rvalue(inst.Operands[1]))
		fmt.Fprintf(b, "%s%s /= %s;\n", indent, lvalue(inst.Operands[0]), rvalue(inst.Operands[1]))

	case ir.Jmp:
		fmt.Fprintf(b, "%spc = %d; break;\n", indent, branchTarget(inst.Operands[0]))
		return

	case ir.Cmp:
		fmt.Fprintf(b, "%s{ int64_t __a = %s, __b = %s; cmp = (__a == __b) ? 0 : (__a < __b ? -1 : 1); }\n",
			indent, rvalue(inst.Operands[0]), rvalue(inst.Operands[1]))

	case ir.Jne, ir.Je, ir.Jge, ir.Jg, ir.Jle, ir.Jl:
		cond := compareCondition(inst.Opcode)
		fmt.Fprintf(b, "%sif (%s) { pc = %d; break; }\n", indent, cond, branchTarget(inst.Operands[0]))
		fmt.Fprintf(b, "%spc = %d; break;\n", indent, next)
		return

	case ir.Call:
		fmt.Fprintf(b, "%sif (csp >= 1000) { fprintf(stderr, \"callstack overflow\\n\"); exit(1); }\n", indent)
		fmt.Fprintf(b, "%scs[csp++] = %d;\n", indent, next)
		fmt.Fprintf(b, "%spc = %d; break;\n", indent, branchTarget(inst.Operands[0]))
		return

	case ir.Ret:
		fmt.Fprintf(b, "%sif (csp == 0) { fprintf(stderr, \"callstack underflow\\n\"); exit(1); }\n", indent)
		fmt.Fprintf(b, "%spc = cs[--csp]; break;\n", indent)
		return

	case ir.Msg:
		for _, op := range inst.Operands {
			writeMsgAppend(b, indent, op)
		}
	case ir.Print:
		for _, op := range inst.Operands {
			writePrintOperand(b, indent, op)
		}

	case ir.Push:
		fmt.Fprintf(b, "%sif (sp >= 500) { fprintf(stderr, \"stack overflow\\n\"); exit(1); }\n", indent)
		fmt.Fprintf(b, "%sstack[sp++] = %s;\n", indent, rvalue(inst.Operands[0]))
	case ir.Pop:
		fmt.Fprintf(b, "%sif (sp == 0) { fprintf(stderr, \"stack underflow\\n\"); exit(1); }\n", indent)
		fmt.Fprintf(b, "%s%s = stack[--sp];\n", indent, lvalue(inst.Operands[0]))

	case ir.Malloc:
		fmt.Fprintf(b, "%s%s = (int64_t)(intptr_t)malloc((size_t)%s);\n", indent, lvalue(inst.Operands[1]), rvalue(inst.Operands[0]))
	case ir.Mfree:
		fmt.Fprintf(b, "%sfree((void*)(intptr_t)%s);\n", indent, rvalue(inst.Operands[0]))

	case ir.End:
		b.WriteString(indent + "goto done;\n")
		return
	}

	fmt.Fprintf(b, "%spc = %d; break;\n", indent, next)
}

func branchTarget(op ir.Operand) int {
	if b, ok := op.(ir.Branch); ok {
		return b.Target
	}
	return -1
}

func compareCondition(op ir.Opcode) string {
	switch op {
	case ir.Jne:
		return "cmp != 0"
	case ir.Je:
		return "cmp == 0"
	case ir.Jge:
		return "cmp >= 0"
	case ir.Jg:
		return "cmp > 0"
	case ir.Jle:
		return "cmp <= 0"
	case ir.Jl:
		return "cmp < 0"
	}
	return "0"
}

func lvalue(op ir.Operand) string {
	switch v := op.(type) {
	case ir.Register:
		return regName(v.Index)
	case ir.MemAddress:
		return fmt.Sprintf("(*(int64_t*)((char*)(intptr_t)%s + %d))", regName(v.Register), v.Offset)
	default:
		return "/* invalid lvalue */"
	}
}

func rvalue(op ir.Operand) string {
	switch v := op.(type) {
	case ir.Register:
		return regName(v.Index)
	case ir.Integer:
		return fmt.Sprintf("%d", v.Value)
	case ir.MemAddress:
		return lvalue(op)
	default:
		return "0"
	}
}

func writePrintOperand(b *strings.Builder, indent string, op ir.Operand) {
	if s, ok := op.(ir.String); ok {
		if s.Value == `\n` {
			fmt.Fprintf(b, "%sprintf(\"\\n\");\n", indent)
			return
		}
		fmt.Fprintf(b, "%sprintf(\"%%s\", %q);\n", indent, s.Value)
		return
	}
	fmt.Fprintf(b, "%sprintf(\"%%lld\", (long long)%s);\n", indent, rvalue(op))
}

func writeMsgAppend(b *strings.Builder, indent string, op ir.Operand) {
	if s, ok := op.(ir.String); ok {
		if s.Value == `\n` {
			fmt.Fprintf(b, "%sstrcat(msg, \"\\n\");\n", indent)
			return
		}
		fmt.Fprintf(b, "%sstrcat(msg, %q);\n", indent, s.Value)
		return
	}
	fmt.Fprintf(b, "%s{ char __buf[32]; snprintf(__buf, sizeof __buf, \"%%lld\", (long long)%s); strcat(msg, __buf); }\n",
		indent, rvalue(op))
}

// Package ir is the lowered, pre-validation form of a program: flat
// instructions with resolved operand kinds and label targets, the shape
// both the interpreter and the C back end consume.
package ir

// Opcode identifies an instruction's operation. Invalid is the sentinel
// produced for a mnemonic that doesn't name any known opcode; the
// validator is what turns that into a diagnostic.
type Opcode int

const (
	Invalid Opcode = iota - 1
	Mov
	Inc
	Dec
	Add
	Sub
	Mul
	Div
	Jmp
	Cmp
	Jne
	Je
	Jge
	Jg
	Jle
	Jl
	Call
	Ret
	Msg
	End
	Print
	Push
	Pop
	Malloc
	Mfree
)

var opcodeNames = map[Opcode]string{
	Mov: "mov", Inc: "inc", Dec: "dec", Add: "add", Sub: "sub", Mul: "mul", Div: "div",
	Jmp: "jmp", Cmp: "cmp", Jne: "jne", Je: "je", Jge: "jge", Jg: "jg", Jle: "jle", Jl: "jl",
	Call: "call", Ret: "ret", Msg: "msg", End: "end", Print: "print",
	Push: "push", Pop: "pop", Malloc: "malloc", Mfree: "mfree",
}

var mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// branchOpcodes take a single label operand instead of an arbitrary
// register or memory address.
var branchOpcodes = map[Opcode]bool{
	Jmp: true, Jne: true, Je: true, Jge: true, Jg: true, Jle: true, Jl: true, Call: true,
}

// IsBranch reports whether op's sole symbol operand names a label rather
// than a register.
func IsBranch(op Opcode) bool { return branchOpcodes[op] }

func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return "invalid"
}

// LookupOpcode maps a mnemonic to its Opcode. ok is false for any spelling
// that isn't one of the fixed set of recognized mnemonics.
func LookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := mnemonics[mnemonic]
	return op, ok
}

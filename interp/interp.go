// Package interp executes a validated ir.Program: 26 registers, a compare
// flag, a bounded call stack and operand stack, a growable message buffer
// and a handle-table heap.
package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/span"
)

const (
	defaultCallStackCap    = 1000
	defaultOperandStackCap = 500
)

// Limits bounds the resources a VM enforces at runtime: the call stack
// depth, the operand stack depth, and the message buffer's initial
// capacity. New falls back to the package defaults (1000, 500, 0) when no
// Limits is given, so a config file's execution table can tighten or
// loosen them per run.
type Limits struct {
	CallStackCap    int
	OperandStackCap int
	MessageBufCap   int
}

// CompareState is the result of the most recent cmp, consulted by every
// conditional branch opcode. Unordered is the state before any cmp has
// run; every conditional jump treats it as "don't take".
type CompareState int

const (
	Unordered CompareState = iota
	Equal
	Less
	Greater
)

// ExecutionState summarizes why the VM stopped running.
type ExecutionState int

const (
	StateReady ExecutionState = iota
	StateRunning
	StateHalted
	StateCrashed
)

// VM holds every piece of mutable state an executing program touches.
type VM struct {
	Regs    [26]int64
	Compare CompareState
	PC      int

	CallStack    []int
	OperandStack []int64
	Heap         *Heap
	message      strings.Builder

	CallStackCap    int
	OperandStackCap int

	Program  *ir.Program
	Output   io.Writer
	Reporter diag.Reporter
	State    ExecutionState

	// FinalMessage is the message buffer's contents as of `end`, the
	// value the caller surfaces as the program's result.
	FinalMessage string
}

// New returns a VM ready to run prog. An optional Limits overrides the
// default call stack depth, operand stack depth and message buffer
// capacity.
func New(prog *ir.Program, output io.Writer, reporter diag.Reporter, limits ...Limits) *VM {
	l := Limits{CallStackCap: defaultCallStackCap, OperandStackCap: defaultOperandStackCap}
	if len(limits) > 0 {
		l = limits[0]
	}

	vm := &VM{
		Program:         prog,
		Output:          output,
		Reporter:        reporter,
		Heap:            NewHeap(),
		State:           StateReady,
		CallStackCap:    l.CallStackCap,
		OperandStackCap: l.OperandStackCap,
	}
	if l.MessageBufCap > 0 {
		vm.message.Grow(l.MessageBufCap)
	}
	return vm
}

func (vm *VM) fail(format string, args ...interface{}) {
	vm.State = StateCrashed
	msg := fmt.Sprintf(format, args...)
	sp := vm.currentSpan()
	vm.Reporter.Report(diag.KindRuntime, msg, sp)
}

func (vm *VM) currentSpan() span.Span {
	if vm.PC >= 0 && vm.PC < len(vm.Program.Instructions) {
		return vm.Program.Instructions[vm.PC].Span
	}
	return span.Span{}
}

// Run executes the program from its first instruction until `end`, the
// program counter leaving the instruction stream, or a fatal runtime error
// (a `ret` with an empty call stack is one: callstack underflow). Because a reporter
// other than the default one does not terminate the process, Run itself
// must stop stepping the moment State leaves StateRunning, so execution
// never continues past a fatal runtime error regardless of which reporter
// is installed.
func (vm *VM) Run() {
	vm.State = StateRunning
	for vm.State == StateRunning {
		if vm.PC < 0 || vm.PC >= len(vm.Program.Instructions) {
			vm.State = StateHalted
			vm.FinalMessage = vm.message.String()
			return
		}
		vm.step(vm.Program.Instructions[vm.PC])
	}
	vm.FinalMessage = vm.message.String()
}

func (vm *VM) step(inst ir.Instruction) {
	next := vm.PC + 1

	switch inst.Opcode {
	case ir.Mov:
		vm.write(inst.Operands[0], vm.read(inst.Operands[1]))

	case ir.Inc:
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])+1)

	case ir.Dec:
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])-1)

	case ir.Add:
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])+vm.read(inst.Operands[1]))

	case ir.Sub:
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])-vm.read(inst.Operands[1]))

	case ir.Mul:
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])*vm.read(inst.Operands[1]))

	case ir.Div:
		divisor := vm.read(inst.Operands[1])
		if divisor == 0 {
			vm.fail("division by zero occurred while executing this instruction")
			return
		}
		vm.write(inst.Operands[0], vm.read(inst.Operands[0])/divisor)

	case ir.Jmp:
		next = vm.branchTarget(inst.Operands[0])

	case ir.Cmp:
		a, b := vm.read(inst.Operands[0]), vm.read(inst.Operands[1])
		switch {
		case a == b:
			vm.Compare = Equal
		case a < b:
			vm.Compare = Less
		default:
			vm.Compare = Greater
		}

	case ir.Jne:
		if vm.Compare != Equal && vm.Compare != Unordered {
			next = vm.branchTarget(inst.Operands[0])
		}
	case ir.Je:
		if vm.Compare == Equal {
			next = vm.branchTarget(inst.Operands[0])
		}
	case ir.Jge:
		if vm.Compare == Equal || vm.Compare == Greater {
			next = vm.branchTarget(inst.Operands[0])
		}
	case ir.Jg:
		if vm.Compare == Greater {
			next = vm.branchTarget(inst.Operands[0])
		}
	case ir.Jle:
		if vm.Compare == Equal || vm.Compare == Less {
			next = vm.branchTarget(inst.Operands[0])
		}
	case ir.Jl:
		if vm.Compare == Less {
			next = vm.branchTarget(inst.Operands[0])
		}

	case ir.Call:
		if len(vm.CallStack) >= vm.CallStackCap {
			vm.fail("callstack overflow")
			return
		}
		vm.CallStack = append(vm.CallStack, vm.PC+1)
		next = vm.branchTarget(inst.Operands[0])

	case ir.Ret:
		if len(vm.CallStack) == 0 {
			vm.fail("callstack underflow")
			return
		}
		top := vm.CallStack[len(vm.CallStack)-1]
		vm.CallStack = vm.CallStack[:len(vm.CallStack)-1]
		next = top

	case ir.Msg:
		for _, op := range inst.Operands {
			vm.message.WriteString(vm.format(op))
		}

	case ir.Print:
		for _, op := range inst.Operands {
			fmt.Fprint(vm.Output, vm.format(op))
		}

	case ir.Push:
		if len(vm.OperandStack) >= vm.OperandStackCap {
			vm.fail("stack overflow")
			return
		}
		vm.OperandStack = append(vm.OperandStack, vm.read(inst.Operands[0]))

	case ir.Pop:
		if len(vm.OperandStack) == 0 {
			vm.fail("stack underflow")
			return
		}
		v := vm.OperandStack[len(vm.OperandStack)-1]
		vm.OperandStack = vm.OperandStack[:len(vm.OperandStack)-1]
		vm.write(inst.Operands[0], v)

	case ir.Malloc:
		size := vm.read(inst.Operands[0])
		vm.write(inst.Operands[1], vm.Heap.Alloc(size))

	case ir.Mfree:
		handle := vm.read(inst.Operands[0])
		if err := vm.Heap.Free(handle); err != nil {
			vm.fail("%s", err)
			return
		}

	case ir.End:
		vm.State = StateHalted
		return

	default:
		vm.fail("invalid opcode")
		return
	}

	vm.PC = next
}

func (vm *VM) branchTarget(op ir.Operand) int {
	switch v := op.(type) {
	case ir.Branch:
		return v.Target
	default:
		vm.fail("label not defined")
		return vm.PC + 1
	}
}

// read evaluates op to a scalar value: a register's contents, a literal
// integer, or the int64 stored at a heap memory address.
func (vm *VM) read(op ir.Operand) int64 {
	switch v := op.(type) {
	case ir.Register:
		return vm.Regs[v.Index]
	case ir.Integer:
		return v.Value
	case ir.MemAddress:
		handle := vm.Regs[v.Register]
		val, err := vm.Heap.ReadInt64(handle, v.Offset)
		if err != nil {
			vm.fail("%s", err)
			return 0
		}
		return val
	default:
		vm.fail("invalid operand")
		return 0
	}
}

// write stores value into the destination op names: a register, or the
// int64 slot at a heap memory address.
func (vm *VM) write(op ir.Operand, value int64) {
	switch v := op.(type) {
	case ir.Register:
		vm.Regs[v.Index] = value
	case ir.MemAddress:
		handle := vm.Regs[v.Register]
		if err := vm.Heap.WriteInt64(handle, v.Offset, value); err != nil {
			vm.fail("%s", err)
		}
	default:
		vm.fail("invalid assignment target")
	}
}

// format renders op for msg/print: strings pass through verbatim, except
// that the two-character string `\n` becomes a newline; everything else
// becomes its decimal value.
func (vm *VM) format(op ir.Operand) string {
	if s, ok := op.(ir.String); ok {
		if s.Value == `\n` {
			return "\n"
		}
		return s.Value
	}
	return fmt.Sprintf("%d", vm.read(op))
}

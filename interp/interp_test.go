package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/parser"
	"github.com/leonardosnt/assembler-interpreter/validate"
)

// runProgram parses, builds, validates and executes src, returning the VM
// (whose FinalMessage holds the result message) and the buffer that
// received print output, for further assertions. The test fails if any
// stage reports a diagnostic.
func runProgram(t *testing.T, src string) (*VM, *bytes.Buffer) {
	t.Helper()
	rec := diag.NewRecordingReporter()
	top := parser.New(src, rec).Parse()
	require.False(t, rec.HasErrors(), "parse errors: %v", rec.Errors)

	prog := ir.Build(top)
	validate.Validate(top, prog, rec)
	require.False(t, rec.HasErrors(), "validate errors: %v", rec.Errors)

	var out bytes.Buffer
	vm := New(prog, &out, rec)
	vm.Run()
	require.False(t, rec.HasErrors(), "runtime errors: %v", rec.Errors)
	return vm, &out
}

func TestRun_ArithmeticAndMessage(t *testing.T) {
	src := "mov a, 5\nmov b, 10\nadd a, b\nmsg 'a is ', a\nend\n"
	vm, _ := runProgram(t, src)
	assert.Equal(t, "a is 15", vm.FinalMessage)
}

func TestRun_GCDProgram(t *testing.T) {
	src := `mov a, 81
mov b, 153
test:
cmp a, b
je done
jg a_bigger
mov c, b
sub c, a
mov b, a
mov a, c
jmp test
a_bigger:
mov c, a
sub c, b
mov a, b
mov b, c
jmp test
done:
msg 'gcd(81, 153) = ', b
end
`
	vm, _ := runProgram(t, src)
	assert.Equal(t, "gcd(81, 153) = 9", vm.FinalMessage)
}

func TestRun_CallAndRet(t *testing.T) {
	src := "call greet\nend\ngreet:\nmsg 'hi'\nret\n"
	vm, _ := runProgram(t, src)
	assert.Equal(t, "hi", vm.FinalMessage)
}

func TestRun_PushPop(t *testing.T) {
	src := "mov a, 7\npush a\nmov a, 0\npop a\nmsg a\nend\n"
	vm, _ := runProgram(t, src)
	assert.Equal(t, "7", vm.FinalMessage)
}

func TestRun_MallocMfree(t *testing.T) {
	src := "mov a, 8\nmalloc a, b\nmov 0[b], 42\nmov c, 0[b]\nmfree b\nmsg c\nend\n"
	vm, _ := runProgram(t, src)
	assert.Equal(t, "42", vm.FinalMessage)
}

func TestRun_DivisionByZero(t *testing.T) {
	rec := diag.NewRecordingReporter()
	top := parser.New("mov a, 1\nmov b, 0\ndiv a, b\nend\n", rec).Parse()
	prog := ir.Build(top)
	validate.Validate(top, prog, rec)
	require.False(t, rec.HasErrors())

	vm := New(prog, &bytes.Buffer{}, rec)
	vm.Run()

	require.True(t, rec.HasErrors())
	assert.Equal(t, "division by zero occurred while executing this instruction", rec.First().Message)
	assert.Equal(t, StateCrashed, vm.State)
}

func TestRun_CallStackOverflow(t *testing.T) {
	rec := diag.NewRecordingReporter()
	src := "loop:\ncall loop\nend\n"
	top := parser.New(src, rec).Parse()
	prog := ir.Build(top)
	validate.Validate(top, prog, rec)
	require.False(t, rec.HasErrors())

	vm := New(prog, &bytes.Buffer{}, rec)
	vm.Run()

	require.True(t, rec.HasErrors())
	assert.Equal(t, "callstack overflow", rec.First().Message)
}

func TestRun_LimitsOverridesDefaultCallStackCap(t *testing.T) {
	rec := diag.NewRecordingReporter()
	src := "loop:\ncall loop\nend\n"
	top := parser.New(src, rec).Parse()
	prog := ir.Build(top)
	validate.Validate(top, prog, rec)
	require.False(t, rec.HasErrors())

	vm := New(prog, &bytes.Buffer{}, rec, Limits{CallStackCap: 3, OperandStackCap: defaultOperandStackCap})
	vm.Run()

	require.True(t, rec.HasErrors())
	assert.Equal(t, "callstack overflow", rec.First().Message)
	assert.Len(t, vm.CallStack, 3)
}

func TestRun_PrintWritesToOutput(t *testing.T) {
	vm, out := runProgram(t, "mov a, 3\nprint a\nend\n")
	assert.Equal(t, "3", out.String())
	assert.Empty(t, vm.FinalMessage)
}

func TestRun_PrintFormatsEveryOperandLikeMsg(t *testing.T) {
	vm, out := runProgram(t, "mov a, 3\nprint 'a is ', a, '\\n', 'done'\nend\n")
	assert.Equal(t, "a is 3\ndone", out.String())
	assert.Empty(t, vm.FinalMessage)
}

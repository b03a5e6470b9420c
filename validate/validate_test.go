package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardosnt/assembler-interpreter/diag"
	"github.com/leonardosnt/assembler-interpreter/ir"
	"github.com/leonardosnt/assembler-interpreter/parser"
)

func validateSrc(t *testing.T, src string) *diag.RecordingReporter {
	t.Helper()
	rec := diag.NewRecordingReporter()
	top := parser.New(src, rec).Parse()
	require.False(t, rec.HasErrors(), "unexpected parse errors")
	prog := ir.Build(top)
	Validate(top, prog, rec)
	return rec
}

func TestValidate_ValidProgramHasNoErrors(t *testing.T) {
	rec := validateSrc(t, "mov a, 5\nmsg a\nend\n")
	assert.False(t, rec.HasErrors())
}

func TestValidate_WrongArity(t *testing.T) {
	rec := validateSrc(t, "inc a, b\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "incorrect number of operands for opcode 'inc'")
}

func TestValidate_WrongOperandKind(t *testing.T) {
	rec := validateSrc(t, "mov 5, a\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "opcode 'mov' requires a")
}

func TestValidate_InvalidRegister(t *testing.T) {
	rec := validateSrc(t, "mov ab, 1\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "invalid register")
}

func TestValidate_InvalidOpcode(t *testing.T) {
	rec := validateSrc(t, "frobnicate a\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "invalid opcode")
}

func TestValidate_LabelNotDefined(t *testing.T) {
	rec := validateSrc(t, "jmp nowhere\nend\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "label not defined")

	// The diagnostic must point at the operand "nowhere" itself, not at
	// the "jmp" mnemonic that starts the instruction.
	err := rec.First()
	assert.Equal(t, 4, err.Span.ColStart)
	assert.Equal(t, 11, err.Span.ColEnd)
}

func TestValidate_DuplicatedLabel(t *testing.T) {
	rec := validateSrc(t, "call foo\nend\nfoo:\nret\nfoo:\nret\n")
	require.True(t, rec.HasErrors())

	found := false
	for _, e := range rec.Errors {
		if e.Message == "duplicated label 'foo'" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidate_MsgAcceptsVariadicOperands(t *testing.T) {
	rec := validateSrc(t, "msg 'a is ', a, ' and b is ', b\n")
	assert.False(t, rec.HasErrors())
}

func TestValidate_MsgRequiresAtLeastOneOperand(t *testing.T) {
	rec := validateSrc(t, "msg\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "incorrect number of operands for opcode 'msg'")
}

func TestValidate_PrintAcceptsVariadicOperands(t *testing.T) {
	rec := validateSrc(t, "print 'a is ', a, ' and b is ', b\n")
	assert.False(t, rec.HasErrors())
}

func TestValidate_PushRejectsIntegerOperand(t *testing.T) {
	rec := validateSrc(t, "push 5\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "opcode 'push' requires a 'register'")
}

func TestValidate_IncRejectsMemoryAddressOperand(t *testing.T) {
	rec := validateSrc(t, "inc 0[a]\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "opcode 'inc' requires a 'register'")
}

func TestValidate_CmpRejectsMemoryAddressOperand(t *testing.T) {
	rec := validateSrc(t, "cmp a, 0[b]\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "opcode 'cmp' requires a")
}

func TestValidate_MallocRejectsIntegerOperand(t *testing.T) {
	rec := validateSrc(t, "malloc 3, 4\n")
	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "opcode 'malloc' requires a 'register'")
}

func TestValidate_MallocAcceptsTwoRegisters(t *testing.T) {
	rec := validateSrc(t, "malloc a, b\n")
	assert.False(t, rec.HasErrors())
}

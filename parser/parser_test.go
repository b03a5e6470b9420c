package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardosnt/assembler-interpreter/ast"
	"github.com/leonardosnt/assembler-interpreter/diag"
)

func TestParse_LabelLessInstructions(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("mov a, 5\nmsg a\nend\n", rec)
	top := p.Parse()

	require.False(t, rec.HasErrors())
	require.Len(t, top.Instructions, 3)
	assert.Equal(t, "mov", top.Instructions[0].Opcode.Str)
	assert.Equal(t, "end", top.Instructions[2].Opcode.Str)
	assert.Empty(t, top.Labels)
}

func TestParse_LabelWithInstructions(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("call foo\nend\nfoo:\nmov a, 1\nret\n", rec)
	top := p.Parse()

	require.False(t, rec.HasErrors())
	require.Len(t, top.Labels, 1)
	assert.Equal(t, "foo", top.Labels[0].Name.Str)
	require.Len(t, top.Labels[0].Instructions, 2)
}

func TestParse_MemoryAddressOperand(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("mov a, 4[b]\n", rec)
	top := p.Parse()

	require.False(t, rec.HasErrors())
	require.Len(t, top.Instructions, 1)
	operands := top.Instructions[0].Operands
	require.Len(t, operands, 2)

	mem, ok := operands[1].(*ast.OperandMemAddress)
	require.True(t, ok)
	require.NotNil(t, mem.Offset)
	assert.EqualValues(t, 4, mem.Offset.Int)
	assert.Equal(t, "b", mem.Register.Str)
}

func TestParse_BareBracketOperand(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("mov a, [b]\n", rec)
	top := p.Parse()

	require.False(t, rec.HasErrors())
	mem, ok := top.Instructions[0].Operands[1].(*ast.OperandMemAddress)
	require.True(t, ok)
	assert.Nil(t, mem.Offset)
}

func TestParse_MissingCommaError(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("mov a 5\n", rec)
	p.Parse()

	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "expected ',' between operands")
}

func TestParse_EmptyLabelError(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("foo:\n", rec)
	p.Parse()

	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "after a label")
}

func TestParse_UnexpectedTopLevelToken(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New(", 5\n", rec)
	p.Parse()

	require.True(t, rec.HasErrors())
	assert.Contains(t, rec.First().Message, "at top level")
}

func TestParse_StringOperand(t *testing.T) {
	rec := diag.NewRecordingReporter()
	p := New("msg 'hello world'\n", rec)
	top := p.Parse()

	require.False(t, rec.HasErrors())
	simple, ok := top.Instructions[0].Operands[0].(*ast.OperandSimple)
	require.True(t, ok)
	assert.Equal(t, "hello world", simple.Token.Str)
}

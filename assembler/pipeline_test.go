package assembler_test

import (
	"testing"

	"github.com/lookbusy1344/r32asm/assembler"
	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/encode"
	"github.com/lookbusy1344/r32asm/srcline"
	"github.com/lookbusy1344/r32asm/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) *assembler.Pipeline {
	t.Helper()
	p := assembler.New("scenario.asm", srcline.Split(source))
	p.Assemble()
	return p
}

// spec.md §8 scenario 1
func TestScenario_AddAndStop(t *testing.T) {
	p := run(t, "main: add $1, $2, $3\nstop\n")
	require.False(t, p.Errors.HasErrors())
	require.Len(t, p.Image.Code, 2)
	assert.EqualValues(t, 100, p.Image.Code[0].Address)
	assert.EqualValues(t, 104, p.Image.Code[1].Address)
	assert.EqualValues(t, 8, p.ICF-100)
	assert.EqualValues(t, 0, p.DCF)

	// regs[0]=rs=$1, regs[1]=rt=$2, regs[2]=rd=$3 (operands.go convention)
	word0 := p.Image.Code[0].Data
	assert.Equal(t, encode.EncodeR(0, 1, 3, 2, 1), word0)
	word1 := p.Image.Code[1].Data
	assert.Equal(t, encode.EncodeJ(63, false, 0), word1)
}

// spec.md §8 scenario 2
func TestScenario_DwAndEntry(t *testing.T) {
	p := run(t, "x: .dw 5, -1\n.entry x\n")
	require.False(t, p.Errors.HasErrors())
	require.Len(t, p.Image.Data, 1)
	assert.EqualValues(t, 100, p.Image.Data[0].Address)
	assert.EqualValues(t, 8, p.Image.Data[0].DataSize())
	assert.EqualValues(t, 0, p.ICF-100)
	assert.EqualValues(t, 8, p.DCF)

	sym, ok := p.Symbols.Lookup("x")
	require.True(t, ok)
	assert.True(t, sym.IsEntry)
	assert.EqualValues(t, 100, sym.Value)

	require.Len(t, p.Image.Attributes, 1)
	assert.Equal(t, symtab.AttrEntry, p.Image.Attributes[0].Kind)
	assert.Equal(t, "x", p.Image.Attributes[0].Name)
	assert.EqualValues(t, 100, p.Image.Attributes[0].Address)
}

// spec.md §8 scenario 3
func TestScenario_ExternLa(t *testing.T) {
	p := run(t, ".extern foo\nla foo\nstop\n")
	require.False(t, p.Errors.HasErrors())
	require.Len(t, p.Image.Code, 2)
	assert.Equal(t, encode.EncodeJ(31, false, 0), p.Image.Code[0].Data)

	require.Len(t, p.Image.Attributes, 1)
	assert.Equal(t, symtab.AttrExternal, p.Image.Attributes[0].Kind)
	assert.Equal(t, "foo", p.Image.Attributes[0].Name)
	assert.EqualValues(t, 100, p.Image.Attributes[0].Address)
}

// spec.md §8 scenario 4
func TestScenario_SelfReferencingBranch(t *testing.T) {
	p := run(t, "loop: beq $1, $2, loop\nstop\n")
	require.False(t, p.Errors.HasErrors())
	require.Len(t, p.Image.Code, 2)
	assert.Equal(t, encode.EncodeI(16, 1, 2, 0), p.Image.Code[0].Data)
	assert.Equal(t, encode.EncodeJ(63, false, 0), p.Image.Code[1].Data)
}

// spec.md §8 scenario 5
func TestScenario_Asciz(t *testing.T) {
	p := run(t, "str: .asciz \"Hi\"\n")
	require.False(t, p.Errors.HasErrors())
	require.Len(t, p.Image.Data, 1)
	assert.Equal(t, []byte{'H', 'i', 0}, p.Image.Data[0].Data)
	assert.EqualValues(t, 100, p.Image.Data[0].Address)
	assert.EqualValues(t, 0, p.ICF-100)
	assert.EqualValues(t, 3, p.DCF)
}

// spec.md §8 scenario 6
func TestScenario_DbOutOfRange(t *testing.T) {
	p := run(t, "lbl: .db 200\n")
	require.True(t, p.Errors.HasErrors())
	require.Len(t, p.Errors.Errors, 1)
	assert.Equal(t, asmerr.InvalidInteger, p.Errors.Errors[0].Kind)
}

func TestDuplicateLabel(t *testing.T) {
	p := run(t, "a: stop\na: stop\n")
	require.True(t, p.Errors.HasErrors())
	found := false
	for _, e := range p.Errors.Errors {
		if e.Kind == asmerr.DuplicateLabel {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUndefinedLabelInBranch(t *testing.T) {
	p := run(t, "beq $1, $2, nosuch\nstop\n")
	require.True(t, p.Errors.HasErrors())
	assert.Equal(t, asmerr.UndefinedLabel, p.Errors.Errors[0].Kind)
}

func TestExternAsEntryFails(t *testing.T) {
	p := run(t, ".extern foo\n.entry foo\nstop\n")
	require.True(t, p.Errors.HasErrors())
	assert.Equal(t, asmerr.ExternalRedefinition, p.Errors.Errors[0].Kind)
}

func TestBareLabelLine(t *testing.T) {
	p := run(t, "here:\nstop\n")
	require.False(t, p.Errors.HasErrors())
	sym, ok := p.Symbols.Lookup("here")
	require.True(t, ok)
	assert.EqualValues(t, 100, sym.Value)
	require.Len(t, p.Image.Code, 1)
	assert.EqualValues(t, 100, p.Image.Code[0].Address)
}

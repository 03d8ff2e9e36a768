package token_test

import (
	"testing"

	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipWhitespace(t *testing.T) {
	assert.Equal(t, 3, token.SkipWhitespace("  \tfoo", 0))
	assert.Equal(t, 0, token.SkipWhitespace("foo", 0))
}

func TestScanLabelName(t *testing.T) {
	name, next := token.ScanLabelName("main, $1", 0)
	assert.Equal(t, "main", name)
	assert.Equal(t, 4, next)
}

func TestScanIntegerBasic(t *testing.T) {
	numeric, value, next, err := token.ScanInteger("-17, $2", 0, 10)
	require.Nil(t, err)
	assert.Equal(t, "-17", numeric)
	assert.EqualValues(t, -17, value)
	assert.Equal(t, 3, next)
}

func TestScanIntegerOverflow(t *testing.T) {
	_, _, _, err := token.ScanInteger("123456789012", 0, 6)
	require.NotNil(t, err)
	assert.Equal(t, asmerr.InvalidInteger, err.Kind)
}

func TestValidateInteger(t *testing.T) {
	assert.Nil(t, token.ValidateInteger("127", 127, -128, 127))
	assert.NotNil(t, token.ValidateInteger("128", 128, -128, 127))
	assert.NotNil(t, token.ValidateInteger("12a", 0, -128, 127))
}

func TestScanRegister(t *testing.T) {
	reg, next, err := token.ScanRegister("$31 ", 0)
	require.Nil(t, err)
	assert.Equal(t, 31, reg)
	assert.Equal(t, 3, next)

	_, _, err = token.ScanRegister("$32", 0)
	require.NotNil(t, err)

	_, _, err = token.ScanRegister("r1", 0)
	require.NotNil(t, err)
}

func TestCheckComma(t *testing.T) {
	// first operand: no comma expected
	_, err := token.CheckComma("$1, $2", 0, 0)
	assert.Nil(t, err)

	// stray comma before first operand
	_, err = token.CheckComma(", $1", 0, 0)
	assert.NotNil(t, err)

	// missing comma between operands
	_, err = token.CheckComma("$1 $2", 2, 1)
	assert.NotNil(t, err)

	// multiple commas
	_, err = token.CheckComma("$1,, $2", 2, 1)
	assert.NotNil(t, err)

	// trailing stray comma
	_, err = token.CheckComma("$1,", 2, 1)
	assert.NotNil(t, err)
}

func TestScanQuotedString(t *testing.T) {
	content, next, err := token.ScanQuotedString(`"Hi"`, 0)
	require.Nil(t, err)
	assert.Equal(t, "Hi", content)
	assert.Equal(t, 4, next)

	_, _, err = token.ScanQuotedString(`"unterminated`, 0)
	require.NotNil(t, err)
}

func TestSplitLabelDefinition(t *testing.T) {
	label, found, next := token.SplitLabelDefinition("main: add $1, $2, $3")
	assert.True(t, found)
	assert.Equal(t, "main", label)
	assert.Equal(t, 5, next)

	_, found, _ = token.SplitLabelDefinition("add $1, $2, $3")
	assert.False(t, found)
}

func TestIsBlankOrComment(t *testing.T) {
	assert.True(t, token.IsBlankOrComment("   \n"))
	assert.True(t, token.IsBlankOrComment("  ; a comment\n"))
	assert.False(t, token.IsBlankOrComment("stop\n"))
}

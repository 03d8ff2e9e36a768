package encode_test

import (
	"testing"

	"github.com/lookbusy1344/r32asm/encode"
	"github.com/stretchr/testify/assert"
)

func TestEncodeR_AddFunct1(t *testing.T) {
	// add's opcode 0, funct 1, with fields passed directly as rd=1, rt=2, rs=3
	word := encode.EncodeR(0, 1, 1, 2, 3)
	bytes := encode.ToBytesLE(word)
	// funct in bits 6-10 = 1<<6 = 0x40; rd bits 11-15 = 1<<11; rt bits16-20=2<<16; rs bits21-25=3<<21
	expected := uint32(1)<<6 | uint32(1)<<11 | uint32(2)<<16 | uint32(3)<<21
	assert.Equal(t, expected, word)
	assert.Equal(t, byte(expected), bytes[0])
}

func TestEncodeJ_Stop(t *testing.T) {
	word := encode.EncodeJ(63, false, 0)
	assert.Equal(t, uint32(63)<<26, word)
}

func TestEncodeJ_JmpRegister(t *testing.T) {
	word := encode.EncodeJ(30, true, 5)
	expected := uint32(30)<<26 | uint32(1)<<25 | uint32(5)
	assert.Equal(t, expected, word)
}

func TestEncodeI_NegativeImmediate(t *testing.T) {
	word := encode.EncodeI(10, 1, 2, -1)
	// -1 as 16-bit field should be 0xFFFF in the low bits
	assert.Equal(t, uint32(0xFFFF), word&0xFFFF)
}

func TestFitsSigned16(t *testing.T) {
	assert.True(t, encode.FitsSigned16(32767))
	assert.True(t, encode.FitsSigned16(-32768))
	assert.False(t, encode.FitsSigned16(32768))
	assert.False(t, encode.FitsSigned16(-32769))
}

func TestFitsUnsigned25(t *testing.T) {
	assert.True(t, encode.FitsUnsigned25(0x1FFFFFF))
	assert.False(t, encode.FitsUnsigned25(0x2000000))
	assert.False(t, encode.FitsUnsigned25(-1))
}

func TestToBytesLE(t *testing.T) {
	b := encode.ToBytesLE(0xAABBCCDD)
	assert.Equal(t, [4]byte{0xDD, 0xCC, 0xBB, 0xAA}, b)
}

func TestCheckRangeN(t *testing.T) {
	assert.Nil(t, encode.CheckRangeN(127, 1))
	assert.NotNil(t, encode.CheckRangeN(200, 1))
	assert.Nil(t, encode.CheckRangeN(-128, 1))
}

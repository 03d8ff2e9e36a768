// Package encode packs the R/I/J instruction bit-field layouts of spec.md
// §4.3 into 32-bit words and serialises them to little-endian bytes.
//
// Grounded on the teacher's encoder package (encoder/encoder.go,
// encoder/data_processing.go): explicit shift/mask constants rather than
// language bit-fields, since Go has no native bit-field layout guarantee
// (spec.md §9 makes the same point about the original C union of
// bit-fields).
package encode

import "github.com/lookbusy1344/r32asm/asmerr"

// Bit-field shift positions, named per spec.md §4.3.
const (
	RFunctShift = 6
	RRdShift    = 11
	RRtShift    = 16
	RRsShift    = 21
	ROpcodeShift = 26

	IImmedShift = 0
	IRtShift    = 16
	IRsShift    = 21
	IOpcodeShift = 26

	JAddressShift = 0
	JRegShift     = 25
	JOpcodeShift  = 26
)

const (
	mask5  = 0x1F
	mask6  = 0x3F
	mask16 = 0xFFFF
	mask25 = 0x1FFFFFF
)

// EncodeR packs an R-type word: opcode/funct/rd/rt/rs, unused bits zero.
func EncodeR(opcode, funct, rd, rt, rs int) uint32 {
	return uint32(opcode&mask6)<<ROpcodeShift |
		uint32(rs&mask5)<<RRsShift |
		uint32(rt&mask5)<<RRtShift |
		uint32(rd&mask5)<<RRdShift |
		uint32(funct&mask5)<<RFunctShift
}

// EncodeI packs an I-type word: opcode/rs/rt/immed (immed is a signed
// 16-bit field stored in its low 16 bits).
func EncodeI(opcode, rs, rt int, immed int32) uint32 {
	return uint32(opcode&mask6)<<IOpcodeShift |
		uint32(rs&mask5)<<IRsShift |
		uint32(rt&mask5)<<IRtShift |
		uint32(immed)&mask16
}

// EncodeJ packs a J-type word: opcode/reg-bit/25-bit address field.
func EncodeJ(opcode int, reg bool, address uint32) uint32 {
	regBit := uint32(0)
	if reg {
		regBit = 1
	}
	return uint32(opcode&mask6)<<JOpcodeShift |
		regBit<<JRegShift |
		address&mask25
}

// FitsSigned16 reports whether v fits in a signed 16-bit field.
func FitsSigned16(v int64) bool {
	return v >= -32768 && v <= 32767
}

// FitsUnsigned25 reports whether v fits in an unsigned 25-bit field.
func FitsUnsigned25(v int64) bool {
	return v >= 0 && v <= 0x1FFFFFF
}

// ToBytesLE splits a 32-bit word into four little-endian bytes: bits 0-7,
// 8-15, 16-23, 24-31, as spec.md §6 requires for every emitted word.
func ToBytesLE(word uint32) [4]byte {
	return [4]byte{
		byte(word),
		byte(word >> 8),
		byte(word >> 16),
		byte(word >> 24),
	}
}

// ToBytesLE16 splits a 16-bit value into two little-endian bytes, for
// .dh data.
func ToBytesLE16(v uint16) [2]byte {
	return [2]byte{byte(v), byte(v >> 8)}
}

// CheckRangeN validates that v fits the signed range of a directive element
// that is size bytes wide (spec.md §4.4: "range-checking each against
// ±2^(8·size−1)"); it serves the 1-, 2- and 4-byte cases alike.
func CheckRangeN(v int64, size int) *asmerr.Error {
	bits := uint(8 * size)
	limit := int64(1) << (bits - 1)
	if v < -limit || v > limit-1 {
		return asmerr.New("", 0, asmerr.InvalidInteger, "value out of range for declared size")
	}
	return nil
}

// Package isa holds the two fixed, small reserved-word tables described in
// spec.md §4.1: instruction mnemonics (with opcode/funct/type) and directive
// names (with their type tag). The mnemonic table is looked up linearly and
// the directive table is a map keyed by name — grounded on the teacher's vm/arch_constants.go convention of
// naming every bit-field position and opcode value as a Go constant rather
// than a magic number scattered through the encoder.
package isa

// InstructionType is the instruction word's bit-field shape.
type InstructionType int

const (
	TypeR InstructionType = iota
	TypeI
	TypeJ
)

func (t InstructionType) String() string {
	switch t {
	case TypeR:
		return "R"
	case TypeI:
		return "I"
	case TypeJ:
		return "J"
	default:
		return "?"
	}
}

// OperandShape enumerates the operand-list shapes an instruction may take,
// per spec.md §4.4's operand shape table.
type OperandShape int

const (
	ShapeRegRegReg   OperandShape = iota // add/sub/and/or/nor
	ShapeRegReg                          // move/mvhi/mvlo
	ShapeRegImmReg                       // addi..nori, lb/sb/lw/sw/lh/sh
	ShapeRegRegLabel                     // bne/beq/blt/bgt
	ShapeRegOrLabel                      // jmp
	ShapeLabel                           // la/call
	ShapeNone                            // stop
)

// Instruction is one row of the reserved mnemonic table.
type Instruction struct {
	Name   string
	Opcode int
	Funct  int // -1 when the mnemonic has no funct field (I/J types)
	Type   InstructionType
	Shape  OperandShape
}

// Instructions is the fixed, ordered mnemonic table from spec.md §4.1.
var Instructions = []Instruction{
	{"add", 0, 1, TypeR, ShapeRegRegReg},
	{"sub", 0, 2, TypeR, ShapeRegRegReg},
	{"and", 0, 3, TypeR, ShapeRegRegReg},
	{"or", 0, 4, TypeR, ShapeRegRegReg},
	{"nor", 0, 5, TypeR, ShapeRegRegReg},
	{"move", 1, 1, TypeR, ShapeRegReg},
	{"mvhi", 1, 2, TypeR, ShapeRegReg},
	{"mvlo", 1, 3, TypeR, ShapeRegReg},
	{"addi", 10, -1, TypeI, ShapeRegImmReg},
	{"subi", 11, -1, TypeI, ShapeRegImmReg},
	{"andi", 12, -1, TypeI, ShapeRegImmReg},
	{"ori", 13, -1, TypeI, ShapeRegImmReg},
	{"nori", 14, -1, TypeI, ShapeRegImmReg},
	{"bne", 15, -1, TypeI, ShapeRegRegLabel},
	{"beq", 16, -1, TypeI, ShapeRegRegLabel},
	{"blt", 17, -1, TypeI, ShapeRegRegLabel},
	{"bgt", 18, -1, TypeI, ShapeRegRegLabel},
	{"lb", 19, -1, TypeI, ShapeRegImmReg},
	{"sb", 20, -1, TypeI, ShapeRegImmReg},
	{"lw", 21, -1, TypeI, ShapeRegImmReg},
	{"sw", 22, -1, TypeI, ShapeRegImmReg},
	{"lh", 23, -1, TypeI, ShapeRegImmReg},
	{"sh", 24, -1, TypeI, ShapeRegImmReg},
	{"jmp", 30, -1, TypeJ, ShapeRegOrLabel},
	{"la", 31, -1, TypeJ, ShapeLabel},
	{"call", 32, -1, TypeJ, ShapeLabel},
	{"stop", 63, -1, TypeJ, ShapeNone},
}

// Lookup finds an instruction by mnemonic. Lookup is linear: the table has
// 27 rows, so a hashed index buys nothing at this size (see DESIGN.md).
func Lookup(name string) (Instruction, bool) {
	for _, ins := range Instructions {
		if ins.Name == name {
			return ins, true
		}
	}
	return Instruction{}, false
}

// IsConditionalBranch reports whether opcode is one of bne/beq/blt/bgt
// (spec.md §4.3: opcodes 15-18 take a PC-relative label operand).
func IsConditionalBranch(opcode int) bool {
	return opcode >= 15 && opcode <= 18
}

// IsImmediateOrMemory reports whether opcode is an arithmetic-immediate or
// memory-access instruction (spec.md §4.3: opcodes 10-14, 19-24 take a
// source-supplied signed 16-bit literal, not a label).
func IsImmediateOrMemory(opcode int) bool {
	return (opcode >= 10 && opcode <= 14) || (opcode >= 19 && opcode <= 24)
}

// DirectiveType is the type tag of a reserved directive name.
type DirectiveType int

const (
	DirDH DirectiveType = iota
	DirDW
	DirDB
	DirASCIZ
	DirEntry
	DirExtern
)

var directiveNames = map[string]DirectiveType{
	"dh":     DirDH,
	"dw":     DirDW,
	"db":     DirDB,
	"asciz":  DirASCIZ,
	"entry":  DirEntry,
	"extern": DirExtern,
}

// LookupDirective finds a directive by its name (without the leading '.').
func LookupDirective(name string) (DirectiveType, bool) {
	d, ok := directiveNames[name]
	return d, ok
}

// VariableSize returns the per-element byte size for a data directive.
// DirEntry and DirExtern have no associated data size and are rejected.
//
// This is a total function over every DirectiveType, unlike the original
// source's getSizeOfDataVariable (original_source/src/directives.c), whose C
// equivalent leaves sizeofVariable uninitialised for directive types it does
// not expect — see DESIGN.md.
func VariableSize(d DirectiveType) (size int, ok bool) {
	switch d {
	case DirDB, DirASCIZ:
		return 1, true
	case DirDH:
		return 2, true
	case DirDW:
		return 4, true
	default:
		return 0, false
	}
}

// IsReservedWord reports whether name collides with any instruction
// mnemonic or directive name; such names may not be used as labels
// (spec.md §4.1).
func IsReservedWord(name string) bool {
	if _, ok := Lookup(name); ok {
		return true
	}
	_, ok := directiveNames[name]
	return ok
}

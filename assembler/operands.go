package assembler

import (
	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/isa"
	"github.com/lookbusy1344/r32asm/token"
)

// operands is the parsed operand list for one instruction line. Which
// fields are populated depends on the instruction's OperandShape.
//
// Register/operand-to-field convention, matching source operand order to
// the original assembler's setRBitField/setIBitField (original_source/src/
// tables.c; see DESIGN.md Open Question decisions):
//   - ShapeRegRegReg (add/sub/and/or/nor):   regs[0]=rs, regs[1]=rt, regs[2]=rd
//   - ShapeRegReg (move/mvhi/mvlo):          regs[0]=rs, regs[1]=rd, rt=0
//   - ShapeRegImmReg (addi.. / lb,sb,lw,sw..): regs[0]=rs, imm=immed, regs[1]=rt
//   - ShapeRegRegLabel (bne/beq/blt/bgt):    regs[0]=rs, regs[1]=rt, label=target
//   - ShapeRegOrLabel (jmp):                 either regs[0] is set, or label is set
//   - ShapeLabel (la/call):                  label only
//   - ShapeNone (stop):                      nothing
type operands struct {
	regs       []int
	imm        int64
	hasImm     bool
	label      string
	hasLabel   bool
	labelIsReg bool // jmp: operand was a register, not a label
}

// parseOperands parses the operand list for shape starting at offset i in
// line, validating comma placement and operand ranges as it goes. It
// returns the first error encountered (spec.md §7: one error per line,
// further checks on the line are suppressed).
func parseOperands(shape isa.OperandShape, line string, i int) (operands, *asmerr.Error) {
	switch shape {
	case isa.ShapeRegRegReg:
		return parseRegList(line, i, 3)
	case isa.ShapeRegReg:
		return parseRegList(line, i, 2)
	case isa.ShapeRegImmReg:
		return parseRegImmReg(line, i)
	case isa.ShapeRegRegLabel:
		return parseRegRegLabel(line, i)
	case isa.ShapeRegOrLabel:
		return parseRegOrLabel(line, i)
	case isa.ShapeLabel:
		return parseLabelOnly(line, i)
	case isa.ShapeNone:
		return parseNoOperands(line, i)
	default:
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "unknown operand shape")
	}
}

func parseRegList(line string, i int, count int) (operands, *asmerr.Error) {
	var out operands
	for n := 0; n < count; n++ {
		var err *asmerr.Error
		i, err = token.CheckComma(line, i, n)
		if err != nil {
			return operands{}, err
		}
		i = token.SkipWhitespace(line, i)
		var reg int
		reg, i, err = token.ScanRegister(line, i)
		if err != nil {
			return operands{}, err
		}
		out.regs = append(out.regs, reg)
	}
	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "too many operands")
	}
	return out, nil
}

func parseRegImmReg(line string, i int) (operands, *asmerr.Error) {
	var out operands

	i, err := token.CheckComma(line, i, 0)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	reg0, i2, err := token.ScanRegister(line, i)
	if err != nil {
		return operands{}, err
	}
	i = i2
	out.regs = append(out.regs, reg0)

	i, err = token.CheckComma(line, i, 1)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	numeric, value, i3, err := token.ScanInteger(line, i, 7)
	if err != nil {
		return operands{}, err
	}
	i = i3
	if err := token.ValidateInteger(numeric, value, -32768, 32767); err != nil {
		return operands{}, err
	}
	out.imm = value
	out.hasImm = true

	i, err = token.CheckComma(line, i, 2)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	reg1, i4, err := token.ScanRegister(line, i)
	if err != nil {
		return operands{}, err
	}
	i = i4
	out.regs = append(out.regs, reg1)

	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "too many operands")
	}
	return out, nil
}

func parseRegRegLabel(line string, i int) (operands, *asmerr.Error) {
	var out operands

	i, err := token.CheckComma(line, i, 0)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	reg0, i2, err := token.ScanRegister(line, i)
	if err != nil {
		return operands{}, err
	}
	i = i2
	out.regs = append(out.regs, reg0)

	i, err = token.CheckComma(line, i, 1)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	reg1, i3, err := token.ScanRegister(line, i)
	if err != nil {
		return operands{}, err
	}
	i = i3
	out.regs = append(out.regs, reg1)

	i, err = token.CheckComma(line, i, 2)
	if err != nil {
		return operands{}, err
	}
	i = token.SkipWhitespace(line, i)
	label, i4 := token.ScanLabelName(line, i)
	if label == "" {
		return operands{}, asmerr.New("", 0, asmerr.MissingOperands, "expected label operand")
	}
	i = i4
	out.label = label
	out.hasLabel = true

	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "too many operands")
	}
	return out, nil
}

func parseRegOrLabel(line string, i int) (operands, *asmerr.Error) {
	var out operands
	i = token.SkipWhitespace(line, i)
	if i < len(line) && line[i] == '$' {
		reg, i2, err := token.ScanRegister(line, i)
		if err != nil {
			return operands{}, err
		}
		i = i2
		out.regs = append(out.regs, reg)
		out.labelIsReg = true
	} else {
		label, i2 := token.ScanLabelName(line, i)
		if label == "" {
			return operands{}, asmerr.New("", 0, asmerr.MissingOperands, "expected register or label operand")
		}
		i = i2
		out.label = label
		out.hasLabel = true
	}
	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "too many operands")
	}
	return out, nil
}

func parseLabelOnly(line string, i int) (operands, *asmerr.Error) {
	var out operands
	i = token.SkipWhitespace(line, i)
	label, i2 := token.ScanLabelName(line, i)
	if label == "" {
		return operands{}, asmerr.New("", 0, asmerr.MissingOperands, "expected label operand")
	}
	i = i2
	out.label = label
	out.hasLabel = true
	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.WrongOperandCount, "too many operands")
	}
	return out, nil
}

func parseNoOperands(line string, i int) (operands, *asmerr.Error) {
	if !token.AtEnd(line, i) {
		return operands{}, asmerr.New("", 0, asmerr.ExcessAfterStop, "stop takes no operands")
	}
	return operands{}, nil
}

package assembler

import (
	"fmt"
	"math"
	"os"

	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/encode"
	"github.com/lookbusy1344/r32asm/isa"
	"github.com/lookbusy1344/r32asm/srcline"
	"github.com/lookbusy1344/r32asm/symtab"
	"github.com/lookbusy1344/r32asm/token"
)

// firstPass implements spec.md §4.4. Every line is visited regardless of
// errors on earlier lines (spec.md §7: error reporting is not
// short-circuited), but the pass as a whole only finalises ICF/DCF and the
// data-symbol/data-image relocation if no line produced an error.
func (p *Pipeline) firstPass() {
	for _, line := range p.Lines {
		if line.TooLong {
			p.addError(line.Number, asmerr.LineTooLong, "line exceeds 80 characters")
			continue
		}
		p.firstPassLine(line)
	}

	if p.Errors.HasErrors() {
		return
	}
	p.ICF = p.IC
	p.DCF = p.DC
	p.Symbols.AddICF(p.ICF)
	p.Image.RelocateData(p.ICF)
}

func (p *Pipeline) firstPassLine(line srcline.Line) {
	content := line.Content
	if token.IsBlankOrComment(content) {
		return
	}

	i := token.SkipWhitespace(content, 0)
	labelName, hasLabel, labelNext := token.SplitLabelDefinition(content[i:])
	if hasLabel {
		if err := validateLabelShape(labelName, p.MaxLabelLength); err != nil {
			p.addError(line.Number, err.Kind, err.Message)
			return
		}
		i += labelNext
	}
	i = token.SkipWhitespace(content, i)

	if token.AtEnd(content, i) {
		// A bare label definition with nothing else on the line: record
		// it at the current code address without advancing any counter
		// (original_source/src/firstPass.c; see DESIGN.md).
		if hasLabel {
			if err := p.defineLabelIfNew(labelName, p.IC, symtab.KindCode); err != nil {
				p.addError(line.Number, err.Kind, err.Message)
			}
		}
		return
	}

	if content[i] == '.' {
		p.firstPassDirective(line, content, i+1, labelName, hasLabel)
		return
	}
	p.firstPassInstruction(line, content, i, labelName, hasLabel)
}

// defineLabelIfNew inserts name into the symbol table unless it already
// exists. An existing external symbol being redefined locally is
// ExternalRedefinition; any other existing symbol is DuplicateLabel
// (spec.md §8: "the second [definition] fails with DuplicateLabel and no
// symbol-table mutation follows").
func (p *Pipeline) defineLabelIfNew(name string, value int64, kind symtab.SymbolKind) *asmerr.Error {
	if existing, exists := p.Symbols.Lookup(name); exists {
		if existing.Kind == symtab.KindExternal {
			return asmerr.New(p.File, 0, asmerr.ExternalRedefinition, "'"+name+"' was declared external and cannot be locally defined")
		}
		return asmerr.New(p.File, 0, asmerr.DuplicateLabel, "'"+name+"' is already defined")
	}
	p.Symbols.Define(name, value, kind)
	return nil
}

func (p *Pipeline) firstPassDirective(line srcline.Line, content string, i int, labelName string, hasLabel bool) {
	name, i2 := token.ScanLabelName(content, i)
	i = i2
	dtype, ok := isa.LookupDirective(name)
	if !ok {
		p.addError(line.Number, asmerr.UnrecognisedDirective, "unrecognised directive '."+name+"'")
		return
	}

	switch dtype {
	case isa.DirDB, isa.DirDH, isa.DirDW:
		p.firstPassNumericDirective(line, content, i, dtype, labelName, hasLabel)
	case isa.DirASCIZ:
		p.firstPassASCIZ(line, content, i, labelName, hasLabel)
	case isa.DirExtern:
		p.firstPassExtern(line, content, i, labelName, hasLabel)
	case isa.DirEntry:
		// Ignored during first pass; handled entirely in second pass.
	}
}

func (p *Pipeline) firstPassNumericDirective(line srcline.Line, content string, i int, dtype isa.DirectiveType, labelName string, hasLabel bool) {
	size, _ := isa.VariableSize(dtype)

	var data []byte
	count := 0
	for n := 0; ; n++ {
		nextI, cerr := token.CheckComma(content, i, n)
		if cerr != nil {
			p.addError(line.Number, cerr.Kind, cerr.Message)
			return
		}
		i = token.SkipWhitespace(content, nextI)
		numeric, value, i3, serr := token.ScanInteger(content, i, 12)
		if serr != nil {
			p.addError(line.Number, serr.Kind, serr.Message)
			return
		}
		i = i3
		if verr := token.ValidateInteger(numeric, value, math.MinInt64, math.MaxInt64); verr != nil {
			p.addError(line.Number, verr.Kind, verr.Message)
			return
		}
		if rerr := encode.CheckRangeN(value, size); rerr != nil {
			p.addError(line.Number, rerr.Kind, rerr.Message)
			return
		}
		switch size {
		case 1:
			data = append(data, byte(value))
		case 2:
			b := encode.ToBytesLE16(uint16(value))
			data = append(data, b[0], b[1])
		case 4:
			b := encode.ToBytesLE(uint32(value))
			data = append(data, b[0], b[1], b[2], b[3])
		}
		count++
		if token.AtEnd(content, i) {
			break
		}
	}

	if hasLabel {
		if err := p.defineLabelIfNew(labelName, p.DC, symtab.KindData); err != nil {
			p.addError(line.Number, err.Kind, err.Message)
			return
		}
	}
	p.Image.AppendData(&symtab.DataEntry{
		Address:      p.DC,
		VariableSize: size,
		NumVariables: count,
		Data:         data,
	})
	p.DC += int64(size * count)
}

func (p *Pipeline) firstPassASCIZ(line srcline.Line, content string, i int, labelName string, hasLabel bool) {
	i = token.SkipWhitespace(content, i)
	str, i2, err := token.ScanQuotedString(content, i)
	if err != nil {
		p.addError(line.Number, err.Kind, err.Message)
		return
	}
	i = i2
	if !token.AtEnd(content, i) {
		p.addError(line.Number, asmerr.UnterminatedString, "unexpected characters after string literal")
		return
	}

	data := append([]byte(str), 0)
	if hasLabel {
		if derr := p.defineLabelIfNew(labelName, p.DC, symtab.KindData); derr != nil {
			p.addError(line.Number, derr.Kind, derr.Message)
			return
		}
	}
	p.Image.AppendData(&symtab.DataEntry{
		Address:      p.DC,
		VariableSize: 1,
		NumVariables: len(data),
		Data:         data,
	})
	p.DC += int64(len(data))
}

// firstPassExtern implements spec.md §4.4 step 5. A label definition
// preceding '.extern' on the same line is silently ignored by the original
// toolchain (original_source/src/directives.c); WarnOnExternShadow opts
// into a non-fatal diagnostic for that case instead of staying silent.
func (p *Pipeline) firstPassExtern(line srcline.Line, content string, i int, labelName string, hasLabel bool) {
	i = token.SkipWhitespace(content, i)
	name, i2 := token.ScanLabelName(content, i)
	if name == "" {
		p.addError(line.Number, asmerr.MissingOperands, "'.extern' requires a label operand")
		return
	}
	i = i2
	if !token.AtEnd(content, i) {
		p.addError(line.Number, asmerr.WrongOperandCount, "unexpected characters after '.extern' operand")
		return
	}
	if existing, exists := p.Symbols.Lookup(name); exists {
		if existing.Kind != symtab.KindExternal {
			p.addError(line.Number, asmerr.ExternalRedefinition, "'"+name+"' is already defined locally and cannot be declared external")
		}
		return
	}
	if hasLabel && p.WarnOnExternShadow {
		fmt.Fprintf(os.Stderr, "Warning: file '%s' line %d: label '%s' preceding '.extern' is ignored.\n", p.File, line.Number, labelName)
	}
	p.Symbols.Define(name, 0, symtab.KindExternal)
}

func (p *Pipeline) firstPassInstruction(line srcline.Line, content string, i int, labelName string, hasLabel bool) {
	mnemonic, i2 := token.ScanLabelName(content, i)
	ins, ok := isa.Lookup(mnemonic)
	if !ok {
		p.addError(line.Number, asmerr.UnrecognisedInstruction, "unrecognised instruction '"+mnemonic+"'")
		return
	}
	i = i2

	if ins.Shape != isa.ShapeNone && i < len(content) && content[i] != ' ' && content[i] != '\t' && content[i] != ',' {
		p.addError(line.Number, asmerr.NoLeadingWhitespace, "expected whitespace after '"+mnemonic+"'")
		return
	}

	if hasLabel {
		if err := p.defineLabelIfNew(labelName, p.IC, symtab.KindCode); err != nil {
			p.addError(line.Number, err.Kind, err.Message)
			return
		}
	}

	ops, operr := parseOperands(ins.Shape, content, i)
	if operr != nil {
		p.addError(line.Number, operr.Kind, operr.Message)
		return
	}

	word := encodeFirstPass(ins, ops)
	p.Image.AppendCode(&symtab.CodeEntry{
		LineNumber: line.Number,
		Address:    int32(p.IC),
		Type:       ins.Type.String(),
		Data:       word,
	})
	p.IC += 4
}

func encodeFirstPass(ins isa.Instruction, ops operands) uint32 {
	switch ins.Shape {
	case isa.ShapeRegRegReg:
		rs, rt, rd := ops.regs[0], ops.regs[1], ops.regs[2]
		return encode.EncodeR(ins.Opcode, ins.Funct, rd, rt, rs)
	case isa.ShapeRegReg:
		rs, rd := ops.regs[0], ops.regs[1]
		return encode.EncodeR(ins.Opcode, ins.Funct, rd, 0, rs)
	case isa.ShapeRegImmReg:
		rs, rt := ops.regs[0], ops.regs[1]
		return encode.EncodeI(ins.Opcode, rs, rt, int32(ops.imm))
	case isa.ShapeRegRegLabel:
		rs, rt := ops.regs[0], ops.regs[1]
		return encode.EncodeI(ins.Opcode, rs, rt, 0)
	case isa.ShapeRegOrLabel:
		if ops.labelIsReg {
			return encode.EncodeJ(ins.Opcode, true, uint32(ops.regs[0]))
		}
		return encode.EncodeJ(ins.Opcode, false, 0)
	case isa.ShapeLabel:
		return encode.EncodeJ(ins.Opcode, false, 0)
	case isa.ShapeNone:
		return encode.EncodeJ(ins.Opcode, false, 0)
	default:
		return 0
	}
}

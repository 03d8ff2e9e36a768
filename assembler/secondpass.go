package assembler

import (
	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/encode"
	"github.com/lookbusy1344/r32asm/isa"
	"github.com/lookbusy1344/r32asm/srcline"
	"github.com/lookbusy1344/r32asm/symtab"
	"github.com/lookbusy1344/r32asm/token"
)

const (
	immedPatchMask   = 0xFFFF
	addressPatchMask = 0x1FFFFFF
)

// secondPass implements spec.md §4.5: re-scan every line, this time
// resolving label operands against the completed symbol table and patching
// the partially-encoded words left behind by first pass. codeIdx tracks the
// position in p.Image.Code, which only advances on instruction lines, in
// the same order first pass appended them.
func (p *Pipeline) secondPass() {
	codeIdx := 0
	for _, line := range p.Lines {
		p.secondPassLine(line, &codeIdx)
	}

	for _, sym := range p.Symbols.All() {
		if sym.IsEntry {
			p.Image.AppendAttribute(&symtab.Attribute{Name: sym.Name, Kind: symtab.AttrEntry, Address: sym.Value})
		}
	}
}

func (p *Pipeline) secondPassLine(line srcline.Line, codeIdx *int) {
	content := line.Content
	if token.IsBlankOrComment(content) {
		return
	}

	i := token.SkipWhitespace(content, 0)
	_, hasLabel, labelNext := token.SplitLabelDefinition(content[i:])
	if hasLabel {
		i += labelNext
	}
	i = token.SkipWhitespace(content, i)

	if token.AtEnd(content, i) {
		return
	}

	if content[i] == '.' {
		p.secondPassDirective(line, content, i+1)
		return
	}
	p.secondPassInstruction(line, content, i, codeIdx)
}

func (p *Pipeline) secondPassDirective(line srcline.Line, content string, i int) {
	name, i2 := token.ScanLabelName(content, i)
	i = i2
	dtype, ok := isa.LookupDirective(name)
	if !ok || dtype != isa.DirEntry {
		return
	}

	i = token.SkipWhitespace(content, i)
	target, _ := token.ScanLabelName(content, i)
	sym, exists := p.Symbols.Lookup(target)
	if !exists {
		p.addError(line.Number, asmerr.UnknownEntryLabel, "'.entry' refers to undefined label '"+target+"'")
		return
	}
	if sym.Kind == symtab.KindExternal {
		p.addError(line.Number, asmerr.ExternalRedefinition, "'"+target+"' is external and cannot also be an entry")
		return
	}
	sym.IsEntry = true
}

func (p *Pipeline) secondPassInstruction(line srcline.Line, content string, i int, codeIdx *int) {
	mnemonic, i2 := token.ScanLabelName(content, i)
	ins, ok := isa.Lookup(mnemonic)
	if !ok {
		return
	}
	i = i2

	entry := p.Image.Code[*codeIdx]
	*codeIdx++

	ops, operr := parseOperands(ins.Shape, content, i)
	if operr != nil {
		return
	}

	switch ins.Shape {
	case isa.ShapeRegRegLabel:
		p.resolveBranch(line, entry, ops.label)
	case isa.ShapeRegOrLabel:
		if !ops.labelIsReg {
			p.resolveJumpTarget(line, entry, ops.label)
		}
	case isa.ShapeLabel:
		p.resolveJumpTarget(line, entry, ops.label)
	}
}

func (p *Pipeline) resolveBranch(line srcline.Line, entry *symtab.CodeEntry, label string) {
	sym, exists := p.Symbols.Lookup(label)
	if !exists {
		p.addError(line.Number, asmerr.UndefinedLabel, "undefined label '"+label+"'")
		return
	}
	if sym.Kind == symtab.KindExternal {
		p.addError(line.Number, asmerr.ExternalInBranch, "external symbol '"+label+"' cannot be a branch target")
		return
	}
	offset := sym.Value - int64(entry.Address)
	if !encode.FitsSigned16(offset) {
		p.addError(line.Number, asmerr.BranchTooFar, "branch target '"+label+"' is out of 16-bit range")
		return
	}
	entry.Data = (entry.Data &^ immedPatchMask) | (uint32(offset) & immedPatchMask)
}

func (p *Pipeline) resolveJumpTarget(line srcline.Line, entry *symtab.CodeEntry, label string) {
	sym, exists := p.Symbols.Lookup(label)
	if !exists {
		p.addError(line.Number, asmerr.UndefinedLabel, "undefined label '"+label+"'")
		return
	}
	if sym.Kind == symtab.KindExternal {
		p.Image.AppendAttribute(&symtab.Attribute{Name: label, Kind: symtab.AttrExternal, Address: int64(entry.Address)})
		return
	}
	if !encode.FitsUnsigned25(sym.Value) {
		p.addError(line.Number, asmerr.AddressTooLarge, "address of '"+label+"' does not fit in 25 bits")
		return
	}
	entry.Data = (entry.Data &^ addressPatchMask) | (uint32(sym.Value) & addressPatchMask)
}

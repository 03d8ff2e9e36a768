// Package assembler implements the two-pass translation pipeline of
// spec.md §4.4-§4.5: first pass builds the symbol table and partially
// encodes instructions, second pass resolves label operands and completes
// the binary image.
//
// Grounded on gmofishsauce-wut4's assembler pass structure (lang/yasm/
// assembler.go): each pass walks the source independently, re-deriving
// whatever it needs from the raw line text rather than threading a
// pre-tokenised AST between passes, matching spec.md §9's note that either
// approach is conforming.
package assembler

import (
	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/srcline"
	"github.com/lookbusy1344/r32asm/symtab"
)

// Pipeline owns all per-file mutable state: the symbol table, the image
// tables, and the IC/DC counters. It is fresh per source file (spec.md
// §5: no shared mutable state between files).
type Pipeline struct {
	File  string
	Lines []srcline.Line

	Symbols *symtab.Table
	Image   *symtab.Image

	IC  int64
	DC  int64
	ICF int64
	DCF int64

	// MaxLabelLength bounds label names (spec.md §4.1: 31), overridable via
	// config.Config.Assembly.MaxLabelLength.
	MaxLabelLength int

	// WarnOnExternShadow enables the optional diagnostic spec.md §4.4 step 5
	// allows for a label definition preceding '.extern' on the same line.
	WarnOnExternShadow bool

	Errors asmerr.List
}

// New builds a pipeline for one source file, already split into lines.
func New(file string, lines []srcline.Line) *Pipeline {
	return &Pipeline{
		File:           file,
		Lines:          lines,
		Symbols:        symtab.NewTable(),
		Image:          symtab.NewImage(),
		IC:             100,
		DC:             0,
		MaxLabelLength: maxLabelLength,
	}
}

// Assemble runs first pass then, only if it succeeded, second pass. It
// returns true if the unit assembled with no errors and is ready for
// emission.
func (p *Pipeline) Assemble() bool {
	p.firstPass()
	if p.Errors.HasErrors() {
		return false
	}
	p.secondPass()
	return !p.Errors.HasErrors()
}

func (p *Pipeline) addError(line int64, kind asmerr.Kind, message string) {
	p.Errors.Add(asmerr.New(p.File, line, kind, message))
}

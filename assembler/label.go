package assembler

import (
	"strconv"

	"github.com/lookbusy1344/r32asm/asmerr"
	"github.com/lookbusy1344/r32asm/isa"
)

const maxLabelLength = 31

// validateLabelShape checks the syntactic rules of spec.md §4.4 step 3:
// at most maxLen characters (default 31), starting with a letter,
// alphanumeric thereafter, and not colliding with a reserved mnemonic or
// directive name.
func validateLabelShape(name string, maxLen int) *asmerr.Error {
	if len(name) == 0 || len(name) > maxLen {
		return asmerr.New("", 0, asmerr.InvalidLabelName, "label must be 1-"+strconv.Itoa(maxLen)+" characters")
	}
	if !isLetter(name[0]) {
		return asmerr.New("", 0, asmerr.InvalidLabelName, "label must start with a letter")
	}
	for i := 1; i < len(name); i++ {
		if !isLetter(name[i]) && !isDigit(name[i]) {
			return asmerr.New("", 0, asmerr.InvalidLabelName, "label must be alphanumeric")
		}
	}
	if isa.IsReservedWord(name) {
		return asmerr.New("", 0, asmerr.ReservedNameAsLabel, "'"+name+"' is a reserved word")
	}
	return nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

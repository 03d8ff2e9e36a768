// Package token provides the character-level scanning primitives used to
// read a single source line: whitespace skipping, integer and register
// literals, label names, and comma placement between operands.
//
// Every function here operates on a byte offset into a line and returns the
// offset just past what it consumed, mirroring the teacher's offset-based
// lexer rather than building a token stream up front — the assembler needs
// fine control over exactly where a scan stopped to report accurate
// column-free, line-based diagnostics (spec.md §7 only carries a line
// number, not a column).
package token

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lookbusy1344/r32asm/asmerr"
)

// SkipWhitespace advances i past ASCII space and tab, never past a newline.
func SkipWhitespace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// AtEnd reports whether i has reached the end of the line (ignoring a
// trailing CR, so callers don't need to strip it themselves).
func AtEnd(s string, i int) bool {
	i = SkipWhitespace(s, i)
	return i >= len(s) || s[i] == '\r'
}

// ScanLabelName reads a bare word: everything up to the next whitespace or
// comma. It does not validate label shape — callers apply that separately,
// since the same scan is reused for directive operands that are not labels.
func ScanLabelName(s string, i int) (name string, next int) {
	start := i
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ',' && s[i] != '\r' && s[i] != '\n' {
		i++
	}
	return s[start:i], i
}

var integerShape = regexp.MustCompile(`^[+-]?[0-9]+$`)

// ScanInteger reads characters up to the next whitespace, comma, or newline
// and returns both the raw text and its parsed value. maxDigits bounds the
// number of characters scanned (sign included) to catch absurdly long
// literals before they are even handed to strconv.
func ScanInteger(s string, i int, maxDigits int) (numeric string, value int64, next int, err *asmerr.Error) {
	start := i
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ',' && s[i] != '\r' && s[i] != '\n' {
		i++
	}
	numeric = s[start:i]
	if len(numeric) > maxDigits {
		return numeric, 0, i, asmerr.New("", 0, asmerr.InvalidInteger, "'"+numeric+"' has more than "+strconv.Itoa(maxDigits)+" digits")
	}
	v, convErr := strconv.ParseInt(numeric, 10, 64)
	if convErr != nil {
		v = 0
	}
	return numeric, v, i, nil
}

// ValidateInteger fails with InvalidInteger unless numeric matches
// [+-]?\d+ and value falls within [min, max].
func ValidateInteger(numeric string, value int64, min, max int64) *asmerr.Error {
	if !integerShape.MatchString(numeric) {
		return asmerr.New("", 0, asmerr.InvalidInteger, "'"+numeric+"' is not a valid integer")
	}
	if value < min || value > max {
		return asmerr.New("", 0, asmerr.InvalidInteger, "'"+numeric+"' out of range ["+strconv.FormatInt(min, 10)+","+strconv.FormatInt(max, 10)+"]")
	}
	return nil
}

// ScanRegister requires '$' followed by an unsigned integer in [0,31].
func ScanRegister(s string, i int) (reg int, next int, err *asmerr.Error) {
	if i >= len(s) || s[i] != '$' {
		return 0, i, asmerr.New("", 0, asmerr.InvalidRegister, "expected '$' register operand")
	}
	i++
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, i, asmerr.New("", 0, asmerr.InvalidRegister, "expected register number after '$'")
	}
	numStr := s[start:i]
	v, convErr := strconv.Atoi(numStr)
	if convErr != nil || v < 0 || v > 31 {
		return 0, i, asmerr.New("", 0, asmerr.InvalidRegister, "register number '$"+numStr+"' out of range [0,31]")
	}
	return v, i, nil
}

// CheckComma validates the comma (or absence of one) between operand index
// operandCountSoFar-1 and the operand about to be scanned at i. It reports:
//   - MultipleCommas: two commas with only whitespace between them
//   - StrayComma: a comma before the first operand or trailing after the last
//   - MissingComma: no comma where one was required between two operands
func CheckComma(s string, i int, operandCountSoFar int) (next int, err *asmerr.Error) {
	j := SkipWhitespace(s, i)
	hasComma := j < len(s) && s[j] == ','
	if operandCountSoFar == 0 {
		if hasComma {
			return j, asmerr.New("", 0, asmerr.StrayComma, "unexpected comma before first operand")
		}
		return i, nil
	}
	if !hasComma {
		return i, asmerr.New("", 0, asmerr.MissingComma, "expected comma between operands")
	}
	j++
	k := SkipWhitespace(s, j)
	if k < len(s) && s[k] == ',' {
		return k, asmerr.New("", 0, asmerr.MultipleCommas, "multiple consecutive commas")
	}
	if AtEnd(s, k) {
		return k, asmerr.New("", 0, asmerr.StrayComma, "trailing comma after last operand")
	}
	return k, nil
}

// ScanQuotedString reads a double-quoted string starting at i (which must
// point at the opening quote). It returns the decoded bytes (escapes are
// not processed — spec.md's ASCIZ grammar has no escape sequences, just raw
// printable characters) and the offset just past the closing quote.
func ScanQuotedString(s string, i int) (content string, next int, err *asmerr.Error) {
	if i >= len(s) || s[i] != '"' {
		return "", i, asmerr.New("", 0, asmerr.UnterminatedString, "expected opening '\"'")
	}
	start := i + 1
	j := start
	for j < len(s) && s[j] != '"' {
		j++
	}
	if j >= len(s) {
		return "", j, asmerr.New("", 0, asmerr.UnterminatedString, "string literal is missing a closing '\"'")
	}
	content = s[start:j]
	for k := 0; k < len(content); k++ {
		if content[k] < 0x20 || content[k] > 0x7e {
			return "", j + 1, asmerr.New("", 0, asmerr.NonPrintableInString, "non-printable character in string literal")
		}
	}
	return content, j + 1, nil
}

// SplitLabelDefinition detects a "word:" at the start of the (already
// whitespace-trimmed) line content and returns the label text, whether one
// was found, and the offset just past the colon.
func SplitLabelDefinition(s string) (label string, found bool, next int) {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != ':' && s[i] != '\r' && s[i] != '\n' {
		i++
	}
	if i < len(s) && s[i] == ':' {
		return s[:i], true, i + 1
	}
	return "", false, 0
}

// IsBlankOrComment reports whether the line (after whitespace trimming) is
// empty or begins with a comment marker.
func IsBlankOrComment(s string) bool {
	t := strings.TrimRight(s, "\r\n")
	t = strings.TrimLeft(t, " \t")
	return t == "" || t[0] == ';'
}

// Package asmerr defines the structured error type shared by every stage of
// the assembler pipeline.
package asmerr

import (
	"fmt"
)

// Kind categorizes a single assembly error.
type Kind int

const (
	LineTooLong Kind = iota
	InvalidLabelName
	ReservedNameAsLabel
	DuplicateLabel
	UndefinedLabel
	UnknownEntryLabel
	ExternalRedefinition
	UnrecognisedDirective
	UnrecognisedInstruction
	MissingOperands
	NoLeadingWhitespace
	WrongOperandCount
	InvalidInteger
	InvalidRegister
	MissingComma
	MultipleCommas
	StrayComma
	UnterminatedString
	NonPrintableInString
	BranchTooFar
	AddressTooLarge
	ExternalInBranch
	ExcessAfterStop
	IoError
)

var kindNames = map[Kind]string{
	LineTooLong:             "line exceeds 80 characters",
	InvalidLabelName:        "invalid label name",
	ReservedNameAsLabel:     "reserved word used as label",
	DuplicateLabel:          "label already defined",
	UndefinedLabel:          "undefined label",
	UnknownEntryLabel:       "entry refers to undefined label",
	ExternalRedefinition:    "external symbol redefined locally",
	UnrecognisedDirective:   "unrecognised directive",
	UnrecognisedInstruction: "unrecognised instruction",
	MissingOperands:         "missing operands",
	NoLeadingWhitespace:     "missing whitespace before operand",
	WrongOperandCount:       "wrong number of operands",
	InvalidInteger:          "invalid integer operand",
	InvalidRegister:         "invalid register operand",
	MissingComma:            "missing comma between operands",
	MultipleCommas:          "multiple consecutive commas",
	StrayComma:              "stray comma",
	UnterminatedString:      "unterminated string literal",
	NonPrintableInString:    "non-printable character in string",
	BranchTooFar:            "branch target out of 16-bit range",
	AddressTooLarge:         "address does not fit in 25 bits",
	ExternalInBranch:        "external symbol used as branch target",
	ExcessAfterStop:         "excess tokens after instruction",
	IoError:                 "I/O error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is a single diagnostic tied to one source line of one file.
//
// spec.md §7 requires exactly one error per erroneous line, and the message
// format "Error! file '<path>' line <N>: <message>." is produced by Error().
type Error struct {
	File    string
	Line    int64
	Kind    Kind
	Message string
}

func New(file string, line int64, kind Kind, message string) *Error {
	return &Error{File: file, Line: line, Kind: kind, Message: message}
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	return fmt.Sprintf("Error! file '%s' line %d: %s.", e.File, e.Line, msg)
}

// List collects one error per erroneous line across a full pass. Processing
// never stops at the first error: every line is still visited, and List is
// the accumulator that preserves that behavior.
type List struct {
	Errors []*Error
}

func (l *List) Add(err *Error) {
	l.Errors = append(l.Errors, err)
}

func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Print writes every collected error to w in source order, one per line.
func (l *List) Print(w interface{ Write([]byte) (int, error) }) {
	for _, e := range l.Errors {
		fmt.Fprintln(w, e.Error())
	}
}

package asm

import (
	"fmt"

	"hack.n2t.dev/internal/hack"
)

// ParseErrorKind discriminates the line-parser failure modes.
type ParseErrorKind uint8

const (
	UnknownDestination ParseErrorKind = iota
	UnknownComputation
	UnknownJump
	ConstantOutOfRange
	MalformedLine
)

// ParseError is raised by ParseLine and by the two-pass translator; it
// always carries the 1-based source line number for diagnosis.
type ParseError struct {
	Kind  ParseErrorKind
	Line  int
	Token string // the offending character/mnemonic/value, formatted as text
	Text  string // the raw source line, for the diagnostic message
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownDestination:
		return fmt.Sprintf("line %d: unknown destination %q in %q", e.Line, e.Token, e.Text)
	case UnknownComputation:
		return fmt.Sprintf("line %d: unknown computation %q in %q", e.Line, e.Token, e.Text)
	case UnknownJump:
		return fmt.Sprintf("line %d: unknown jump %q in %q", e.Line, e.Token, e.Text)
	case ConstantOutOfRange:
		return fmt.Sprintf("line %d: constant %q out of range [0, %d] in %q", e.Line, e.Token, hack.MaxAddress, e.Text)
	case MalformedLine:
		return fmt.Sprintf("line %d: malformed line %q", e.Line, e.Text)
	default:
		return fmt.Sprintf("line %d: parse error in %q", e.Line, e.Text)
	}
}

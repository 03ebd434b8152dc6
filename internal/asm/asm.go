// Package asm implements the Hack assembly language: a line parser that
// turns `.asm` source text into a structured AssemblyLine, a symbol table
// preseeded with the Hack architecture's predefined names, and a two-pass
// translator that resolves labels, auto-allocates variables, and emits the
// resulting Word stream.
package asm

import (
	"hack.n2t.dev/internal/hack"
)

// LocationKind distinguishes the two ways an A-instruction's operand can be
// written in source: a literal decimal constant, or a symbol (label or
// variable) resolved later.
type LocationKind uint8

const (
	Numeric LocationKind = iota
	Symbol
)

// MemoryLocation is the operand of a LoadAddress line.
type MemoryLocation struct {
	Kind  LocationKind
	Value uint16 // valid when Kind == Numeric
	Name  string // valid when Kind == Symbol
}

// LineKind tags which alternative an AssemblyLine holds.
type LineKind uint8

const (
	LineBlank LineKind = iota
	LineLoadAddress
	LineLabel
	LineCompute
)

// AssemblyLine is one parsed, trimmed source line: a load-address
// instruction, a label declaration, a compute instruction, or a blank line
// (possibly blank only because it held nothing but a comment). Comment is
// the trimmed trailing `//...` text, if any, regardless of LineKind.
type AssemblyLine struct {
	Kind LineKind

	Location MemoryLocation // LineLoadAddress
	Label    string         // LineLabel

	// LineCompute payload, mirroring hack.Instruction's C-instruction shape.
	Op               hack.ComputeOp
	UseMemoryOperand bool
	Dest             hack.Dest
	Jump             hack.Jump

	Comment string
}

package asm

import (
	"fmt"

	"hack.n2t.dev/internal/hack"
)

// Assembler drives a two-pass translation: pass one parses every line and
// binds labels to the emitted-word index they'll resolve to; pass two emits
// the word stream, lazily allocating variables.
//
// A single-pass lowering that walks an already-parsed program in one DFS and
// binds a label only once every prior instruction has been lowered gets
// forward references wrong: a label declared before a forward reference to
// it works only by accident of map mutation order, while a genuine forward
// reference (`@END` before `(END)`) resolves to whatever the symbol table
// happens to hold at lowering time. The explicit two passes below avoid
// that: every label is bound to its instruction index before any `@LABEL`
// reference is resolved.
type Assembler struct{}

// NewAssembler returns an Assembler. It carries no state of its own; each
// call to Assemble starts a fresh SymbolTable and DebugMap.
func NewAssembler() Assembler { return Assembler{} }

// Assemble lowers source (one entry per source line, 1-indexed by position)
// into a Program. When debug is true, the returned DebugMap records which
// source line produced each emitted word.
func (Assembler) Assemble(source []string, debug bool) (Program, *DebugMap, error) {
	lines := make([]AssemblyLine, len(source))
	for i, text := range source {
		line, err := ParseLine(i+1, text)
		if err != nil {
			return nil, nil, err
		}
		lines[i] = line
	}

	symbols := NewSymbolTable()

	// Pass 1: bind every label to the word index the NEXT emitted
	// instruction will occupy. Labels themselves emit no word.
	var emitted uint16
	for i, line := range lines {
		switch line.Kind {
		case LineLabel:
			if err := symbols.BindLabel(line.Label, emitted); err != nil {
				return nil, nil, withLine(err, i+1, source[i])
			}
		case LineLoadAddress, LineCompute:
			emitted++
		}
	}

	// Pass 2: emit words, resolving @symbol references against the symbol
	// table built in pass 1 and lazily allocating variables starting at 16.
	program := make(Program, 0, emitted)
	var sites []DebugSite
	if debug {
		sites = make([]DebugSite, 0, emitted)
	}
	nextVariable := firstVariableAddress

	for i, line := range lines {
		var inst hack.Instruction

		switch line.Kind {
		case LineBlank, LineLabel:
			continue

		case LineLoadAddress:
			addr, err := resolveLoadAddress(symbols, &nextVariable, line.Location)
			if err != nil {
				return nil, nil, withLine(err, i+1, source[i])
			}
			built, err := hack.NewAddress(addr)
			if err != nil {
				return nil, nil, withLine(err, i+1, source[i])
			}
			inst = built

		case LineCompute:
			inst = hack.Instruction{
				Op:               line.Op,
				UseMemoryOperand: line.UseMemoryOperand,
				Dest:             line.Dest,
				Jump:             line.Jump,
			}
		}

		program = append(program, hack.Encode(inst))
		if debug {
			sites = append(sites, DebugSite{SourceLine: i + 1, SourceText: source[i]})
		}
	}

	var dm *DebugMap
	if debug {
		dm = &DebugMap{sites: sites}
	}
	return program, dm, nil
}

func resolveLoadAddress(symbols *SymbolTable, next *uint16, loc MemoryLocation) (uint16, error) {
	if loc.Kind == Numeric {
		return loc.Value, nil
	}
	return symbols.ResolveVariable(loc.Name, next)
}

// withLine re-tags a *ParseError (or wraps any other error) with the
// failing source line and text, for errors raised outside ParseLine itself
// (symbol binding failures surface during pass 1/2, not during parsing).
func withLine(err error, line int, text string) error {
	if pe, ok := err.(*ParseError); ok {
		if pe.Line == 0 {
			pe.Line = line
		}
		if pe.Text == "" {
			pe.Text = text
		}
		return pe
	}
	return fmt.Errorf("line %d: %w (in %q)", line, err, text)
}

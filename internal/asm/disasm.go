package asm

import (
	"fmt"
	"strings"

	"hack.n2t.dev/internal/hack"
)

// compMnemonic inverts compTable: given a ComputeOp and whether it
// dereferences memory, returns its canonical COMP text.
var compMnemonic = func() map[struct {
	op        hack.ComputeOp
	useMemory bool
}]string {
	m := make(map[struct {
		op        hack.ComputeOp
		useMemory bool
	}]string, len(compTable))
	for mnemonic, entry := range compTable {
		m[entry] = mnemonic
	}
	return m
}()

var jumpMnemonic = func() map[hack.Jump]string {
	m := make(map[hack.Jump]string, len(jumpTable))
	for mnemonic, j := range jumpTable {
		m[j] = mnemonic
	}
	return m
}()

func destMnemonic(d hack.Dest) string {
	var b strings.Builder
	if d.A {
		b.WriteByte('A')
	}
	if d.D {
		b.WriteByte('D')
	}
	if d.M {
		b.WriteByte('M')
	}
	return b.String()
}

// Disassemble renders a Program back into `.asm` text, one mnemonic line per
// word, with no labels or comments (addresses stay numeric and compute
// instructions list only comp/dest/jump). It exists so the translator's
// round trip — assemble, disassemble, reassemble — can be checked to
// produce the identical word stream;
// labels are erased by assembly, so a disassembly can never recover them.
func Disassemble(p Program) ([]string, error) {
	lines := make([]string, 0, len(p))
	for _, w := range p {
		inst, err := hack.Decode(w)
		if err != nil {
			return nil, fmt.Errorf("asm: disassemble word %s: %w", w, err)
		}
		lines = append(lines, disassembleOne(inst))
	}
	return lines, nil
}

func disassembleOne(inst hack.Instruction) string {
	if inst.IsAddress {
		return fmt.Sprintf("@%d", inst.Address)
	}

	comp := compMnemonic[struct {
		op        hack.ComputeOp
		useMemory bool
	}{inst.Op, inst.UseMemoryOperand}]

	var b strings.Builder
	if dest := destMnemonic(inst.Dest); dest != "" {
		b.WriteString(dest)
		b.WriteByte('=')
	}
	b.WriteString(comp)
	if inst.Jump != hack.JumpNone {
		b.WriteByte(';')
		b.WriteString(jumpMnemonic[inst.Jump])
	}
	return b.String()
}

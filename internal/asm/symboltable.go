package asm

import "fmt"

// predefined is the fixed set of names every SymbolTable starts with:
// virtual-machine register aliases, the sixteen general registers, and
// the two memory-mapped I/O cells.
var predefined = map[string]uint16{
	"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
	"R0": 0, "R1": 1, "R2": 2, "R3": 3, "R4": 4, "R5": 5,
	"R6": 6, "R7": 7, "R8": 8, "R9": 9, "R10": 10, "R11": 11,
	"R12": 12, "R13": 13, "R14": 14, "R15": 15,
	"SCREEN": 16384, "KBD": 24576,
}

// firstVariableAddress is where pass 2 starts allocating unrecognised
// @NAME references.
const firstVariableAddress uint16 = 16

// SymbolTable maps names to 16-bit addresses: the predefined registers and
// I/O cells, labels bound during pass 1, and variables auto-allocated
// during pass 2.
type SymbolTable struct {
	addresses map[string]uint16
}

// NewSymbolTable returns a table preseeded with the predefined names.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{addresses: make(map[string]uint16, len(predefined)+16)}
	for name, addr := range predefined {
		t.addresses[name] = addr
	}
	return t
}

// Lookup returns the address bound to name, if any.
func (t *SymbolTable) Lookup(name string) (uint16, bool) {
	addr, ok := t.addresses[name]
	return addr, ok
}

// isPredefined reports whether name is one of the built-in registers or I/O
// cells, which BindLabel rejects and ResolveVariable never rebinds.
func isPredefined(name string) bool {
	_, ok := predefined[name]
	return ok
}

// BindLabel binds name to addr (the next-instruction address computed by
// pass 1). Per the Open Question decision in DESIGN.md, rebinding a
// predefined name is rejected rather than silently allowed to shadow it.
// Two different labels bound to the same address are both accepted; binding
// the same name a second time overwrites its earlier address.
func (t *SymbolTable) BindLabel(name string, addr uint16) error {
	if isPredefined(name) {
		return fmt.Errorf("asm: label %q cannot redefine the predefined symbol %q", name, name)
	}
	t.addresses[name] = addr
	return nil
}

// ResolveVariable returns the address for a variable reference, allocating
// a fresh address starting at 16 (and incrementing *next) on first
// reference. It never allocates over a name already bound by a label or an
// earlier variable reference.
func (t *SymbolTable) ResolveVariable(name string, next *uint16) (uint16, error) {
	if isPredefined(name) {
		return t.addresses[name], nil
	}
	if addr, ok := t.addresses[name]; ok {
		return addr, nil
	}
	addr := *next
	*next++
	t.addresses[name] = addr
	return addr, nil
}

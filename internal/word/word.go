// Package word implements the Hack computer's fundamental data unit: a
// 16-bit two's complement integer with the bit-access, bitwise and signed
// arithmetic operations the assembler and CPU share.
package word

import (
	"fmt"
	"strconv"
)

// Word is a 16-bit signed memory cell or instruction word. Bit 0 is the
// most significant bit (the sign bit), matching the Hack architecture's own
// convention rather than the usual LSB-first numbering.
type Word int16

// Zero, One and MinusOne are the three constant ComputeOp results; the CPU's
// ALU in internal/cpu returns them and uses One for its ±1 operations.
const (
	Zero     Word = 0
	One      Word = 1
	MinusOne Word = -1
)

// Bit reports whether bit b (0 = MSB, 15 = LSB) is set.
func (w Word) Bit(b uint) bool {
	offset := 15 - b
	return w&(1<<offset) != 0
}

// ToIndex reinterprets w as an unsigned 16-bit value and masks it into
// [0, 32768), the addressable range of Hack memory. Register A is stored
// signed but used as an unsigned 15-bit index; masking here is what keeps a
// negative A from ever indexing out of bounds.
func (w Word) ToIndex() uint16 {
	return uint16(w) & 0x7FFF
}

// Add, Sub and Neg perform two's complement wraparound arithmetic. Go's
// signed integer overflow already wraps (no undefined behavior, unlike C),
// so no explicit masking is required here.
func (w Word) Add(rhs Word) Word { return w + rhs }
func (w Word) Sub(rhs Word) Word { return w - rhs }
func (w Word) Neg() Word         { return -w }

// Not, And and Or are the bitwise operations the ALU's D_AND_A/D_OR_A/NOT_*
// compute codes use.
func (w Word) Not() Word         { return ^w }
func (w Word) And(rhs Word) Word { return w & rhs }
func (w Word) Or(rhs Word) Word  { return w | rhs }

// ParseBits parses a 16-character MSB-first binary string (as found in a
// .hack file) into a Word.
func ParseBits(s string) (Word, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("word: expected a 16-digit binary string, got %d digits", len(s))
	}
	u, err := strconv.ParseUint(s, 2, 16)
	if err != nil {
		return 0, fmt.Errorf("word: %q is not a 16-digit binary number: %w", s, err)
	}
	return Word(uint16(u)), nil
}

// String formats w as the same 16-character MSB-first binary string
// ParseBits consumes, so parsing then formatting is the identity.
func (w Word) String() string {
	return fmt.Sprintf("%016b", uint16(w))
}

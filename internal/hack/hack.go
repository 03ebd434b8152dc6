// Package hack implements the bidirectional mapping between a 16-bit Word
// and the structured Hack Instruction it encodes: an A-instruction loading a
// constant into register A, or a C-instruction describing an ALU
// computation, a destination set and a jump condition.
//
// The bit layout and the op/jump code tables below are the Hack ISA's fixed
// contract; they are not something the assembler or the CPU get to choose,
// which is why they live in their own package shared by both.
package hack

import (
	"fmt"

	"hack.n2t.dev/internal/word"
)

// MaxAddress is the largest literal an A-instruction can load (15 bits).
const MaxAddress = 1<<15 - 1

// ComputeOp names one of the eighteen ALU operations a C-instruction can
// request. There is no separate opcode for the M-operand forms (M, !M, M+1,
// ...): they reuse the corresponding A-operand code and set UseMemoryOperand
// on the Instruction instead, keeping the control field table to eighteen
// entries rather than thirty-six.
type ComputeOp uint8

const (
	Zero ComputeOp = iota
	One
	MinusOne
	D
	A
	NotD
	NotA
	MinusD
	MinusA
	DPlus1
	APlus1
	DMinus1
	AMinus1
	DPlusA
	DMinusA
	AMinusD
	DAndA
	DOrA
)

// computeCodes is the canonical 6-bit control field for each ComputeOp, as
// defined by the Hack instruction set's comp table.
var computeCodes = map[ComputeOp]uint16{
	Zero: 0b101010, One: 0b111111, MinusOne: 0b111010,
	D: 0b001100, A: 0b110000,
	NotD: 0b001101, NotA: 0b110001,
	MinusD: 0b001111, MinusA: 0b110011,
	DPlus1: 0b011111, APlus1: 0b110111,
	DMinus1: 0b001110, AMinus1: 0b110010,
	DPlusA: 0b000010, DMinusA: 0b010011, AMinusD: 0b000111,
	DAndA: 0b000000, DOrA: 0b010101,
}

var codeToCompute = func() map[uint16]ComputeOp {
	m := make(map[uint16]ComputeOp, len(computeCodes))
	for op, code := range computeCodes {
		m[code] = op
	}
	return m
}()

// Dest is the three-bit destination flag set of a C-instruction. Any
// subset, including the empty set, is legal.
type Dest struct {
	A, D, M bool
}

// Jump names one of the eight jump conditions a C-instruction can request.
type Jump uint8

const (
	JumpNone Jump = iota
	JGT
	JEQ
	JGE
	JLT
	JNE
	JLE
	JMP
)

var jumpCodes = map[Jump]uint16{
	JumpNone: 0b000, JGT: 0b001, JEQ: 0b010, JGE: 0b011,
	JLT: 0b100, JNE: 0b101, JLE: 0b110, JMP: 0b111,
}

var codeToJump = func() map[uint16]Jump {
	m := make(map[uint16]Jump, len(jumpCodes))
	for j, code := range jumpCodes {
		m[code] = j
	}
	return m
}()

// ShouldJump reports whether the given jump condition fires for computation
// result v, interpreted as a signed Word.
func (j Jump) ShouldJump(v word.Word) bool {
	switch j {
	case JumpNone:
		return false
	case JGT:
		return v > 0
	case JEQ:
		return v == 0
	case JGE:
		return v >= 0
	case JLT:
		return v < 0
	case JNE:
		return v != 0
	case JLE:
		return v <= 0
	case JMP:
		return true
	default:
		return false
	}
}

// Instruction is a tagged A/C instruction. IsAddress distinguishes the two
// forms; the irrelevant fields of whichever form isn't active are zero.
type Instruction struct {
	IsAddress bool

	// A-instruction payload.
	Address uint16

	// C-instruction payload.
	Op               ComputeOp
	UseMemoryOperand bool
	Dest             Dest
	Jump             Jump
}

// NewAddress builds an A-instruction. n must be in [0, MaxAddress].
func NewAddress(n uint16) (Instruction, error) {
	if n > MaxAddress {
		return Instruction{}, fmt.Errorf("hack: address %d exceeds the 15-bit addressable range", n)
	}
	return Instruction{IsAddress: true, Address: n}, nil
}

// Encode produces the Word an Instruction is represented as. An
// A-instruction clears bit 0 (the opcode bit); a C-instruction sets bits
// 15..13 to 1,1,1, bit 12 to UseMemoryOperand, bits 11..6 to the ComputeOp
// code, bits 5..3 to the destination flags (A, D, M, MSB first) and bits
// 2..0 to the jump code.
func Encode(i Instruction) word.Word {
	if i.IsAddress {
		return word.Word(int16(i.Address))
	}

	w := uint16(0b111) << 13
	if i.UseMemoryOperand {
		w |= 1 << 12
	}
	w |= computeCodes[i.Op] << 6
	if i.Dest.A {
		w |= 1 << 5
	}
	if i.Dest.D {
		w |= 1 << 4
	}
	if i.Dest.M {
		w |= 1 << 3
	}
	w |= jumpCodes[i.Jump]
	return word.Word(int16(w))
}

// Decode parses a Word back into an Instruction. It is a left inverse of
// Encode: every well-formed encoded Word round-trips through Decode and
// back to the same Word. Decode fails only when the 6-bit comp field (bits
// 11..6) doesn't correspond to any of the eighteen defined ComputeOps.
func Decode(w word.Word) (Instruction, error) {
	if !w.Bit(0) {
		return Instruction{IsAddress: true, Address: w.ToIndex()}, nil
	}

	u := uint16(w)
	compCode := (u >> 6) & 0b111111
	op, ok := codeToCompute[compCode]
	if !ok {
		return Instruction{}, fmt.Errorf("hack: unrecognised comp bits %06b in word %s", compCode, w)
	}

	return Instruction{
		UseMemoryOperand: w.Bit(3),
		Op:               op,
		Dest: Dest{
			A: w.Bit(10),
			D: w.Bit(11),
			M: w.Bit(12),
		},
		Jump: codeToJump[u&0b111],
	}, nil
}

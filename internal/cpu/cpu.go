// Package cpu implements the Hack computer's fetch/decode/execute loop: a
// register machine with A, D and a program counter, 32,768 words of memory,
// and a loaded, read-only Program it steps through until the counter runs
// past the end.
package cpu

import (
	"context"
	"fmt"

	"hack.n2t.dev/internal/asm"
	"hack.n2t.dev/internal/hack"
	"hack.n2t.dev/internal/trace"
	"hack.n2t.dev/internal/word"
)

// MemorySize is the Hack architecture's total addressable word count.
const MemorySize = 1 << 15

// traceDepth bounds how many past steps IllegalInstruction carries for
// diagnosis; deep enough to show a short loop's tail without holding an
// unbounded run history.
const traceDepth = 8

// State reports what Step just did, for callers (principally cmd/hack's
// windowed runner) that want to redraw or poll the keyboard every cycle
// rather than only on halt.
type State uint8

const (
	Running State = iota
	Halted
)

// CPU holds the three Hack registers and the memory/program they operate
// over. A and D are Words so their arithmetic wraps exactly like the ALU's;
// PC is plain uint16, since it only ever indexes into Program and is never
// itself an ALU operand.
type CPU struct {
	A, D word.Word
	PC   uint16

	Memory  [MemorySize]word.Word
	program asm.Program

	trace *trace.Ring
}

// New returns a zero-initialized CPU with program loaded: register and
// memory state starts zero throughout, Program is read-only thereafter.
func New(program asm.Program) *CPU {
	return &CPU{program: program, trace: trace.NewRing(traceDepth)}
}

// IllegalInstruction is returned by Step when the word at PC fails to
// decode; it carries the last few executed steps for diagnosis.
type IllegalInstruction struct {
	PC    uint16
	Word  word.Word
	Cause error
	Trace []trace.Step
}

func (e *IllegalInstruction) Error() string {
	return fmt.Sprintf("cpu: illegal instruction at pc=%d (word %s): %v", e.PC, e.Word, e.Cause)
}

func (e *IllegalInstruction) Unwrap() error { return e.Cause }

// Step runs one fetch/decode/execute cycle:
//  1. PC, as an unsigned index, at or past the program length halts.
//  2. Decode the word at PC; a decode failure aborts with IllegalInstruction.
//  3. An A-instruction loads A and advances PC by one.
//  4. A C-instruction computes its value from D and either A or M (as they
//     stood before this step's writeback), writes it back to A, then D, then
//     M in that order — so an `AM=...` destination writes memory at the new
//     A, not the old one — then either jumps to the (possibly just-written)
//     A or advances PC by one.
func (c *CPU) Step() (State, error) {
	if int(c.PC) >= len(c.program) {
		return Halted, nil
	}

	w := c.program[c.PC]
	inst, err := hack.Decode(w)
	if err != nil {
		return Running, &IllegalInstruction{PC: c.PC, Word: w, Cause: err, Trace: c.trace.Steps()}
	}
	c.trace.Push(trace.Step{PC: c.PC, Word: uint16(w)})

	if inst.IsAddress {
		c.A = word.Word(int16(inst.Address))
		c.PC++
		return Running, nil
	}

	operand := c.A
	if inst.UseMemoryOperand {
		operand = c.Memory[c.A.ToIndex()]
	}
	value := compute(inst.Op, c.D, operand)

	if inst.Dest.A {
		c.A = value
	}
	if inst.Dest.D {
		c.D = value
	}
	if inst.Dest.M {
		c.Memory[c.A.ToIndex()] = value
	}

	if inst.Jump.ShouldJump(value) {
		c.PC = c.A.ToIndex()
	} else {
		c.PC++
	}

	return Running, nil
}

// compute applies a ComputeOp to the D register and the already-resolved
// operand (either A or M, per UseMemoryOperand).
func compute(op hack.ComputeOp, d, a word.Word) word.Word {
	switch op {
	case hack.Zero:
		return word.Zero
	case hack.One:
		return word.One
	case hack.MinusOne:
		return word.MinusOne
	case hack.D:
		return d
	case hack.A:
		return a
	case hack.NotD:
		return d.Not()
	case hack.NotA:
		return a.Not()
	case hack.MinusD:
		return d.Neg()
	case hack.MinusA:
		return a.Neg()
	case hack.DPlus1:
		return d.Add(word.One)
	case hack.APlus1:
		return a.Add(word.One)
	case hack.DMinus1:
		return d.Sub(word.One)
	case hack.AMinus1:
		return a.Sub(word.One)
	case hack.DPlusA:
		return d.Add(a)
	case hack.DMinusA:
		return d.Sub(a)
	case hack.AMinusD:
		return a.Sub(d)
	case hack.DAndA:
		return d.And(a)
	case hack.DOrA:
		return d.Or(a)
	default:
		return word.Zero
	}
}

// Run steps the CPU to completion, stopping early if ctx is cancelled, so a
// caller can bound a program that deliberately loops forever. With a context
// that is never cancelled, such a program keeps Run stepping indefinitely.
func Run(ctx context.Context, c *CPU) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		state, err := c.Step()
		if err != nil {
			return err
		}
		if state == Halted {
			return nil
		}
	}
}

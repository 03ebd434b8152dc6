package hack_test

import (
	"testing"

	"hack.n2t.dev/internal/hack"
	"hack.n2t.dev/internal/word"
)

func TestAddressEncoding(t *testing.T) {
	tests := []struct {
		n    uint16
		want word.Word
	}{
		{2, word.Word(0b0000000000000010)},
		{16, word.Word(0b0000000000010000)},
		{hack.MaxAddress, word.Word(0b0111111111111111)},
	}

	for _, tt := range tests {
		inst, err := hack.NewAddress(tt.n)
		if err != nil {
			t.Fatalf("NewAddress(%d): %v", tt.n, err)
		}
		if got := hack.Encode(inst); got != tt.want {
			t.Fatalf("Encode(Address(%d)) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestAddressOutOfRangeRejected(t *testing.T) {
	if _, err := hack.NewAddress(hack.MaxAddress + 1); err == nil {
		t.Fatal("expected @32768 to be rejected")
	}
}

func TestComputeEncoding(t *testing.T) {
	// C{op=ONE, use_memory=true, dest={A,D,M}, jump=ALWAYS} -> all ones.
	allOnes := hack.Instruction{
		Op: hack.One, UseMemoryOperand: true,
		Dest: hack.Dest{A: true, D: true, M: true}, Jump: hack.JMP,
	}
	if got := hack.Encode(allOnes); got.String() != "1111111111111111" {
		t.Fatalf("Encode(allOnes) = %v, want all-ones word", got)
	}

	// C{op=D_AND_A, use_memory=false, dest={}, jump=NONE} -> 111 opcode, zero
	// comp/dest/jump bits.
	bare := hack.Instruction{Op: hack.DAndA, Jump: hack.JumpNone}
	if got := hack.Encode(bare); got.String() != "1110000000000000" {
		t.Fatalf("Encode(bare DAndA) = %v, want 1110000000000000", got)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		bits string
		want hack.Instruction
	}{
		{
			"1111111111111111",
			hack.Instruction{
				UseMemoryOperand: true, Op: hack.One,
				Dest: hack.Dest{A: true, D: true, M: true}, Jump: hack.JMP,
			},
		},
		{
			"1110000000000000",
			hack.Instruction{Op: hack.DAndA, Jump: hack.JumpNone},
		},
		{
			"1111000000000000",
			hack.Instruction{UseMemoryOperand: true, Op: hack.DAndA, Jump: hack.JumpNone},
		},
		{
			"1110110001000000",
			hack.Instruction{Op: hack.NotA, Jump: hack.JumpNone},
		},
		{
			"1110000000100000",
			hack.Instruction{Op: hack.DAndA, Dest: hack.Dest{A: true}, Jump: hack.JumpNone},
		},
		{
			"1110000000010000",
			hack.Instruction{Op: hack.DAndA, Dest: hack.Dest{D: true}, Jump: hack.JumpNone},
		},
		{
			"1110000000001000",
			hack.Instruction{Op: hack.DAndA, Dest: hack.Dest{M: true}, Jump: hack.JumpNone},
		},
		{
			"1110000000000100",
			hack.Instruction{Op: hack.DAndA, Jump: hack.JLT},
		},
		{
			"1110000000000010",
			hack.Instruction{Op: hack.DAndA, Jump: hack.JEQ},
		},
		{
			"1110000000000001",
			hack.Instruction{Op: hack.DAndA, Jump: hack.JGT},
		},
	}

	for _, tt := range tests {
		t.Run(tt.bits, func(t *testing.T) {
			w, err := word.ParseBits(tt.bits)
			if err != nil {
				t.Fatalf("ParseBits: %v", err)
			}

			got, err := hack.Decode(w)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Decode(%s) = %+v, want %+v", tt.bits, got, tt.want)
			}

			back := hack.Encode(got)
			if back != w {
				t.Fatalf("Encode(Decode(%s)) = %s, want %s", tt.bits, back, w)
			}
		})
	}
}

func TestDecodeRejectsUnknownOp(t *testing.T) {
	// comp bits 0b011000 is not in the table.
	w, _ := word.ParseBits("1110011000000000")
	if _, err := hack.Decode(w); err == nil {
		t.Fatal("expected unrecognised comp bits to fail decoding")
	}
}

func TestJumpShouldJump(t *testing.T) {
	tests := []struct {
		j    hack.Jump
		v    word.Word
		want bool
	}{
		{hack.JGT, 1, true}, {hack.JGT, 0, false}, {hack.JGT, -1, false},
		{hack.JEQ, 0, true}, {hack.JEQ, 1, false},
		{hack.JGE, 0, true}, {hack.JGE, -1, false},
		{hack.JLT, -1, true}, {hack.JLT, 0, false},
		{hack.JNE, 1, true}, {hack.JNE, 0, false},
		{hack.JLE, 0, true}, {hack.JLE, 1, false},
		{hack.JMP, 0, true}, {hack.JMP, -32768, true},
		{hack.JumpNone, 1, false},
	}

	for _, tt := range tests {
		if got := tt.j.ShouldJump(tt.v); got != tt.want {
			t.Fatalf("ShouldJump(%v, %v) = %v, want %v", tt.j, tt.v, got, tt.want)
		}
	}
}

package cpu_test

import (
	"context"
	"testing"

	"hack.n2t.dev/internal/asm"
	"hack.n2t.dev/internal/cpu"
	"hack.n2t.dev/internal/word"
)

func assembleOrFatal(t *testing.T, source []string) asm.Program {
	t.Helper()
	program, _, err := asm.NewAssembler().Assemble(source, false)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return program
}

func TestAddProgram(t *testing.T) {
	program := assembleOrFatal(t, []string{
		"@2", "D=A", "@3", "D=D+A", "@0", "M=D",
	})

	c := cpu.New(program)
	if err := cpu.Run(context.Background(), c); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if c.Memory[0] != word.Word(5) {
		t.Fatalf("memory[0] = %d, want 5", c.Memory[0])
	}
	if c.A != word.Word(0) {
		t.Fatalf("A = %d, want 0", c.A)
	}
	if c.D != word.Word(5) {
		t.Fatalf("D = %d, want 5", c.D)
	}
	if int(c.PC) != len(program) {
		t.Fatalf("PC = %d, want %d (past end)", c.PC, len(program))
	}
}

var maxSource = []string{
	"@R0",
	"D=M",
	"@R1",
	"D=D-M",
	"@OUTPUT_FIRST",
	"D;JGT",
	"@R1",
	"D=M",
	"@OUTPUT_D",
	"0;JMP",
	"(OUTPUT_FIRST)",
	"@R0",
	"D=M",
	"(OUTPUT_D)",
	"@R2",
	"M=D",
	"(INFINITE_LOOP)",
	"@INFINITE_LOOP",
	"0;JMP",
}

func TestMaxProgram(t *testing.T) {
	program := assembleOrFatal(t, maxSource)

	tests := []struct{ r0, r1, want word.Word }{
		{5, 4, 5},
		{4, 5, 5},
	}

	for _, tt := range tests {
		c := cpu.New(program)
		c.Memory[0] = tt.r0
		c.Memory[1] = tt.r1

		// Max.asm spins forever on INFINITE_LOOP, so step a generous bound
		// instead of running to a halt that never comes.
		for i := 0; i < 1000; i++ {
			if _, err := c.Step(); err != nil {
				t.Fatalf("Step: %v", err)
			}
		}

		if c.Memory[2] != tt.want {
			t.Fatalf("Max(%d,%d): memory[2] = %d, want %d", tt.r0, tt.r1, c.Memory[2], tt.want)
		}
	}
}

var multSource = []string{
	"@R2",
	"M=0",
	"(LOOP)",
	"@R0",
	"D=M",
	"@END",
	"D;JEQ",
	"@R1",
	"D=M",
	"@R2",
	"M=D+M",
	"@R0",
	"M=M-1",
	"@LOOP",
	"0;JMP",
	"(END)",
	"@END",
	"0;JMP",
}

func TestMultiplyProgram(t *testing.T) {
	program := assembleOrFatal(t, multSource)

	pairs := [][2]word.Word{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {0, 2}, {2, 0}}
	for _, pair := range pairs {
		c := cpu.New(program)
		c.Memory[0], c.Memory[1] = pair[0], pair[1]

		for i := 0; i < 10000; i++ {
			state, err := c.Step()
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if state == cpu.Halted {
				break
			}
		}

		want := pair[0] * pair[1]
		if c.Memory[2] != want {
			t.Fatalf("Multiply(%d,%d): memory[2] = %d, want %d", pair[0], pair[1], c.Memory[2], want)
		}
	}
}

func TestSum1To100(t *testing.T) {
	program := assembleOrFatal(t, []string{
		"@i", "M=1", "@sum", "M=0", "(LOOP)",
		"@i", "D=M", "@100", "D=D-A", "@END", "D;JGT",
		"@i", "D=M", "@sum", "M=D+M", "@i", "M=M+1",
		"@LOOP", "0;JMP", "(END)", "@END", "0;JMP",
	})
	if len(program) != 20 {
		t.Fatalf("len(program) = %d, want 20", len(program))
	}

	c := cpu.New(program)
	for i := 0; i < 10000; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if int(c.PC) == 19 { // the (END) infinite-loop body, reached once summing is done
			break
		}
	}

	if c.Memory[17] != word.Word(5050) { // sum allocated second, at address 17
		t.Fatalf("sum = %d, want 5050", c.Memory[17])
	}
}

func TestWritebackOrderAMWritesNewA(t *testing.T) {
	// @5 / D=A / @10 / AM=D+1: A should become 6 (D+1=5+1), and the write to
	// M must land at the *new* A (index 6), not the old one (10).
	program := assembleOrFatal(t, []string{
		"@5", "D=A", "@10", "AM=D+1",
	})
	c := cpu.New(program)
	if err := cpu.Run(context.Background(), c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.A != word.Word(6) {
		t.Fatalf("A = %d, want 6", c.A)
	}
	if c.Memory[6] != word.Word(6) {
		t.Fatalf("memory[6] = %d, want 6 (written at new A)", c.Memory[6])
	}
	if c.Memory[10] != word.Word(0) {
		t.Fatalf("memory[10] = %d, want untouched (0)", c.Memory[10])
	}
}

func TestZeroJMPAlwaysJumps(t *testing.T) {
	// 0;JMP at address 0 should jump back to itself forever; after a bounded
	// number of steps PC must still be 0 and no IllegalInstruction raised.
	program := assembleOrFatal(t, []string{"0;JMP"})
	c := cpu.New(program)
	for i := 0; i < 100; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if c.PC != 0 {
		t.Fatalf("PC = %d, want 0 (spinning)", c.PC)
	}
}

func TestPastEndHaltsCleanly(t *testing.T) {
	program := assembleOrFatal(t, []string{"@1", "D=A"})
	c := cpu.New(program)
	for i := 0; i < len(program); i++ {
		state, err := c.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if state != cpu.Running {
			t.Fatalf("Step(%d) = %v, want Running", i, state)
		}
	}
	state, err := c.Step()
	if err != nil {
		t.Fatalf("Step past end: %v", err)
	}
	if state != cpu.Halted {
		t.Fatalf("Step past end = %v, want Halted", state)
	}
}

func TestMAt0x4000(t *testing.T) {
	program := assembleOrFatal(t, []string{"@SCREEN", "M=M+1"})
	c := cpu.New(program)
	if err := cpu.Run(context.Background(), c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Memory[16384] != word.Word(1) {
		t.Fatalf("memory[SCREEN] = %d, want 1", c.Memory[16384])
	}
}

package main

import (
	"fmt"
	"strings"

	"hack.n2t.dev/internal/asm"
	"hack.n2t.dev/internal/word"
)

// decodeHackFile parses a compiled `.hack` file (one 16-character binary
// word per line, blank lines ignored) straight into a Program, skipping the
// assembler entirely.
func decodeHackFile(lines []string) (asm.Program, error) {
	program := make(asm.Program, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w, err := word.ParseBits(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		program = append(program, w)
	}
	return program, nil
}

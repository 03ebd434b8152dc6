package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"hack.n2t.dev/internal/asm"
	"hack.n2t.dev/internal/cpu"
)

var Description = strings.ReplaceAll(`
The Hack computer emulator loads a compiled Hack program (.hack) or an
assembly source file (.asm, assembled on the fly) and steps a CPU against it,
either in a window showing the memory-mapped screen or, with --quiet,
headless to completion.
`, "\n", " ")

var App = cli.New(Description).
	WithArg(cli.NewArg("path", "The program to run (.asm or .hack)")).
	WithOption(cli.NewOption("quiet", "run headless to completion, no window").WithChar('q').WithType(cli.TypeBool)).
	WithOption(cli.NewOption("debug", "print the debug map alongside assembly").WithChar('d').WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	path := args[0]
	_, debug := options["debug"]
	_, quiet := options["quiet"]

	program, err := loadProgram(path, debug)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}

	machine := cpu.New(program)

	if quiet {
		if err := cpu.Run(context.Background(), machine); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			return -1
		}
		fmt.Printf("halted: A=%s D=%s PC=%d\n", machine.A, machine.D, machine.PC)
		return 0
	}

	runWindowed(machine)
	return 0
}

func loadProgram(path string, debug bool) (asm.Program, error) {
	if strings.HasSuffix(path, ".asm") {
		source, err := readLines(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read %q: %w", path, err)
		}
		program, dm, err := asm.NewAssembler().Assemble(source, debug)
		if err != nil {
			return nil, fmt.Errorf("unable to assemble %q: %w", path, err)
		}
		if debug {
			printDebugMap(program, dm)
		}
		return program, nil
	}

	lines, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", path, err)
	}
	return decodeHackFile(lines)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func printDebugMap(program asm.Program, dm *asm.DebugMap) {
	for i := range program {
		site, ok := dm.Site(i)
		if !ok {
			continue
		}
		fmt.Printf("word %4d <- line %4d: %s\n", i, site.SourceLine, site.SourceText)
	}
}

func main() { os.Exit(App.Run(os.Args, os.Stdout)) }

package asm

import (
	"strconv"
	"strings"

	pc "github.com/prataprc/goparsec"

	"hack.n2t.dev/internal/hack"
)

// ----------------------------------------------------------------------------
// Parser Combinator(s)
//
// The per-line grammar below reuses goparsec building blocks
// (pc.Atom / pc.Token / ast.OrdChoice) for the closed-vocabulary pieces of a
// line: the COMP and JUMP mnemonics. DEST and the overall line shape are
// handled with plain string operations instead: an explicit
// split-on-first-'='-and-first-';' procedure, which doesn't map onto a
// single OrdChoice the way a fixed mnemonic table does.

var lineAST = pc.NewAST("asm-line", 0)

// pLabel matches a label/variable identifier: a leading letter or one of
// _.$: followed by any number of alphanumerics or _.$:.
var pLabel = pc.Token(`[A-Za-z_.$:][0-9a-zA-Z_.$:]*`, "SYMBOL")

// pComp matches one of the 28 COMP mnemonics (18 ComputeOps x operand
// source). Order matters: goparsec's OrdChoice is first-match, so the
// multi-character register/bitwise forms must be tried before the bare
// single-letter forms they'd otherwise be a prefix of — the same ordering
// constraint any comp-mnemonic grammar has to respect.
var pComp = lineAST.OrdChoice("comp", nil,
	pc.Atom("D&A", "D&A"), pc.Atom("D&M", "D&M"),
	pc.Atom("D|A", "D|A"), pc.Atom("D|M", "D|M"),
	pc.Atom("D+A", "D+A"), pc.Atom("D+M", "D+M"),
	pc.Atom("D-A", "D-A"), pc.Atom("D-M", "D-M"),
	pc.Atom("A-D", "A-D"), pc.Atom("M-D", "M-D"),
	pc.Atom("D+1", "D+1"), pc.Atom("A+1", "A+1"), pc.Atom("M+1", "M+1"),
	pc.Atom("D-1", "D-1"), pc.Atom("A-1", "A-1"), pc.Atom("M-1", "M-1"),
	pc.Atom("!D", "!D"), pc.Atom("!A", "!A"), pc.Atom("!M", "!M"),
	pc.Atom("-D", "-D"), pc.Atom("-A", "-A"), pc.Atom("-M", "-M"),
	pc.Atom("0", "0"), pc.Atom("1", "1"), pc.Atom("-1", "-1"),
	pc.Atom("D", "D"), pc.Atom("A", "A"), pc.Atom("M", "M"),
)

// pJump matches one of the seven jump mnemonics; an absent jump is JumpNone.
var pJump = lineAST.OrdChoice("jump", nil,
	pc.Atom("JNE", "JNE"), pc.Atom("JEQ", "JEQ"),
	pc.Atom("JGT", "JGT"), pc.Atom("JGE", "JGE"),
	pc.Atom("JLT", "JLT"), pc.Atom("JLE", "JLE"),
	pc.Atom("JMP", "JMP"),
)

// compTable translates a recognised COMP mnemonic to its ComputeOp and
// whether it dereferences memory (the M-forms), keeping the split between
// a recognising grammar (pComp) and a
// separate translation table keyed by the mnemonic string and carrying the
// ComputeOp/use-memory pair directly.
var compTable = map[string]struct {
	op        hack.ComputeOp
	useMemory bool
}{
	"0": {hack.Zero, false}, "1": {hack.One, false}, "-1": {hack.MinusOne, false},
	"D": {hack.D, false}, "A": {hack.A, false}, "M": {hack.A, true},
	"!D": {hack.NotD, false}, "!A": {hack.NotA, false}, "!M": {hack.NotA, true},
	"-D": {hack.MinusD, false}, "-A": {hack.MinusA, false}, "-M": {hack.MinusA, true},
	"D+1": {hack.DPlus1, false}, "A+1": {hack.APlus1, false}, "M+1": {hack.APlus1, true},
	"D-1": {hack.DMinus1, false}, "A-1": {hack.AMinus1, false}, "M-1": {hack.AMinus1, true},
	"D+A": {hack.DPlusA, false}, "D+M": {hack.DPlusA, true},
	"D-A": {hack.DMinusA, false}, "D-M": {hack.DMinusA, true},
	"A-D": {hack.AMinusD, false}, "M-D": {hack.AMinusD, true},
	"D&A": {hack.DAndA, false}, "D&M": {hack.DAndA, true},
	"D|A": {hack.DOrA, false}, "D|M": {hack.DOrA, true},
}

var jumpTable = map[string]hack.Jump{
	"JGT": hack.JGT, "JEQ": hack.JEQ, "JGE": hack.JGE, "JLT": hack.JLT,
	"JNE": hack.JNE, "JLE": hack.JLE, "JMP": hack.JMP,
}

// matchWhole runs parser p against s and requires it to consume all of s;
// it returns the matched token's text and whether the match succeeded.
func matchWhole(p pc.Parser, s string) (string, bool) {
	node, _ := p(pc.NewScanner([]byte(s)))
	if node == nil {
		return "", false
	}
	queryable, ok := node.(pc.Queryable)
	if !ok {
		return "", false
	}
	if value := queryable.GetValue(); value == s {
		return value, true
	}
	return "", false
}

// ParseLine parses a single line of `.asm` source.
func ParseLine(line int, text string) (AssemblyLine, error) {
	code, comment := splitComment(text)
	code = strings.TrimSpace(code)

	if code == "" {
		return AssemblyLine{Kind: LineBlank, Comment: comment}, nil
	}

	if strings.HasPrefix(code, "@") {
		return parseLoadAddress(line, text, code, comment)
	}

	if strings.HasPrefix(code, "(") {
		return parseLabel(line, text, code, comment)
	}

	return parseCompute(line, text, code, comment)
}

func splitComment(text string) (code, comment string) {
	if idx := strings.Index(text, "//"); idx >= 0 {
		return text[:idx], strings.TrimSpace(text[idx+2:])
	}
	return text, ""
}

func parseLoadAddress(line int, text, code, comment string) (AssemblyLine, error) {
	operand := strings.TrimSpace(strings.TrimPrefix(code, "@"))

	if n, err := strconv.ParseUint(operand, 10, 32); err == nil {
		if n > hack.MaxAddress {
			return AssemblyLine{}, &ParseError{Kind: ConstantOutOfRange, Line: line, Token: operand, Text: text}
		}
		return AssemblyLine{
			Kind:     LineLoadAddress,
			Location: MemoryLocation{Kind: Numeric, Value: uint16(n)},
			Comment:  comment,
		}, nil
	}

	if _, ok := matchWhole(pLabel, operand); !ok {
		return AssemblyLine{}, &ParseError{Kind: MalformedLine, Line: line, Text: text}
	}

	return AssemblyLine{
		Kind:     LineLoadAddress,
		Location: MemoryLocation{Kind: Symbol, Name: operand},
		Comment:  comment,
	}, nil
}

func parseLabel(line int, text, code, comment string) (AssemblyLine, error) {
	if !strings.HasSuffix(code, ")") {
		return AssemblyLine{}, &ParseError{Kind: MalformedLine, Line: line, Text: text}
	}
	name := strings.TrimSpace(code[1 : len(code)-1])
	if _, ok := matchWhole(pLabel, name); !ok {
		return AssemblyLine{}, &ParseError{Kind: MalformedLine, Line: line, Text: text}
	}
	return AssemblyLine{Kind: LineLabel, Label: name, Comment: comment}, nil
}

func parseCompute(line int, text, code, comment string) (AssemblyLine, error) {
	eq := strings.IndexByte(code, '=')
	semi := strings.IndexByte(code, ';')

	var destStr, compStr, jumpStr string
	hasJump := false

	switch {
	case eq < 0 && semi < 0:
		compStr = code
	case eq < 0:
		compStr, jumpStr, hasJump = code[:semi], code[semi+1:], true
	case semi < 0:
		destStr, compStr = code[:eq], code[eq+1:]
	default:
		destStr, compStr, jumpStr = code[:eq], code[eq+1:semi], code[semi+1:]
		hasJump = true
	}

	dest, err := parseDest(line, text, destStr)
	if err != nil {
		return AssemblyLine{}, err
	}

	compStr = strings.TrimSpace(compStr)
	matchedComp, ok := matchWhole(pComp, compStr)
	if !ok {
		return AssemblyLine{}, &ParseError{Kind: UnknownComputation, Line: line, Token: compStr, Text: text}
	}
	entry := compTable[matchedComp]

	jump := hack.JumpNone
	if hasJump {
		jumpStr = strings.TrimSpace(jumpStr)
		matchedJump, ok := matchWhole(pJump, jumpStr)
		if !ok {
			return AssemblyLine{}, &ParseError{Kind: UnknownJump, Line: line, Token: jumpStr, Text: text}
		}
		jump = jumpTable[matchedJump]
	}

	return AssemblyLine{
		Kind:             LineCompute,
		Op:               entry.op,
		UseMemoryOperand: entry.useMemory,
		Dest:             dest,
		Jump:             jump,
		Comment:          comment,
	}, nil
}

// parseDest reads DEST as an unordered subset of {A, D, M}; duplicate
// characters are idempotent, anything else fails.
func parseDest(line int, text, destStr string) (hack.Dest, error) {
	var dest hack.Dest
	for _, c := range destStr {
		switch c {
		case 'A':
			dest.A = true
		case 'D':
			dest.D = true
		case 'M':
			dest.M = true
		default:
			return hack.Dest{}, &ParseError{Kind: UnknownDestination, Line: line, Token: string(c), Text: text}
		}
	}
	return dest, nil
}

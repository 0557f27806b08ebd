// Package parser maps Sui token lines to Instruction records and
// collects function bodies, per spec section 4.2.
package parser

import (
	"strconv"
	"strings"

	"github.com/suilang/sui/internal/lexer"
)

// Program is the result of a successful Parse: the top-level
// instruction sequence plus the function table collected along the
// way.
type Program struct {
	Instructions []Instruction
	Functions    map[int64]*Function
}

// Parse runs the two-pass structure of spec section 4.2 over source
// text: a linear walk that, on encountering a "#<id><argc>{" header,
// switches into body-collection mode until the matching "}" closes it.
func Parse(source string) (*Program, error) {
	lines := lexer.Parse(source)
	prog := &Program{Functions: make(map[int64]*Function)}

	i := 0
	for i < len(lines) {
		tl := lines[i]
		instr, err := ParseLine(tl.Tokens, tl.Num)
		if err != nil {
			return nil, err
		}

		if instr.Op == OpFuncDef {
			body, next, err := collectBody(lines, i+1)
			if err != nil {
				return nil, err
			}
			prog.Functions[instr.FuncID] = &Function{ID: instr.FuncID, Argc: instr.Argc, Body: body}
			i = next
			continue
		}

		if instr.Op == OpFuncEnd {
			// Standalone '}' outside a function body: skip.
			i++
			continue
		}

		prog.Instructions = append(prog.Instructions, instr)
		i++
	}

	return prog, nil
}

// collectBody gathers instructions from lines[start:] into a function
// body until its closing brace, honoring nested #...{ headers. It
// returns the body, and the index of the line following the closing
// brace.
func collectBody(lines []lexer.TokenLine, start int) ([]Instruction, int, error) {
	var body []Instruction
	depth := 1
	i := start
	lastLine := 0
	if start > 0 {
		lastLine = lines[start-1].Num
	}

	for i < len(lines) && depth > 0 {
		tl := lines[i]
		lastLine = tl.Num
		instr, err := ParseLine(tl.Tokens, tl.Num)
		if err != nil {
			return nil, 0, err
		}

		switch instr.Op {
		case OpFuncDef:
			depth++
			body = append(body, instr)
		case OpFuncEnd:
			depth--
			if depth > 0 {
				body = append(body, instr)
			}
		default:
			body = append(body, instr)
		}
		i++
	}

	if depth != 0 {
		return nil, 0, newError(lastLine, ErrorUnmatchedBrace, "function body not terminated")
	}

	return body, i, nil
}

// Validate runs ParseLine over every token line independently, without
// tracking block structure, and returns every error encountered. It is
// the line-local counterpart to Parse's fatal two-pass structure.
func Validate(source string) *ErrorList {
	lines := lexer.Parse(source)
	el := &ErrorList{}
	for _, tl := range lines {
		if _, err := ParseLine(tl.Tokens, tl.Num); err != nil {
			if pe, ok := err.(*Error); ok {
				el.add(pe)
			}
		}
	}
	return el
}

func checkArgs(op string, args []string, min, line int) error {
	if len(args) < min {
		return newError(line, ErrorMissingArguments,
			"'%s' expects at least %d operand(s), got %d", op, min, len(args))
	}
	return nil
}

func parseLabel(tok string, line int) (int64, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, newError(line, ErrorGeneral, "invalid label: %s", tok)
	}
	return n, nil
}

// ParseLine maps one already-tokenized line to an Instruction. An empty
// token slice parses to a no-op.
func ParseLine(tokens []string, line int) (Instruction, error) {
	if len(tokens) == 0 {
		return Instruction{Op: OpNoop, Line: line}, nil
	}

	op := tokens[0]
	args := tokens[1:]

	switch op {
	case ";":
		return Instruction{Op: OpNoop, Line: line}, nil

	case "_":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpImport, Line: line, Path: strings.Trim(args[0], `"`)}, nil

	case "=":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpAssign, Line: line, Target: args[0], A: args[1]}, nil

	case "+", "-", "*", "/", "%", "<", ">", "~", "&", "|":
		if err := checkArgs(op, args, 3, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: Op(op[0]), Line: line, Target: args[0], A: args[1], B: args[2]}, nil

	case "!":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpNot, Line: line, Target: args[0], A: args[1]}, nil

	case "?":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		label, err := parseLabel(args[1], line)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpCondJump, Line: line, Cond: args[0], Label: label}, nil

	case "@":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		label, err := parseLabel(args[0], line)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpJump, Line: line, Label: label}, nil

	case ":":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		label, err := parseLabel(args[0], line)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpLabel, Line: line, Label: label}, nil

	case "#":
		if len(args) < 3 || args[len(args)-1] != "{" {
			return Instruction{}, newError(line, ErrorInvalidFunctionDef, "expected '# id argc {'")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Instruction{}, newError(line, ErrorGeneral, "invalid function id: %s", args[0])
		}
		argc, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return Instruction{}, newError(line, ErrorGeneral, "invalid argc: %s", args[1])
		}
		return Instruction{Op: OpFuncDef, Line: line, FuncID: id, Argc: argc}, nil

	case "}":
		return Instruction{Op: OpFuncEnd, Line: line}, nil

	case "$":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		funcID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return Instruction{}, newError(line, ErrorGeneral, "invalid function id: %s", args[1])
		}
		return Instruction{Op: OpCall, Line: line, Target: args[0], FuncID: funcID, Args: append([]string{}, args[2:]...)}, nil

	case "^":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpReturn, Line: line, A: args[0]}, nil

	case "[":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpArrayCreate, Line: line, Target: args[0], A: args[1]}, nil

	case "]":
		if err := checkArgs(op, args, 3, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpArrayRead, Line: line, Target: args[0], A: args[1], B: args[2]}, nil

	case "{":
		// Overloaded: 3+ operands is an array write; anything shorter
		// (including the bare '{' that closes a function header's
		// token sequence) is a no-op placeholder.
		if len(args) >= 3 {
			return Instruction{Op: OpArrayWrite, Line: line, Args: []string{args[0], args[1], args[2]}}, nil
		}
		return Instruction{Op: OpNoop, Line: line}, nil

	case ".":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpOutput, Line: line, A: args[0]}, nil

	case ",":
		if err := checkArgs(op, args, 1, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpInput, Line: line, Target: args[0]}, nil

	case "R", "P":
		if err := checkArgs(op, args, 2, line); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpFFI, Line: line, Target: args[0], A: args[1], Args: append([]string{}, args[2:]...)}, nil

	default:
		return Instruction{}, newError(line, ErrorInvalidInstruction, "unrecognized opcode '%s'", op)
	}
}

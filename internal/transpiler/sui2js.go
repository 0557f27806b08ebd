package transpiler

import (
	"fmt"
	"strings"

	"github.com/suilang/sui/internal/parser"
)

// Sui2Js lowers Sui instructions to JavaScript with the same
// `_state`-driven state machine Sui2Py uses for blocks containing
// labels.
type Sui2Js struct {
	indent int
	output []string
}

// NewSui2Js creates a transpiler ready for Transpile.
func NewSui2Js() *Sui2Js { return &Sui2Js{} }

func (t *Sui2Js) emit(line string) {
	t.output = append(t.output, strings.Repeat("  ", t.indent)+line)
}

// Transpile converts Sui source to a standalone JavaScript (Node.js)
// script.
func (t *Sui2Js) Transpile(code string) (string, error) {
	t.output = nil
	t.indent = 0

	prog, err := parser.Parse(code)
	if err != nil {
		return "", err
	}

	t.emit("// generated from Sui")
	t.emit("")
	t.emit("const _args = process.argv.slice(2);")
	t.emit("let g100 = _args.length;")
	t.emit("for (let _i = 0; _i < _args.length; _i++) {")
	t.indent++
	t.emit("const _val = parseInt(_args[_i], 10);")
	t.emit("globalThis[`g${101 + _i}`] = isNaN(_val) ? _args[_i] : _val;")
	t.indent--
	t.emit("}")
	t.emit("")
	t.emit("let v0, v1, v2, v3, v4, v5, v6, v7, v8, v9;")
	t.emit("let g0, g1, g2, g3, g4, g5, g6, g7, g8, g9;")
	t.emit("")

	funcIDs := make([]int64, 0, len(prog.Functions))
	for id := range prog.Functions {
		funcIDs = append(funcIDs, id)
	}
	sortInt64s(funcIDs)

	for _, id := range funcIDs {
		fn := prog.Functions[id]
		args := make([]string, fn.Argc)
		for i := range args {
			args[i] = fmt.Sprintf("a%d", i)
		}
		t.emit(fmt.Sprintf("function f%d(%s) {", fn.ID, strings.Join(args, ", ")))
		t.indent++
		t.emit("let v0, v1, v2, v3, v4, v5, v6, v7, v8, v9;")
		if len(fn.Body) > 0 {
			t.transpileBlock(fn.Body)
		}
		t.indent--
		t.emit("}")
		t.emit("")
	}

	t.emit("// main")
	if len(prog.Instructions) > 0 {
		t.transpileBlock(prog.Instructions)
	}

	return strings.Join(t.output, "\n"), nil
}

func (t *Sui2Js) transpileBlock(block []parser.Instruction) {
	labels := map[int64]bool{}
	for _, instr := range block {
		if instr.Op == parser.OpLabel {
			labels[instr.Label] = true
		}
	}

	if len(labels) == 0 {
		for _, instr := range block {
			if instr.Op != parser.OpFuncEnd {
				t.transpileInstr(instr, nil)
			}
		}
		return
	}

	stateMap := map[int64]int{-1: 0}
	next := 1
	for _, instr := range block {
		if _, seen := stateMap[instr.Label]; instr.Op == parser.OpLabel && !seen {
			stateMap[instr.Label] = next
			next++
		}
	}

	states := map[int][]parser.Instruction{0: {}}
	current := 0
	for _, instr := range block {
		switch instr.Op {
		case parser.OpLabel:
			current = stateMap[instr.Label]
			if _, ok := states[current]; !ok {
				states[current] = []parser.Instruction{}
			}
		case parser.OpFuncEnd:
		default:
			states[current] = append(states[current], instr)
		}
	}

	t.emit("let _state = -1;")
	t.emit("outer: while (true) {")
	t.indent++
	t.emit("_state += 1;")
	t.emit("switch (_state) {")

	stateIDs := make([]int, 0, len(states))
	for id := range states {
		stateIDs = append(stateIDs, id)
	}
	sortInts(stateIDs)

	for _, id := range stateIDs {
		t.emit(fmt.Sprintf("case %d: {", id))
		t.indent++

		lines := states[id]
		for _, instr := range lines {
			t.transpileInstr(instr, stateMap)
		}

		last := parser.Instruction{}
		if len(lines) > 0 {
			last = lines[len(lines)-1]
		}
		needsTransition := len(lines) == 0 || (last.Op != parser.OpJump && last.Op != parser.OpReturn)
		if needsTransition {
			if _, ok := states[id+1]; ok {
				t.emit(fmt.Sprintf("_state = %d - 1;", id+1))
				t.emit("continue outer;")
			} else {
				t.emit("break outer;")
			}
		}
		t.indent--
		t.emit("}")
	}

	t.emit("}")
	t.indent--
	t.emit("}")
}

func (t *Sui2Js) transpileInstr(instr parser.Instruction, stateMap map[int64]int) {
	switch instr.Op {
	case parser.OpNoop, parser.OpLabel, parser.OpImport, parser.OpFuncDef, parser.OpFuncEnd:

	case parser.OpAssign:
		t.emit(fmt.Sprintf("%s = %s;", instr.Target, instr.A))
	case parser.OpAdd:
		t.emit(fmt.Sprintf("%s = %s + %s;", instr.Target, instr.A, instr.B))
	case parser.OpSub:
		t.emit(fmt.Sprintf("%s = %s - %s;", instr.Target, instr.A, instr.B))
	case parser.OpMul:
		t.emit(fmt.Sprintf("%s = %s * %s;", instr.Target, instr.A, instr.B))
	case parser.OpDiv:
		t.emit(fmt.Sprintf("%s = %s / %s;", instr.Target, instr.A, instr.B))
	case parser.OpMod:
		t.emit(fmt.Sprintf("%s = %s %% %s;", instr.Target, instr.A, instr.B))
	case parser.OpLt:
		t.emit(fmt.Sprintf("%s = (%s < %s) ? 1 : 0;", instr.Target, instr.A, instr.B))
	case parser.OpGt:
		t.emit(fmt.Sprintf("%s = (%s > %s) ? 1 : 0;", instr.Target, instr.A, instr.B))
	case parser.OpEq:
		t.emit(fmt.Sprintf("%s = (%s === %s) ? 1 : 0;", instr.Target, instr.A, instr.B))
	case parser.OpNot:
		t.emit(fmt.Sprintf("%s = %s ? 0 : 1;", instr.Target, instr.A))
	case parser.OpAnd:
		t.emit(fmt.Sprintf("%s = (%s && %s) ? 1 : 0;", instr.Target, instr.A, instr.B))
	case parser.OpOr:
		t.emit(fmt.Sprintf("%s = (%s || %s) ? 1 : 0;", instr.Target, instr.A, instr.B))

	case parser.OpCondJump:
		if state, ok := stateMap[instr.Label]; ok {
			t.emit(fmt.Sprintf("if (%s) {", instr.Cond))
			t.indent++
			t.emit(fmt.Sprintf("_state = %d - 1;", state))
			t.emit("continue outer;")
			t.indent--
			t.emit("}")
		}
	case parser.OpJump:
		if state, ok := stateMap[instr.Label]; ok {
			t.emit(fmt.Sprintf("_state = %d - 1;", state))
			t.emit("continue outer;")
		}

	case parser.OpCall:
		t.emit(fmt.Sprintf("%s = f%d(%s);", instr.Target, instr.FuncID, strings.Join(instr.Args, ", ")))
	case parser.OpReturn:
		t.emit(fmt.Sprintf("return %s;", instr.A))

	case parser.OpArrayCreate:
		t.emit(fmt.Sprintf("%s = new Array(%s).fill(0);", instr.Target, instr.A))
	case parser.OpArrayRead:
		t.emit(fmt.Sprintf("%s = %s[Math.floor(%s)];", instr.Target, instr.A, instr.B))
	case parser.OpArrayWrite:
		t.emit(fmt.Sprintf("%s[Math.floor(%s)] = %s;", instr.Args[0], instr.Args[1], instr.Args[2]))

	case parser.OpOutput:
		t.emit(fmt.Sprintf("console.log(%s);", instr.A))
	case parser.OpInput:
		t.emit(fmt.Sprintf("%s = parseInt(require('readline-sync').question('> '), 10) || 0;", instr.Target))

	case parser.OpFFI:
		t.emit(fmt.Sprintf("%s = %s;", instr.Target, jsFFICall(instr.A, instr.Args)))
	}
}

// jsFFICall maps Sui's builtin names, by their last dot-segment, to
// their JavaScript equivalents on the Math global and the handful of
// runtime helpers Node exposes by default.
func jsFFICall(funcTok string, args []string) string {
	argsStr := strings.Join(args, ", ")
	funcClean := strings.Trim(funcTok, `"`)
	last := funcClean
	if dot := strings.LastIndex(funcClean, "."); dot >= 0 {
		last = funcClean[dot+1:]
	}

	switch last {
	case "sqrt", "sin", "cos", "tan", "floor", "ceil", "round", "abs", "log", "exp":
		return fmt.Sprintf("Math.%s(%s)", last, argsStr)
	case "log10":
		return fmt.Sprintf("Math.log10(%s)", argsStr)
	case "pow":
		return fmt.Sprintf("Math.pow(%s)", argsStr)
	case "max":
		return fmt.Sprintf("Math.max(%s)", argsStr)
	case "min":
		return fmt.Sprintf("Math.min(%s)", argsStr)
	case "len":
		if len(args) > 0 {
			return fmt.Sprintf("%s.length", args[0])
		}
		return "0"
	case "int":
		return fmt.Sprintf("parseInt(%s, 10)", argsStr)
	case "float":
		return fmt.Sprintf("parseFloat(%s)", argsStr)
	case "str":
		return fmt.Sprintf("String(%s)", argsStr)
	case "randint":
		if len(args) >= 2 {
			a, b := args[0], args[1]
			return fmt.Sprintf("Math.floor(Math.random() * (%s - %s + 1)) + %s", b, a, a)
		}
		return "0"
	default:
		return fmt.Sprintf("%s(%s)", funcClean, argsStr)
	}
}

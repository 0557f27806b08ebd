package transpiler

import (
	"fmt"
	"strings"

	"github.com/suilang/sui/internal/parser"
)

// Sui2Py lowers Sui instructions to Python, using a `_state`-driven
// while/if state machine whenever the block contains labels, since Sui
// labels can jump anywhere and Python has no goto.
type Sui2Py struct {
	indent int
	output []string
}

// NewSui2Py creates a transpiler ready for Transpile.
func NewSui2Py() *Sui2Py { return &Sui2Py{} }

func (t *Sui2Py) emit(line string) {
	t.output = append(t.output, strings.Repeat("    ", t.indent)+line)
}

// Transpile converts Sui source to a standalone Python 3 script.
func (t *Sui2Py) Transpile(code string) (string, error) {
	t.output = nil
	t.indent = 0

	prog, err := parser.Parse(code)
	if err != nil {
		return "", err
	}

	t.emit("#!/usr/bin/env python3")
	t.emit("# generated from Sui")
	t.emit("")

	t.emit("import sys")
	t.emit("g100 = len(sys.argv) - 1")
	t.emit("for _i, _arg in enumerate(sys.argv[1:]):")
	t.indent++
	t.emit("try:")
	t.indent++
	t.emit("globals()[f'g{101 + _i}'] = int(_arg)")
	t.indent--
	t.emit("except ValueError:")
	t.indent++
	t.emit("globals()[f'g{101 + _i}'] = _arg")
	t.indent--
	t.indent--
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
		t.emit(fmt.Sprintf("def f%d(%s):", fn.ID, strings.Join(args, ", ")))
		t.indent++
		if len(fn.Body) == 0 {
			t.emit("pass")
		} else {
			t.transpileBlock(fn.Body)
		}
		t.indent--
		t.emit("")
	}

	t.emit("# main")
	if len(prog.Instructions) == 0 {
		t.emit("pass")
	} else {
		t.transpileBlock(prog.Instructions)
	}

	return strings.Join(t.output, "\n"), nil
}

// transpileBlock emits either a direct translation (when the block has
// no labels) or a _state machine (when it does, since a jump may
// target any point in the block).
func (t *Sui2Py) transpileBlock(block []parser.Instruction) {
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

	t.emit("_state = -1")
	t.emit("while True:")
	t.indent++
	t.emit("_state += 1")

	stateIDs := make([]int, 0, len(states))
	for id := range states {
		stateIDs = append(stateIDs, id)
	}
	sortInts(stateIDs)

	for _, id := range stateIDs {
		t.emit(fmt.Sprintf("if _state == %d:", id))
		t.indent++

		lines := states[id]
		if len(lines) == 0 {
			t.emit("pass")
		} else {
			for _, instr := range lines {
				t.transpileInstr(instr, stateMap)
			}
		}

		last := parser.Instruction{}
		if len(lines) > 0 {
			last = lines[len(lines)-1]
		}
		needsTransition := len(lines) == 0 || (last.Op != parser.OpJump && last.Op != parser.OpReturn)
		if needsTransition {
			if _, ok := states[id+1]; ok {
				t.emit(fmt.Sprintf("_state = %d - 1", id+1))
				t.emit("continue")
			} else {
				t.emit("break")
			}
		}
		t.indent--
	}

	t.emit("break")
	t.indent--
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func sortInt64s(xs []int64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

func (t *Sui2Py) transpileInstr(instr parser.Instruction, stateMap map[int64]int) {
	switch instr.Op {
	case parser.OpNoop, parser.OpLabel, parser.OpImport, parser.OpFuncDef:
		// handled elsewhere or skipped at transpile time

	case parser.OpAssign:
		t.emit(fmt.Sprintf("%s = %s", instr.Target, instr.A))
	case parser.OpAdd:
		t.emit(fmt.Sprintf("%s = %s + %s", instr.Target, instr.A, instr.B))
	case parser.OpSub:
		t.emit(fmt.Sprintf("%s = %s - %s", instr.Target, instr.A, instr.B))
	case parser.OpMul:
		t.emit(fmt.Sprintf("%s = %s * %s", instr.Target, instr.A, instr.B))
	case parser.OpDiv:
		t.emit(fmt.Sprintf("%s = %s / %s", instr.Target, instr.A, instr.B))
	case parser.OpMod:
		t.emit(fmt.Sprintf("%s = %s %% %s", instr.Target, instr.A, instr.B))
	case parser.OpLt:
		t.emit(fmt.Sprintf("%s = 1 if %s < %s else 0", instr.Target, instr.A, instr.B))
	case parser.OpGt:
		t.emit(fmt.Sprintf("%s = 1 if %s > %s else 0", instr.Target, instr.A, instr.B))
	case parser.OpEq:
		t.emit(fmt.Sprintf("%s = 1 if %s == %s else 0", instr.Target, instr.A, instr.B))
	case parser.OpNot:
		t.emit(fmt.Sprintf("%s = 0 if %s else 1", instr.Target, instr.A))
	case parser.OpAnd:
		t.emit(fmt.Sprintf("%s = 1 if (%s and %s) else 0", instr.Target, instr.A, instr.B))
	case parser.OpOr:
		t.emit(fmt.Sprintf("%s = 1 if (%s or %s) else 0", instr.Target, instr.A, instr.B))

	case parser.OpCondJump:
		if state, ok := stateMap[instr.Label]; ok {
			t.emit(fmt.Sprintf("if %s:", instr.Cond))
			t.indent++
			t.emit(fmt.Sprintf("_state = %d - 1", state))
			t.emit("continue")
			t.indent--
		}
	case parser.OpJump:
		if state, ok := stateMap[instr.Label]; ok {
			t.emit(fmt.Sprintf("_state = %d - 1", state))
			t.emit("continue")
		}

	case parser.OpCall:
		t.emit(fmt.Sprintf("%s = f%d(%s)", instr.Target, instr.FuncID, strings.Join(instr.Args, ", ")))
	case parser.OpReturn:
		t.emit(fmt.Sprintf("return %s", instr.A))

	case parser.OpArrayCreate:
		t.emit(fmt.Sprintf("%s = [0] * %s", instr.Target, instr.A))
	case parser.OpArrayRead:
		t.emit(fmt.Sprintf("%s = %s[int(%s)]", instr.Target, instr.A, instr.B))
	case parser.OpArrayWrite:
		t.emit(fmt.Sprintf("%s[int(%s)] = %s", instr.Args[0], instr.Args[1], instr.Args[2]))

	case parser.OpOutput:
		t.emit(fmt.Sprintf("print(%s)", instr.A))
	case parser.OpInput:
		t.emit("_input = input()")
		t.emit("try:")
		t.indent++
		t.emit(fmt.Sprintf("%s = int(_input)", instr.Target))
		t.indent--
		t.emit("except ValueError:")
		t.indent++
		t.emit(fmt.Sprintf("%s = _input", instr.Target))
		t.indent--

	case parser.OpFFI:
		argsStr := strings.Join(instr.Args, ", ")
		funcClean := strings.Trim(instr.A, `"`)
		if dot := strings.LastIndex(funcClean, "."); dot >= 0 {
			module, fn := funcClean[:dot], funcClean[dot+1:]
			t.emit(fmt.Sprintf("import %s", module))
			t.emit(fmt.Sprintf("%s = %s.%s(%s)", instr.Target, module, fn, argsStr))
		} else {
			t.emit(fmt.Sprintf("%s = %s(%s)", instr.Target, funcClean, argsStr))
		}

	case parser.OpFuncEnd:
		// handled by the caller's loop
	}
}

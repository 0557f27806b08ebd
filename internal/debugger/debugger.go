// Package debugger implements a line-stepping interactive debugger
// over the same per-instruction executor the interpreter runs, per
// spec section 4.4.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suilang/sui/internal/interp"
	"github.com/suilang/sui/internal/parser"
	"github.com/suilang/sui/internal/value"
)

// Debugger drives a top-level instruction block one instruction at a
// time. Calls ($) run to completion inline through the shared
// executor — the debugger only ever steps across the top-level block,
// never into a callee's body.
type Debugger struct {
	it     *interp.Interpreter
	block  []parser.Instruction
	labels map[int64]int
	cursor int

	Breakpoints *BreakpointManager
	Watchpoints *WatchpointManager
	History     *CommandHistory

	Running     bool
	LastCommand string
}

// New creates a Debugger driving it, which the caller configures
// (stack depth, logger, I/O) before calling Load.
func New(it *interp.Interpreter, historySize int) *Debugger {
	return &Debugger{
		it:          it,
		Breakpoints: NewBreakpointManager(),
		Watchpoints: NewWatchpointManager(),
		History:     NewCommandHistory(historySize),
	}
}

// Load parses source, installs its functions into the interpreter, and
// positions the cursor at the first top-level instruction.
func (d *Debugger) Load(source string, args []string) error {
	prog, err := parser.Parse(source)
	if err != nil {
		return err
	}
	d.it.LoadProgram(prog, args)
	d.block = prog.Instructions
	d.labels = buildLabels(d.block)
	d.cursor = 0
	d.Running = len(d.block) > 0
	return nil
}

func buildLabels(block []parser.Instruction) map[int64]int {
	labels := make(map[int64]int)
	for i, instr := range block {
		if instr.Op == parser.OpLabel {
			labels[instr.Label] = i
		}
	}
	return labels
}

// CurrentLine returns the source line the cursor is parked on, or 0
// when execution has finished.
func (d *Debugger) CurrentLine() int {
	if d.cursor < 0 || d.cursor >= len(d.block) {
		return 0
	}
	return d.block[d.cursor].Line
}

// Step executes exactly one instruction (running any call it contains
// to completion inline) and advances the cursor. It returns true once
// the block is exhausted or the top-level frame has returned.
func (d *Debugger) Step() (bool, error) {
	if !d.Running || d.cursor >= len(d.block) {
		d.Running = false
		return true, nil
	}

	instr := d.block[d.cursor]
	jump, err := d.it.StepOne(instr)
	if err != nil {
		d.Running = false
		return true, err
	}

	d.Watchpoints.CheckAll(d.it.ResolveToken)

	if d.it.Returned() {
		d.Running = false
		return true, nil
	}

	if jump != nil {
		if pos, ok := d.labels[*jump]; ok {
			d.cursor = pos
			return false, nil
		}
	}
	d.cursor++
	if d.cursor >= len(d.block) {
		d.Running = false
		return true, nil
	}
	return false, nil
}

// Resume steps until a breakpoint fires (on any instruction after the
// first) or the block finishes. The instruction the cursor started on
// never re-triggers its own breakpoint.
func (d *Debugger) Resume() (hitBreakpoint *Breakpoint, err error) {
	first := true
	for d.Running {
		if !first {
			if bp := d.Breakpoints.ProcessHit(d.CurrentLine()); bp != nil {
				return bp, nil
			}
		}
		first = false

		done, stepErr := d.Step()
		if stepErr != nil {
			return nil, stepErr
		}
		if done {
			return nil, nil
		}
	}
	return nil, nil
}

// Locals returns a snapshot of the current frame's local variables.
func (d *Debugger) Locals() map[int64]*value.Value {
	out := make(map[int64]*value.Value)
	for k, v := range d.it.Locals() {
		out[k] = v
	}
	return out
}

// Globals returns a snapshot of the global variable table.
func (d *Debugger) Globals() map[int64]*value.Value {
	out := make(map[int64]*value.Value)
	for k, v := range d.it.Globals() {
		out[k] = v
	}
	return out
}

// CallStack returns the active function ids, outermost first.
func (d *Debugger) CallStack() []int64 { return d.it.CallStack() }

// Print evaluates a single operand token (a literal or a v/g/a
// reference) against the current frame.
func (d *Debugger) Print(expr string) *value.Value {
	return d.it.ResolveToken(strings.TrimSpace(expr))
}

// Output returns the output log accumulated so far.
func (d *Debugger) Output() []string { return d.it.Output() }

// ExecuteCommand parses and runs one interactive debugger command line,
// per the grammar in spec section 4.4: step/continue/break N/delete
// N/watch EXPR/list/locals/globals/print EXPR/backtrace/quit. An empty
// line repeats the last command.
func (d *Debugger) ExecuteCommand(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		line = d.LastCommand
	}
	if line != "" {
		d.History.Add(line)
		d.LastCommand = line
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "step", "s":
		_, err := d.Step()
		return fmt.Sprintf("line %d", d.CurrentLine()), err

	case "continue", "c":
		bp, err := d.Resume()
		if err != nil {
			return "", err
		}
		if bp != nil {
			return fmt.Sprintf("breakpoint %d hit at line %d", bp.ID, bp.Line), nil
		}
		return "program finished", nil

	case "break", "b":
		if len(args) < 1 {
			return "", fmt.Errorf("break requires a line number")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid line number: %s", args[0])
		}
		bp := d.Breakpoints.Add(n, false)
		return fmt.Sprintf("breakpoint %d set at line %d", bp.ID, bp.Line), nil

	case "delete", "d":
		if len(args) < 1 {
			return "", fmt.Errorf("delete requires a breakpoint id")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid id: %s", args[0])
		}
		if err := d.Breakpoints.Delete(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("breakpoint %d deleted", id), nil

	case "watch", "w":
		if len(args) < 1 {
			return "", fmt.Errorf("watch requires a variable reference")
		}
		wp := d.Watchpoints.Add(args[0], d.it.ResolveToken(args[0]))
		return fmt.Sprintf("watchpoint %d on %s", wp.ID, wp.Expression), nil

	case "list", "l":
		return d.listSource(), nil

	case "locals":
		return formatVars(d.Locals()), nil

	case "globals":
		return formatVars(d.Globals()), nil

	case "print", "p":
		if len(args) < 1 {
			return "", fmt.Errorf("print requires an expression")
		}
		return d.Print(strings.Join(args, " ")).Display(), nil

	case "backtrace", "bt":
		ids := d.CallStack()
		parts := make([]string, len(ids))
		for i, id := range ids {
			if id < 0 {
				parts[i] = "<top level>"
			} else {
				parts[i] = fmt.Sprintf("fn%d", id)
			}
		}
		return strings.Join(parts, " -> "), nil

	case "quit", "q":
		d.Running = false
		return "stopped", nil

	default:
		return "", fmt.Errorf("unknown command: %s", cmd)
	}
}

func (d *Debugger) listSource() string {
	const context = 2
	lo := d.cursor - context
	if lo < 0 {
		lo = 0
	}
	hi := d.cursor + context + 1
	if hi > len(d.block) {
		hi = len(d.block)
	}
	var sb strings.Builder
	for i := lo; i < hi; i++ {
		marker := "  "
		if i == d.cursor {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s %4d: %c\n", marker, d.block[i].Line, byte(d.block[i].Op))
	}
	return sb.String()
}

func formatVars(vars map[int64]*value.Value) string {
	var sb strings.Builder
	for id, v := range vars {
		fmt.Fprintf(&sb, "%d = %s\n", id, v.Display())
	}
	return sb.String()
}

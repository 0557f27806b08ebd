package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suilang/sui/internal/parser"
)

// LabelSymbol is a label's definition and every jump that targets it,
// scoped to the block (top level or one function body) it was found in.
type LabelSymbol struct {
	Label      int64
	Block      string // "main" or "f<id>"
	DefLine    int
	Referenced []int // lines of jumps targeting this label
}

// FuncSymbol is a function's declaration and every call site that
// invokes it. DefLine is the line of the first instruction in the
// function's body (0 for an empty body); the header line is not
// recorded.
type FuncSymbol struct {
	ID       int64
	Argc     int64
	DefLine  int
	CallSite []int
}

// XRef is the full cross-reference result for a program.
type XRef struct {
	Labels    []*LabelSymbol
	Functions []*FuncSymbol
}

// Generate parses source and builds its label and function
// cross-reference tables.
func Generate(source string) (*XRef, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	xr := &XRef{}

	funcs := map[int64]*FuncSymbol{}
	funcIDs := make([]int64, 0, len(prog.Functions))
	for id := range prog.Functions {
		funcIDs = append(funcIDs, id)
	}
	sort.Slice(funcIDs, func(i, j int) bool { return funcIDs[i] < funcIDs[j] })

	for _, id := range funcIDs {
		fn := prog.Functions[id]
		defLine := 0
		if len(fn.Body) > 0 {
			defLine = fn.Body[0].Line
		}
		sym := &FuncSymbol{ID: id, Argc: fn.Argc, DefLine: defLine}
		funcs[id] = sym
		xr.Functions = append(xr.Functions, sym)
	}

	xr.Labels = append(xr.Labels, generateBlockLabels("main", prog.Instructions)...)
	recordCalls(prog.Instructions, funcs)
	for _, id := range funcIDs {
		xr.Labels = append(xr.Labels, generateBlockLabels(fmt.Sprintf("f%d", id), prog.Functions[id].Body)...)
		recordCalls(prog.Functions[id].Body, funcs)
	}

	return xr, nil
}

func generateBlockLabels(block string, instrs []parser.Instruction) []*LabelSymbol {
	byLabel := map[int64]*LabelSymbol{}
	var order []int64

	for _, instr := range instrs {
		if instr.Op == parser.OpLabel {
			if _, ok := byLabel[instr.Label]; !ok {
				byLabel[instr.Label] = &LabelSymbol{Label: instr.Label, Block: block}
				order = append(order, instr.Label)
			}
			byLabel[instr.Label].DefLine = instr.Line
		}
	}

	for _, instr := range instrs {
		switch instr.Op {
		case parser.OpCondJump, parser.OpJump:
			sym, ok := byLabel[instr.Label]
			if !ok {
				sym = &LabelSymbol{Label: instr.Label, Block: block}
				byLabel[instr.Label] = sym
				order = append(order, instr.Label)
			}
			sym.Referenced = append(sym.Referenced, instr.Line)
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]*LabelSymbol, len(order))
	for i, label := range order {
		out[i] = byLabel[label]
	}
	return out
}

func recordCalls(instrs []parser.Instruction, funcs map[int64]*FuncSymbol) {
	for _, instr := range instrs {
		if instr.Op == parser.OpCall {
			if sym, ok := funcs[instr.FuncID]; ok {
				sym.CallSite = append(sym.CallSite, instr.Line)
			}
		}
	}
}

// String renders a human-readable cross-reference report.
func (x *XRef) String() string {
	var sb strings.Builder

	sb.WriteString("Functions\n")
	sb.WriteString("=========\n")
	for _, fn := range x.Functions {
		sb.WriteString(fmt.Sprintf("f%d (argc=%d) defined line %d\n", fn.ID, fn.Argc, fn.DefLine))
		if len(fn.CallSite) == 0 {
			sb.WriteString("  called: (never)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  called: line(s) %s\n", joinInts(fn.CallSite)))
		}
	}

	sb.WriteString("\nLabels\n")
	sb.WriteString("======\n")
	sort.SliceStable(x.Labels, func(i, j int) bool {
		if x.Labels[i].Block != x.Labels[j].Block {
			return x.Labels[i].Block < x.Labels[j].Block
		}
		return x.Labels[i].Label < x.Labels[j].Label
	})
	for _, l := range x.Labels {
		sb.WriteString(fmt.Sprintf("%s:%d defined line %d\n", l.Block, l.Label, l.DefLine))
		if len(l.Referenced) == 0 {
			sb.WriteString("  jumped to: (never)\n")
		} else {
			sb.WriteString(fmt.Sprintf("  jumped to: line(s) %s\n", joinInts(l.Referenced)))
		}
	}

	return sb.String()
}

func joinInts(xs []int) string {
	strs := make([]string, len(xs))
	for i, x := range xs {
		strs[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(strs, ", ")
}

package tools

import (
	"fmt"
	"sort"

	"github.com/suilang/sui/internal/parser"
)

// LintLevel is the severity of a LintIssue.
type LintLevel int

const (
	LintError LintLevel = iota
	LintWarning
)

func (l LintLevel) String() string {
	if l == LintError {
		return "error"
	}
	return "warning"
}

// LintIssue is a single static-analysis finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// Linter runs block-scoped static checks over a parsed Sui program:
// undefined/unused/duplicate labels (labels are scoped per block, same
// as jumps), unreachable code after an unconditional jump or return,
// and calls to undeclared function ids.
type Linter struct {
	issues []*LintIssue
}

// NewLinter creates a Linter ready for Lint.
func NewLinter() *Linter { return &Linter{} }

// Lint parses source and returns every issue found, sorted by line.
func (l *Linter) Lint(source string) []*LintIssue {
	l.issues = nil

	prog, err := parser.Parse(source)
	if err != nil {
		if pe, ok := err.(*parser.Error); ok {
			l.issues = append(l.issues, &LintIssue{Level: LintError, Line: pe.Pos.Line, Message: pe.Message, Code: "PARSE_ERROR"})
		} else {
			l.issues = append(l.issues, &LintIssue{Level: LintError, Line: 1, Message: err.Error(), Code: "PARSE_ERROR"})
		}
		return l.issues
	}

	l.lintBlock(prog.Instructions)
	for _, fn := range prog.Functions {
		l.lintBlock(fn.Body)
	}

	funcIDs := map[int64]bool{}
	for id := range prog.Functions {
		funcIDs[id] = true
	}
	l.checkCallTargets(prog.Instructions, funcIDs)
	for _, fn := range prog.Functions {
		l.checkCallTargets(fn.Body, funcIDs)
	}

	sort.SliceStable(l.issues, func(i, j int) bool { return l.issues[i].Line < l.issues[j].Line })
	return l.issues
}

// lintBlock runs the label-scoped checks a single block (the top level
// or one function body) is independently subject to.
func (l *Linter) lintBlock(block []parser.Instruction) {
	defined := map[int64]int{}
	referenced := map[int64]bool{}

	for _, instr := range block {
		if instr.Op == parser.OpLabel {
			if line, exists := defined[instr.Label]; exists {
				l.issues = append(l.issues, &LintIssue{
					Level: LintWarning, Line: instr.Line,
					Message: fmt.Sprintf("duplicate label %d (first defined at line %d)", instr.Label, line),
					Code:    "DUPLICATE_LABEL",
				})
				continue
			}
			defined[instr.Label] = instr.Line
		}
	}

	for _, instr := range block {
		switch instr.Op {
		case parser.OpCondJump, parser.OpJump:
			referenced[instr.Label] = true
			if _, ok := defined[instr.Label]; !ok {
				l.issues = append(l.issues, &LintIssue{
					Level: LintError, Line: instr.Line,
					Message: fmt.Sprintf("jump to undefined label %d", instr.Label),
					Code:    "UNDEF_LABEL",
				})
			}
		}
	}

	for label, line := range defined {
		if !referenced[label] {
			l.issues = append(l.issues, &LintIssue{
				Level: LintWarning, Line: line,
				Message: fmt.Sprintf("label %d defined but never jumped to", label),
				Code:    "UNUSED_LABEL",
			})
		}
	}

	l.checkUnreachable(block)
}

// checkUnreachable flags the instruction right after an unconditional
// jump or return, unless it's a label (a possible jump target).
func (l *Linter) checkUnreachable(block []parser.Instruction) {
	for i := 0; i < len(block)-1; i++ {
		instr := block[i]
		if instr.Op != parser.OpJump && instr.Op != parser.OpReturn {
			continue
		}
		next := block[i+1]
		if next.Op == parser.OpLabel {
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level: LintWarning, Line: next.Line,
			Message: "unreachable code after unconditional jump or return",
			Code:    "UNREACHABLE_CODE",
		})
	}
}

func (l *Linter) checkCallTargets(block []parser.Instruction, funcIDs map[int64]bool) {
	for _, instr := range block {
		if instr.Op == parser.OpCall && !funcIDs[instr.FuncID] {
			l.issues = append(l.issues, &LintIssue{
				Level: LintError, Line: instr.Line,
				Message: fmt.Sprintf("call to undeclared function %d", instr.FuncID),
				Code:    "UNDEF_FUNCTION",
			})
		}
	}
}

// Package transpiler converts between Sui source and two other
// representations: a Python subset (Py2Sui) and Sui's own two output
// targets, Python and JavaScript (Sui2Py, Sui2Js), per spec section
// 4.5.
package transpiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type indentKind int

const (
	ctxIf indentKind = iota
	ctxIfElse
	ctxWhile
	ctxFor
	ctxFunction
	ctxElse
)

type indentContext struct {
	kind       indentKind
	endLabel   int64
	elseLabel  int64
	startLabel int64
	loopVar    string
}

// Py2Sui lowers a line-oriented subset of Python (assignment,
// if/elif/else, while, for-range, def/return, print/input and the
// arithmetic/comparison/logical operators) to Sui source, flattening
// every expression to three-address Sui instructions.
type Py2Sui struct {
	output       []string
	varCounter   int
	labelCounter int64
	funcCounter  int64
	varMap       map[string]string
	funcMap      map[string]int64
	isGlobal     bool
	funcArgs     []string
	indentStack  []indentContext
}

// NewPy2Sui creates a transpiler ready for TranspileToSui.
func NewPy2Sui() *Py2Sui {
	return &Py2Sui{varMap: make(map[string]string), funcMap: make(map[string]int64)}
}

func (t *Py2Sui) emit(line string) { t.output = append(t.output, line) }

func (t *Py2Sui) newVar() string {
	v := fmt.Sprintf("v%d", t.varCounter)
	t.varCounter++
	return v
}

func (t *Py2Sui) newLabel() int64 {
	l := t.labelCounter
	t.labelCounter++
	return l
}

// getVar maps a Python identifier to its Sui variable: a<idx> when it
// names a function parameter, the existing mapping when one exists, or
// a freshly allocated g<n> (at global scope) / v<n> (inside a function
// body) otherwise.
func (t *Py2Sui) getVar(name string) string {
	for i, a := range t.funcArgs {
		if a == name {
			return fmt.Sprintf("a%d", i)
		}
	}
	if v, ok := t.varMap[name]; ok {
		return v
	}

	var v string
	if t.isGlobal {
		count := 0
		for _, existing := range t.varMap {
			if strings.HasPrefix(existing, "g") {
				count++
			}
		}
		v = fmt.Sprintf("g%d", count)
	} else {
		v = t.newVar()
	}
	t.varMap[name] = v
	return v
}

// parseExpr flattens a Python expression into Sui instructions and
// returns the variable holding its result. Precedence is resolved by
// trying, in order: literals, comparisons, logical and/or/not,
// additive then multiplicative arithmetic (both scanned
// right-to-left so a chain splits at its rightmost occurrence, giving
// left-associativity), unary minus, parenthesization, call,
// subscript, list literal, then a bare identifier.
func (t *Py2Sui) parseExpr(expr string) string {
	expr = strings.TrimSpace(expr)

	if n, err := strconv.ParseInt(expr, 10, 64); err == nil {
		v := t.newVar()
		t.emit(fmt.Sprintf("= %s %d", v, n))
		return v
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		v := t.newVar()
		t.emit(fmt.Sprintf("= %s %s", v, formatFloat(f)))
		return v
	}
	if len(expr) >= 2 && ((expr[0] == '"' && expr[len(expr)-1] == '"') || (expr[0] == '\'' && expr[len(expr)-1] == '\'')) {
		v := t.newVar()
		t.emit(fmt.Sprintf("= %s \"%s\"", v, expr[1:len(expr)-1]))
		return v
	}
	if expr == "True" {
		v := t.newVar()
		t.emit(fmt.Sprintf("= %s 1", v))
		return v
	}
	if expr == "False" || expr == "None" {
		v := t.newVar()
		t.emit(fmt.Sprintf("= %s 0", v))
		return v
	}

	for _, cmp := range []struct{ pyOp, suiOp string }{
		{"==", "~"}, {"!=", "!~"}, {"<=", "<="}, {">=", ">="}, {"<", "<"}, {">", ">"},
	} {
		if idx := findOperator(expr, cmp.pyOp); idx >= 0 {
			left := t.parseExpr(expr[:idx])
			right := t.parseExpr(expr[idx+len(cmp.pyOp):])
			result := t.newVar()
			switch cmp.suiOp {
			case "~":
				t.emit(fmt.Sprintf("~ %s %s %s", result, left, right))
			case "!~":
				tmp := t.newVar()
				t.emit(fmt.Sprintf("~ %s %s %s", tmp, left, right))
				t.emit(fmt.Sprintf("! %s %s", result, tmp))
			case "<=":
				tmp1, tmp2 := t.newVar(), t.newVar()
				t.emit(fmt.Sprintf("< %s %s %s", tmp1, left, right))
				t.emit(fmt.Sprintf("~ %s %s %s", tmp2, left, right))
				t.emit(fmt.Sprintf("| %s %s %s", result, tmp1, tmp2))
			case ">=":
				tmp1, tmp2 := t.newVar(), t.newVar()
				t.emit(fmt.Sprintf("> %s %s %s", tmp1, left, right))
				t.emit(fmt.Sprintf("~ %s %s %s", tmp2, left, right))
				t.emit(fmt.Sprintf("| %s %s %s", result, tmp1, tmp2))
			case "<":
				t.emit(fmt.Sprintf("< %s %s %s", result, left, right))
			case ">":
				t.emit(fmt.Sprintf("> %s %s %s", result, left, right))
			}
			return result
		}
	}

	if idx := findKeyword(expr, " and "); idx >= 0 {
		left := t.parseExpr(expr[:idx])
		right := t.parseExpr(expr[idx+5:])
		result := t.newVar()
		t.emit(fmt.Sprintf("& %s %s %s", result, left, right))
		return result
	}
	if idx := findKeyword(expr, " or "); idx >= 0 {
		left := t.parseExpr(expr[:idx])
		right := t.parseExpr(expr[idx+4:])
		result := t.newVar()
		t.emit(fmt.Sprintf("| %s %s %s", result, left, right))
		return result
	}
	if strings.HasPrefix(expr, "not ") {
		operand := t.parseExpr(expr[4:])
		result := t.newVar()
		t.emit(fmt.Sprintf("! %s %s", result, operand))
		return result
	}

	for _, add := range []string{"+", "-"} {
		if idx := findOperatorRTL(expr, add); idx > 0 {
			left := t.parseExpr(expr[:idx])
			right := t.parseExpr(expr[idx+1:])
			result := t.newVar()
			t.emit(fmt.Sprintf("%s %s %s %s", add, result, left, right))
			return result
		}
	}
	for _, mul := range []string{"*", "/", "%"} {
		if idx := findOperatorRTL(expr, mul); idx >= 0 {
			left := t.parseExpr(expr[:idx])
			right := t.parseExpr(expr[idx+1:])
			result := t.newVar()
			t.emit(fmt.Sprintf("%s %s %s %s", mul, result, left, right))
			return result
		}
	}

	if strings.HasPrefix(expr, "-") && len(expr) > 1 {
		operand := t.parseExpr(expr[1:])
		result := t.newVar()
		t.emit(fmt.Sprintf("- %s 0 %s", result, operand))
		return result
	}

	if strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		return t.parseExpr(expr[1 : len(expr)-1])
	}

	if parenIdx := strings.Index(expr, "("); parenIdx >= 0 && strings.HasSuffix(expr, ")") {
		funcName := expr[:parenIdx]
		argsStr := expr[parenIdx+1 : len(expr)-1]
		if isIdentifier(funcName) {
			if v, ok := t.parseCall(funcName, argsStr); ok {
				return v
			}
		}
	}

	if bracketIdx := strings.Index(expr, "["); bracketIdx >= 0 && strings.HasSuffix(expr, "]") {
		arrName := expr[:bracketIdx]
		idxStr := expr[bracketIdx+1 : len(expr)-1]
		if isIdentifier(arrName) {
			arrVar := t.getVar(arrName)
			idxVar := t.parseExpr(idxStr)
			result := t.newVar()
			t.emit(fmt.Sprintf("] %s %s %s", result, arrVar, idxVar))
			return result
		}
	}

	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		elements := splitArgs(expr[1 : len(expr)-1])
		result := t.newVar()
		t.emit(fmt.Sprintf("[ %s %d", result, len(elements)))
		for i, elem := range elements {
			val := t.parseExpr(elem)
			t.emit(fmt.Sprintf("{ %s %d %s", result, i, val))
		}
		return result
	}

	return t.getVar(expr)
}

func (t *Py2Sui) parseCall(funcName, argsStr string) (string, bool) {
	switch funcName {
	case "print":
		for _, arg := range splitArgs(argsStr) {
			argVar := t.parseExpr(arg)
			t.emit(fmt.Sprintf(". %s", argVar))
		}
		return t.newVar(), true

	case "input":
		result := t.newVar()
		t.emit(fmt.Sprintf(", %s", result))
		return result, true

	case "len":
		result := t.newVar()
		args := splitArgs(argsStr)
		if len(args) > 0 {
			argVar := t.parseExpr(args[0])
			t.emit(fmt.Sprintf("R %s \"len\" %s", result, argVar))
		} else {
			t.emit(fmt.Sprintf("= %s 0", result))
		}
		return result, true

	case "int", "float", "str", "abs", "round", "max", "min":
		result := t.newVar()
		args := splitArgs(argsStr)
		argVars := make([]string, len(args))
		for i, a := range args {
			argVars[i] = t.parseExpr(a)
		}
		t.emit(fmt.Sprintf("R %s \"%s\" %s", result, funcName, strings.Join(argVars, " ")))
		return result, true

	case "range":
		result := t.newVar()
		t.emit(fmt.Sprintf("= %s 0", result))
		return result, true

	default:
		if funcID, ok := t.funcMap[funcName]; ok {
			args := splitArgs(argsStr)
			argVars := make([]string, len(args))
			for i, a := range args {
				argVars[i] = t.parseExpr(a)
			}
			result := t.newVar()
			t.emit(fmt.Sprintf("$ %s %d %s", result, funcID, strings.Join(argVars, " ")))
			return result, true
		}
	}
	return "", false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// findOperator returns the first top-level (bracket-depth-zero)
// occurrence of op in expr.
func findOperator(expr, op string) int {
	depth := 0
	runes := []rune(expr)
	opRunes := []rune(op)
	for i := range runes {
		switch runes[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && i+len(opRunes) <= len(runes) && string(runes[i:i+len(opRunes)]) == op {
			return i
		}
	}
	return -1
}

// findOperatorRTL scans right to left for a top-level occurrence of a
// single-character operator, skipping occurrences that are actually
// part of a two-character comparison operator, so the rightmost valid
// split point is returned and a chain associates to the left.
func findOperatorRTL(expr, op string) int {
	depth := 0
	runes := []rune(expr)
	opRune := []rune(op)[0]
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case ')', ']':
			depth++
		case '(', '[':
			depth--
		}
		if depth == 0 && runes[i] == opRune {
			if i > 0 && (runes[i-1] == '=' || runes[i-1] == '<' || runes[i-1] == '>' || runes[i-1] == '!') {
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '=' {
				continue
			}
			return i
		}
	}
	return -1
}

func findKeyword(expr, keyword string) int {
	depth := 0
	runes := []rune(expr)
	kwRunes := []rune(keyword)
	for i := range runes {
		switch runes[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && i+len(kwRunes) <= len(runes) && string(runes[i:i+len(kwRunes)]) == keyword {
			return i
		}
	}
	return -1
}

// splitArgs splits a comma-separated argument list, respecting
// parenthesis/bracket nesting and quoted strings.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var result []string
	var cur strings.Builder
	depth := 0
	inString := false
	var stringChar rune

	for _, c := range s {
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			stringChar = c
			cur.WriteRune(c)
		case inString && c == stringChar:
			inString = false
			cur.WriteRune(c)
		case inString:
			cur.WriteRune(c)
		case c == '(' || c == '[':
			depth++
			cur.WriteRune(c)
		case c == ')' || c == ']':
			depth--
			cur.WriteRune(c)
		case c == ',' && depth == 0:
			result = append(result, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	if strings.TrimSpace(cur.String()) != "" {
		result = append(result, strings.TrimSpace(cur.String()))
	}
	return result
}

func getIndent(line string) int {
	n := 0
	for _, c := range line {
		if c == ' ' || c == '\t' {
			n++
			continue
		}
		break
	}
	return n
}

var (
	defRe   = regexp.MustCompile(`^def\s+(\w+)\s*\(([^)]*)\)\s*:$`)
	forRe   = regexp.MustCompile(`^for\s+(\w+)\s+in\s+range\s*\((.+)\)\s*:$`)
	augOps  = []struct{ pyOp, suiOp string }{{"+=", "+"}, {"-=", "-"}, {"*=", "*"}, {"/=", "/"}, {"%=", "%"}}
)

// parseLine handles a single Python statement line.
func (t *Py2Sui) parseLine(trimmed string) {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	for _, op := range augOps {
		if idx := strings.Index(trimmed, op.pyOp); idx >= 0 {
			target := strings.TrimSpace(trimmed[:idx])
			value := strings.TrimSpace(trimmed[idx+2:])
			targetVar := t.getVar(target)
			valueVar := t.parseExpr(value)
			t.emit(fmt.Sprintf("%s %s %s %s", op.suiOp, targetVar, targetVar, valueVar))
			return
		}
	}

	if idx := findAssignment(trimmed); idx >= 0 {
		target := strings.TrimSpace(trimmed[:idx])
		value := strings.TrimSpace(trimmed[idx+1:])

		if bracketIdx := strings.Index(target, "["); bracketIdx >= 0 && strings.HasSuffix(target, "]") {
			arrVar := t.getVar(target[:bracketIdx])
			idxVar := t.parseExpr(target[bracketIdx+1 : len(target)-1])
			valueVar := t.parseExpr(value)
			t.emit(fmt.Sprintf("{ %s %s %s", arrVar, idxVar, valueVar))
			return
		}

		valueVar := t.parseExpr(value)
		targetVar := t.getVar(target)
		t.emit(fmt.Sprintf("= %s %s", targetVar, valueVar))
		return
	}

	if strings.HasPrefix(trimmed, "if ") && strings.HasSuffix(trimmed, ":") {
		cond := t.parseExpr(trimmed[3 : len(trimmed)-1])
		notCond := t.newVar()
		t.emit(fmt.Sprintf("! %s %s", notCond, cond))
		endLabel := t.newLabel()
		t.emit(fmt.Sprintf("? %s %d", notCond, endLabel))
		t.indentStack = append(t.indentStack, indentContext{kind: ctxIf, endLabel: endLabel})
		return
	}

	if strings.HasPrefix(trimmed, "elif ") && strings.HasSuffix(trimmed, ":") {
		if len(t.indentStack) > 0 {
			top := t.indentStack[len(t.indentStack)-1]
			if top.kind == ctxIf || top.kind == ctxIfElse {
				t.indentStack = t.indentStack[:len(t.indentStack)-1]
				var newEnd, prevEnd int64
				if top.kind == ctxIf {
					newEnd, prevEnd = t.newLabel(), top.endLabel
				} else {
					newEnd, prevEnd = top.endLabel, top.elseLabel
				}
				t.emit(fmt.Sprintf("@ %d", newEnd))
				t.emit(fmt.Sprintf(": %d", prevEnd))

				cond := t.parseExpr(trimmed[5 : len(trimmed)-1])
				notCond := t.newVar()
				t.emit(fmt.Sprintf("! %s %s", notCond, cond))
				elifEnd := t.newLabel()
				t.emit(fmt.Sprintf("? %s %d", notCond, elifEnd))

				t.indentStack = append(t.indentStack, indentContext{kind: ctxIfElse, elseLabel: elifEnd, endLabel: newEnd})
			}
		}
		return
	}

	if trimmed == "else:" {
		if len(t.indentStack) > 0 {
			top := t.indentStack[len(t.indentStack)-1]
			t.indentStack = t.indentStack[:len(t.indentStack)-1]
			switch top.kind {
			case ctxIf:
				newEnd := t.newLabel()
				t.emit(fmt.Sprintf("@ %d", newEnd))
				t.emit(fmt.Sprintf(": %d", top.endLabel))
				t.indentStack = append(t.indentStack, indentContext{kind: ctxElse, endLabel: newEnd})
			case ctxIfElse:
				t.emit(fmt.Sprintf("@ %d", top.endLabel))
				t.emit(fmt.Sprintf(": %d", top.elseLabel))
				t.indentStack = append(t.indentStack, indentContext{kind: ctxElse, endLabel: top.endLabel})
			default:
				t.indentStack = append(t.indentStack, top)
			}
		}
		return
	}

	if strings.HasPrefix(trimmed, "while ") && strings.HasSuffix(trimmed, ":") {
		startLabel := t.newLabel()
		endLabel := t.newLabel()
		t.emit(fmt.Sprintf(": %d", startLabel))

		cond := t.parseExpr(trimmed[6 : len(trimmed)-1])
		notCond := t.newVar()
		t.emit(fmt.Sprintf("! %s %s", notCond, cond))
		t.emit(fmt.Sprintf("? %s %d", notCond, endLabel))

		t.indentStack = append(t.indentStack, indentContext{kind: ctxWhile, startLabel: startLabel, endLabel: endLabel})
		return
	}

	if strings.HasPrefix(trimmed, "for ") && strings.Contains(trimmed, " in ") && strings.HasSuffix(trimmed, ":") {
		if caps := forRe.FindStringSubmatch(trimmed); caps != nil {
			loopVarName, rangeArgs := caps[1], caps[2]
			args := splitArgs(rangeArgs)

			startVal, endExpr := "0", args[0]
			if len(args) > 1 {
				startVal, endExpr = args[0], args[1]
			}

			loopVar := t.getVar(loopVarName)
			startVar := t.parseExpr(startVal)
			t.emit(fmt.Sprintf("= %s %s", loopVar, startVar))

			endVar := t.parseExpr(endExpr)
			startLabel := t.newLabel()
			endLabel := t.newLabel()
			t.emit(fmt.Sprintf(": %d", startLabel))

			cond := t.newVar()
			t.emit(fmt.Sprintf("< %s %s %s", cond, loopVar, endVar))
			notCond := t.newVar()
			t.emit(fmt.Sprintf("! %s %s", notCond, cond))
			t.emit(fmt.Sprintf("? %s %d", notCond, endLabel))

			t.indentStack = append(t.indentStack, indentContext{kind: ctxFor, startLabel: startLabel, endLabel: endLabel, loopVar: loopVar})
			return
		}
	}

	if strings.HasPrefix(trimmed, "def ") && strings.HasSuffix(trimmed, ":") {
		if caps := defRe.FindStringSubmatch(trimmed); caps != nil {
			funcName, paramsStr := caps[1], caps[2]
			funcID := t.funcCounter
			t.funcCounter++
			t.funcMap[funcName] = funcID

			var params []string
			if strings.TrimSpace(paramsStr) != "" {
				for _, p := range strings.Split(paramsStr, ",") {
					params = append(params, strings.TrimSpace(p))
				}
			}

			t.emit(fmt.Sprintf("# %d %d {", funcID, len(params)))
			t.isGlobal = false
			t.varCounter = 0
			t.funcArgs = params
			t.indentStack = append(t.indentStack, indentContext{kind: ctxFunction})
			return
		}
	}

	if strings.HasPrefix(trimmed, "return") {
		valueStr := strings.TrimSpace(trimmed[6:])
		if valueStr == "" {
			t.emit("^ 0")
		} else {
			t.emit(fmt.Sprintf("^ %s", t.parseExpr(valueStr)))
		}
		return
	}

	if strings.HasPrefix(trimmed, "print(") && strings.HasSuffix(trimmed, ")") {
		for _, arg := range splitArgs(trimmed[6 : len(trimmed)-1]) {
			argVar := t.parseExpr(arg)
			t.emit(fmt.Sprintf(". %s", argVar))
		}
		return
	}

	if trimmed == "pass" {
		return
	}

	if strings.Contains(trimmed, "(") {
		t.parseExpr(trimmed)
	}
}

// findAssignment locates a top-level '=' that isn't part of ==, !=,
// <=, or >=.
func findAssignment(s string) int {
	runes := []rune(s)
	depth := 0
	inString := false
	var stringChar rune

	for i, c := range runes {
		switch {
		case !inString && (c == '"' || c == '\''):
			inString = true
			stringChar = c
		case inString && c == stringChar:
			inString = false
		case !inString:
			switch {
			case c == '(' || c == '[':
				depth++
			case c == ')' || c == ']':
				depth--
			case c == '=' && depth == 0:
				prev, next := rune(' '), rune(' ')
				if i > 0 {
					prev = runes[i-1]
				}
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if prev != '=' && prev != '!' && prev != '<' && prev != '>' && next != '=' {
					return i
				}
			}
		}
	}
	return -1
}

// closeBlocks pops the innermost open block and emits the
// instructions that close it.
func (t *Py2Sui) closeBlocks() {
	if len(t.indentStack) == 0 {
		return
	}
	ctx := t.indentStack[len(t.indentStack)-1]
	t.indentStack = t.indentStack[:len(t.indentStack)-1]

	switch ctx.kind {
	case ctxIf, ctxElse:
		t.emit(fmt.Sprintf(": %d", ctx.endLabel))
	case ctxIfElse:
		t.emit(fmt.Sprintf(": %d", ctx.elseLabel))
		t.emit(fmt.Sprintf(": %d", ctx.endLabel))
	case ctxWhile:
		t.emit(fmt.Sprintf("@ %d", ctx.startLabel))
		t.emit(fmt.Sprintf(": %d", ctx.endLabel))
	case ctxFor:
		t.emit(fmt.Sprintf("+ %s %s 1", ctx.loopVar, ctx.loopVar))
		t.emit(fmt.Sprintf("@ %d", ctx.startLabel))
		t.emit(fmt.Sprintf(": %d", ctx.endLabel))
	case ctxFunction:
		t.emit("}")
		t.isGlobal = true
		t.funcArgs = nil
	}
}

// TranspileToSui converts a Python source string to Sui source.
func (t *Py2Sui) TranspileToSui(code string) (string, error) {
	t.output = nil
	t.varCounter = 0
	t.labelCounter = 0
	t.varMap = make(map[string]string)
	t.indentStack = nil
	t.isGlobal = true
	t.funcArgs = nil

	lines := strings.Split(code, "\n")

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "def ") && strings.HasSuffix(trimmed, ":") {
			if caps := defRe.FindStringSubmatch(trimmed); caps != nil {
				t.funcMap[caps[1]] = t.funcCounter
				t.funcCounter++
			}
		}
	}
	t.funcCounter = 0

	var headerIndents []int // indent of the header line of each open block
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		currentIndent := getIndent(line)
		continuesIf := trimmed == "else:" || strings.HasPrefix(trimmed, "elif ")
		for len(headerIndents) > 0 {
			top := headerIndents[len(headerIndents)-1]
			if top < currentIndent || (top == currentIndent && continuesIf) {
				break
			}
			t.closeBlocks()
			headerIndents = headerIndents[:len(headerIndents)-1]
		}
		t.parseLine(trimmed)
		for len(headerIndents) < len(t.indentStack) {
			headerIndents = append(headerIndents, currentIndent)
		}
	}
	for len(t.indentStack) > 0 {
		t.closeBlocks()
	}

	return strings.Join(t.output, "\n"), nil
}

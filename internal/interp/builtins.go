package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/suilang/sui/internal/value"
)

// callBuiltin dispatches R/P "foreign" calls on the last dot-segment of
// name (so "math.sqrt" and "sqrt" both reach the sqrt case). An
// unrecognized name logs a warning to the diagnostic channel and
// returns Integer 0, per spec section 7 — builtins never raise a
// runtime error.
func (it *Interpreter) callBuiltin(name string, args []*value.Value) *value.Value {
	parts := strings.Split(name, ".")
	fn := parts[len(parts)-1]

	switch fn {
	case "sqrt":
		return value.NewFloat(math.Sqrt(arg(args, 0).ToFloat()))
	case "pow":
		return value.NewFloat(math.Pow(arg(args, 0).ToFloat(), arg(args, 1).ToFloat()))
	case "sin":
		return value.NewFloat(math.Sin(arg(args, 0).ToFloat()))
	case "cos":
		return value.NewFloat(math.Cos(arg(args, 0).ToFloat()))
	case "tan":
		return value.NewFloat(math.Tan(arg(args, 0).ToFloat()))
	case "floor":
		return value.NewFloat(math.Floor(arg(args, 0).ToFloat()))
	case "ceil":
		return value.NewFloat(math.Ceil(arg(args, 0).ToFloat()))
	case "round":
		return builtinRound(args)
	case "abs":
		return builtinAbs(arg(args, 0))
	case "log":
		return value.NewFloat(math.Log(arg(args, 0).ToFloat()))
	case "log10":
		return value.NewFloat(math.Log10(arg(args, 0).ToFloat()))
	case "exp":
		return value.NewFloat(math.Exp(arg(args, 0).ToFloat()))
	case "max":
		return builtinMinMax(args, false)
	case "min":
		return builtinMinMax(args, true)
	case "len":
		return builtinLen(arg(args, 0))
	case "int":
		return value.NewInt(arg(args, 0).ToInt())
	case "float":
		return value.NewFloat(arg(args, 0).ToFloat())
	case "str":
		return value.NewString(arg(args, 0).Display())
	case "randint":
		lo, hi := arg(args, 0).ToInt(), arg(args, 1).ToInt()
		if hi < lo {
			lo, hi = hi, lo
		}
		return value.NewInt(lo + it.ensureRand().Int63n(hi-lo+1))
	default:
		it.log.Printf("unknown builtin %q called with %d argument(s), returning 0", name, len(args))
		return value.NewInt(0)
	}
}

func arg(args []*value.Value, i int) *value.Value {
	if i < 0 || i >= len(args) {
		return value.NewInt(0)
	}
	return args[i]
}

// builtinRound implements round(x) / round(x, decimals). With no
// decimals argument it returns an Integer; with one, it always returns
// a Float rounded to that many decimal places.
func builtinRound(args []*value.Value) *value.Value {
	x := arg(args, 0).ToFloat()
	if len(args) < 2 {
		return value.NewInt(int64(math.Round(x)))
	}
	decimals := arg(args, 1).ToInt()
	scale := math.Pow(10, float64(decimals))
	return value.NewFloat(math.Round(x*scale) / scale)
}

// builtinAbs always computes the result as a float first, then returns
// an Integer when that result has zero fractional part — the input's
// Kind plays no part, so abs(Float(-4.0)) returns Integer(4).
func builtinAbs(v *value.Value) *value.Value {
	return intIfWhole(math.Abs(v.ToFloat()))
}

// builtinMinMax picks the extreme by comparing float values, then
// applies the same result-based Integer-preservation rule as
// builtinAbs — an input's Kind never gates it.
func builtinMinMax(args []*value.Value, wantMin bool) *value.Value {
	if len(args) == 0 {
		return value.NewInt(0)
	}
	best := args[0].ToFloat()
	for _, v := range args[1:] {
		f := v.ToFloat()
		if (wantMin && f < best) || (!wantMin && f > best) {
			best = f
		}
	}
	return intIfWhole(best)
}

// intIfWhole returns an Integer when f has zero fractional part (and
// is finite), else a Float — per spec.md §4.3's preserved-Integer rule
// for abs/max/min.
func intIfWhole(f float64) *value.Value {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return value.NewInt(int64(f))
	}
	return value.NewFloat(f)
}

func builtinLen(v *value.Value) *value.Value {
	switch v.Kind {
	case value.Array:
		return value.NewInt(int64(len(v.Arr)))
	case value.String:
		return value.NewInt(int64(len(v.S)))
	default:
		return value.NewInt(0)
	}
}

// ParseNumericLiteral parses tok as an Integer, else a Float, else keeps
// it as a String: the same fallback the ',' input opcode uses. Nothing
// in this module calls it; the debugger's print command resolves its
// operand through ResolveToken.
func ParseNumericLiteral(tok string) *value.Value {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return value.NewInt(n)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return value.NewFloat(f)
	}
	return value.NewString(tok)
}

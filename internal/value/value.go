// Package value implements the Sui runtime value model: a tagged union of
// Integer, Float, String, Array and Null, together with the arithmetic,
// comparison and coercion rules the interpreter and debugger share.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Array
	Null
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// Value is the Sui runtime value. Only one of the typed fields is
// meaningful, selected by Kind. Array holds its elements as pointers so
// that a slot reachable from two namespaces (e.g. a local alias of a
// global) observes in-place writes made through either reference.
type Value struct {
	Kind  Kind
	I     int64
	F     float64
	S     string
	Arr   []*Value
}

// Default is the zero value read back for an unset variable: Integer 0.
var Default = Value{Kind: Int}

// NewInt builds an Integer value.
func NewInt(n int64) *Value { return &Value{Kind: Int, I: n} }

// NewFloat builds a Float value.
func NewFloat(f float64) *Value { return &Value{Kind: Float, F: f} }

// NewString builds a String value.
func NewString(s string) *Value { return &Value{Kind: String, S: s} }

// NewArray builds an Array of the given length, every slot Integer 0.
func NewArray(n int) *Value {
	arr := make([]*Value, n)
	for i := range arr {
		arr[i] = NewInt(0)
	}
	return &Value{Kind: Array, Arr: arr}
}

// NewNull builds a Null value.
func NewNull() *Value { return &Value{Kind: Null} }

// Truthy implements spec truthiness: nonzero numbers, nonempty
// string/array, Null is always false.
func (v *Value) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case Int:
		return v.I != 0
	case Float:
		return v.F != 0
	case String:
		return v.S != ""
	case Array:
		return len(v.Arr) > 0
	default:
		return false
	}
}

// ToInt coerces a value to an integer the way the reference
// implementation does: numeric truncation, best-effort string parse
// (0 on failure), array length, Null -> 0.
func (v *Value) ToInt() int64 {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case Int:
		return v.I
	case Float:
		return int64(v.F)
	case String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case Array:
		return int64(len(v.Arr))
	default:
		return 0
	}
}

// ToFloat coerces a value to a float with the same fallbacks as ToInt.
func (v *Value) ToFloat() float64 {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case Int:
		return float64(v.I)
	case Float:
		return v.F
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.S), 64)
		if err != nil {
			return 0
		}
		return f
	case Array:
		return float64(len(v.Arr))
	default:
		return 0
	}
}

func isNumeric(v *Value) bool { return v.Kind == Int || v.Kind == Float }

// Add implements +: Integer+Integer stays Integer, any Float operand
// promotes to Float, String+String concatenates, everything else
// coerces through Float.
func Add(a, b *Value) *Value {
	switch {
	case a.Kind == Int && b.Kind == Int:
		return NewInt(a.I + b.I)
	case a.Kind == String && b.Kind == String:
		return NewString(a.S + b.S)
	case isNumeric(a) && isNumeric(b):
		return NewFloat(a.ToFloat() + b.ToFloat())
	default:
		return NewFloat(a.ToFloat() + b.ToFloat())
	}
}

// Sub implements -.
func Sub(a, b *Value) *Value {
	if a.Kind == Int && b.Kind == Int {
		return NewInt(a.I - b.I)
	}
	return NewFloat(a.ToFloat() - b.ToFloat())
}

// Mul implements *.
func Mul(a, b *Value) *Value {
	if a.Kind == Int && b.Kind == Int {
		return NewInt(a.I * b.I)
	}
	return NewFloat(a.ToFloat() * b.ToFloat())
}

// Div implements /: always Float, division by zero yields NaN rather
// than an error.
func Div(a, b *Value) *Value {
	divisor := b.ToFloat()
	if divisor == 0 {
		return NewFloat(math.NaN())
	}
	return NewFloat(a.ToFloat() / divisor)
}

// Mod implements %: exact for Integer/Integer, Float remainder
// otherwise, NaN on a zero divisor.
func Mod(a, b *Value) *Value {
	if a.Kind == Int && b.Kind == Int && b.I != 0 {
		return NewInt(a.I % b.I)
	}
	divisor := b.ToFloat()
	if divisor == 0 {
		return NewFloat(math.NaN())
	}
	return NewFloat(math.Mod(a.ToFloat(), divisor))
}

func boolInt(b bool) *Value {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

// Lt implements <.
func Lt(a, b *Value) *Value {
	switch {
	case a.Kind == Int && b.Kind == Int:
		return boolInt(a.I < b.I)
	case a.Kind == String && b.Kind == String:
		return boolInt(a.S < b.S)
	default:
		return boolInt(a.ToFloat() < b.ToFloat())
	}
}

// Gt implements >.
func Gt(a, b *Value) *Value {
	switch {
	case a.Kind == Int && b.Kind == Int:
		return boolInt(a.I > b.I)
	case a.Kind == String && b.Kind == String:
		return boolInt(a.S > b.S)
	default:
		return boolInt(a.ToFloat() > b.ToFloat())
	}
}

// Eq implements ~: exact for Integer/Integer and String/String,
// epsilon-tolerant for Float/Float, Null==Null is true, everything
// else compares as Float.
func Eq(a, b *Value) *Value {
	switch {
	case a.Kind == Int && b.Kind == Int:
		return boolInt(a.I == b.I)
	case a.Kind == Float && b.Kind == Float:
		return boolInt(math.Abs(a.F-b.F) < epsilon)
	case a.Kind == String && b.Kind == String:
		return boolInt(a.S == b.S)
	case a.Kind == Null && b.Kind == Null:
		return boolInt(true)
	default:
		return boolInt(a.ToFloat() == b.ToFloat())
	}
}

// epsilon matches the reference implementation's f64::EPSILON.
const epsilon = 2.220446049250313e-16

// Not implements !: truthy -> 0, falsy -> 1.
func Not(a *Value) *Value { return boolInt(!a.Truthy()) }

// And implements & as a truthiness-based logical and.
func And(a, b *Value) *Value { return boolInt(a.Truthy() && b.Truthy()) }

// Or implements | as a truthiness-based logical or.
func Or(a, b *Value) *Value { return boolInt(a.Truthy() || b.Truthy()) }

// Display renders a value the way `.` writes it to the output log:
// Integer as decimal, Float as "N.0" when its fractional part is
// zero (else Go's default float formatting), String raw, Array as
// "[v0, v1, ...]", Null as "null".
func (v *Value) Display() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.I, 10)
	case Float:
		if v.F == math.Trunc(v.F) && !math.IsInf(v.F, 0) && !math.IsNaN(v.F) {
			return fmt.Sprintf("%.1f", v.F)
		}
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case String:
		return v.S
	case Array:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Null:
		return "null"
	default:
		return ""
	}
}

// Clone returns a deep copy — used when a Value must be handed out
// without exposing the owning slot's backing array.
func (v *Value) Clone() *Value {
	if v == nil {
		return NewNull()
	}
	cp := *v
	if v.Kind == Array {
		cp.Arr = make([]*Value, len(v.Arr))
		for i, e := range v.Arr {
			cp.Arr[i] = e.Clone()
		}
	}
	return &cp
}

package interp

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runSource(t *testing.T, source string, args []string) []string {
	t.Helper()
	it := New(WithRandSource(rand.NewSource(1)))
	out, err := it.Run(source, args)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func TestFibonacci10(t *testing.T) {
	// fn0(n): if n<2 return n; return fn0(n-1)+fn0(n-2)
	src := `
# 0 1 {
< v0 a0 2
? v0 1
- v1 a0 1
$ v1 0 v1
- v2 a0 2
$ v2 0 v2
+ v3 v1 v2
^ v3
@ 2
: 1
^ a0
: 2
}
$ v0 0 10
. v0
`
	out := runSource(t, src, nil)
	if len(out) != 1 || out[0] != "55" {
		t.Fatalf("fib(10) output = %v, want [55]", out)
	}
}

func TestFizzBuzz(t *testing.T) {
	src := `
= v0 1
: 0
= v1 v0
% v1 v1 15
~ v1 v1 0
! v1 v1
? v1 10
. "FizzBuzz"
@ 99
: 10
= v2 v0
% v2 v2 3
~ v2 v2 0
! v2 v2
? v2 11
. "Fizz"
@ 99
: 11
= v3 v0
% v3 v3 5
~ v3 v3 0
! v3 v3
? v3 12
. "Buzz"
@ 99
: 12
. v0
: 99
+ v0 v0 1
< v4 v0 16
? v4 0
`
	out := runSource(t, src, nil)
	if len(out) != 15 {
		t.Fatalf("fizzbuzz produced %d lines, want 15: %v", len(out), out)
	}
	if out[2] != "Fizz" || out[4] != "Buzz" || out[14] != "FizzBuzz" {
		t.Errorf("fizzbuzz output = %v", out)
	}
}

func TestArgsPassThrough(t *testing.T) {
	src := `
. g100
. g101
. g102
`
	out := runSource(t, src, []string{"42", "hello"})
	if strings.Join(out, "|") != "2|42|hello" {
		t.Fatalf("args output = %v", out)
	}
}

func TestArrayAccumulator(t *testing.T) {
	src := `
[ v0 5
= v1 0
: 0
{ v0 v1 v1
+ v1 v1 1
< v2 v1 5
? v2 0
= v3 0
= v4 0
: 1
] v5 v0 v4
+ v3 v3 v5
+ v4 v4 1
< v6 v4 5
? v6 1
. v3
`
	out := runSource(t, src, nil)
	if len(out) != 1 || out[0] != "10" {
		t.Fatalf("array accumulator output = %v, want [10]", out)
	}
}

func TestBuiltinSqrt(t *testing.T) {
	src := `
R v0 "sqrt" 16
. v0
`
	out := runSource(t, src, nil)
	if len(out) != 1 || out[0] != "4.0" {
		t.Fatalf("sqrt output = %v, want [4.0]", out)
	}
}

func TestUnknownBuiltinWarns(t *testing.T) {
	var logged strings.Builder
	it := New(WithLogger(newTestLogger(&logged)))
	out, err := it.Run(`
R v0 "frobnicate" 1 2
. v0
`, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 1 || out[0] != "0" {
		t.Fatalf("unknown builtin output = %v, want [0]", out)
	}
	if !strings.Contains(logged.String(), "frobnicate") {
		t.Errorf("expected warning to mention frobnicate, got %q", logged.String())
	}
}

func TestDivByZeroIsFloatNaN(t *testing.T) {
	out := runSource(t, `
/ v0 1 0
. v0
`, nil)
	if out[0] != "NaN" {
		t.Fatalf("div by zero output = %v, want NaN", out)
	}
}

func TestStackOverflow(t *testing.T) {
	src := `
# 0 0 {
$ v0 0
^ v0
}
$ v0 0
`
	it := New(WithMaxStackDepth(10))
	_, err := it.Run(src, nil)
	if err == nil {
		t.Fatalf("expected stack overflow error")
	}
	re, ok := err.(*RuntimeError)
	if !ok || re.Kind != ErrStackOverflow {
		t.Errorf("err = %v, want ErrStackOverflow", err)
	}
}

func TestArrayOutOfRangeReadIsZeroWriteIsNoop(t *testing.T) {
	out := runSource(t, `
[ v0 3
] v1 v0 10
. v1
{ v0 10 99
] v2 v0 0
. v2
`, nil)
	if out[0] != "0" || out[1] != "0" {
		t.Fatalf("out-of-range array access = %v", out)
	}
}

func TestRoundWithoutDecimalsReturnsInteger(t *testing.T) {
	out := runSource(t, `
R v0 "round" 2.6
. v0
`, nil)
	if len(out) != 1 || out[0] != "3" {
		t.Fatalf("round(2.6) output = %v, want [3]", out)
	}
}

func TestRoundWithZeroDecimalsStillReturnsFloat(t *testing.T) {
	out := runSource(t, `
R v0 "round" 2.6 0
. v0
`, nil)
	if len(out) != 1 || out[0] != "3.0" {
		t.Fatalf("round(2.6, 0) output = %v, want [3.0]", out)
	}
}

// TestAbsMaxMinPreserveIntegerOnWholeResult covers spec.md §4.3's rule
// that abs/max/min preserve an Integer result whenever the computed
// numeric result has zero fractional part, regardless of whether the
// arguments were Integer or Float: abs(-4.0) and max(3.0, 5.0) both
// land on Integer, while a genuinely fractional result stays Float.
func TestAbsMaxMinPreserveIntegerOnWholeResult(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"abs of negative float with whole result", `R v0 "abs" -4.0` + "\n. v0\n", "4"},
		{"abs of negative integer", `R v0 "abs" -4` + "\n. v0\n", "4"},
		{"abs of fractional float stays float", `R v0 "abs" -4.5` + "\n. v0\n", "4.5"},
		{"max of two floats with whole result", `R v0 "max" 3.0 5.0` + "\n. v0\n", "5"},
		{"max of mixed int/float with whole result", `R v0 "max" 3 5.0` + "\n. v0\n", "5"},
		{"max of floats with fractional result stays float", `R v0 "max" 3.0 5.5` + "\n. v0\n", "5.5"},
		{"min of two floats with whole result", `R v0 "min" 3.0 5.0` + "\n. v0\n", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runSource(t, tt.src, nil)
			assert.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0])
		})
	}
}

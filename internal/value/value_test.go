package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want bool
	}{
		{"zero int", NewInt(0), false},
		{"nonzero int", NewInt(1), true},
		{"zero float", NewFloat(0), false},
		{"nonzero float", NewFloat(0.5), true},
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("x"), true},
		{"empty array", NewArray(0), false},
		{"nonempty array", NewArray(1), true},
		{"null", NewNull(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArithmeticCoercion(t *testing.T) {
	if got := Add(NewInt(2), NewInt(3)); got.Kind != Int || got.I != 5 {
		t.Errorf("Add(int,int) = %+v", got)
	}
	if got := Add(NewInt(2), NewFloat(3.5)); got.Kind != Float || got.F != 5.5 {
		t.Errorf("Add(int,float) = %+v", got)
	}
	if got := Add(NewString("foo"), NewString("bar")); got.Kind != String || got.S != "foobar" {
		t.Errorf("Add(string,string) = %+v", got)
	}
	if got := Add(NewString("1"), NewInt(2)); got.Kind != Float {
		t.Errorf("Add(string,int) should coerce to float, got %+v", got)
	}
}

func TestDivByZeroIsNaN(t *testing.T) {
	got := Div(NewInt(1), NewInt(0))
	if got.Kind != Float || !math.IsNaN(got.F) {
		t.Errorf("Div by zero = %+v, want NaN", got)
	}
}

func TestModByZeroIsNaN(t *testing.T) {
	got := Mod(NewInt(1), NewInt(0))
	if got.Kind != Float || !math.IsNaN(got.F) {
		t.Errorf("Mod by zero = %+v, want NaN", got)
	}
	exact := Mod(NewInt(7), NewInt(3))
	if exact.Kind != Int || exact.I != 1 {
		t.Errorf("Mod(7,3) = %+v, want Integer 1", exact)
	}
}

func TestComparisons(t *testing.T) {
	if got := Lt(NewInt(1), NewInt(2)); got.I != 1 {
		t.Errorf("Lt(1,2) = %v", got.I)
	}
	if got := Gt(NewString("b"), NewString("a")); got.I != 1 {
		t.Errorf("Gt(b,a) = %v", got.I)
	}
	if got := Eq(NewNull(), NewNull()); got.I != 1 {
		t.Errorf("Eq(null,null) = %v", got.I)
	}
	if got := Eq(NewFloat(1.0), NewFloat(1.0+1e-18)); got.I != 1 {
		t.Errorf("Eq(float,float within epsilon) = %v", got.I)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{NewInt(42), "42"},
		{NewFloat(4.0), "4.0"},
		{NewFloat(4.5), "4.5"},
		{NewString("hi"), "hi"},
		{NewNull(), "null"},
	}
	for _, tt := range tests {
		if got := tt.v.Display(); got != tt.want {
			t.Errorf("Display() = %q, want %q", got, tt.want)
		}
	}

	arr := NewArray(0)
	arr.Arr = append(arr.Arr, NewInt(1), NewInt(2))
	if got := arr.Display(); got != "[1, 2]" {
		t.Errorf("Display(array) = %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	arr := NewArray(1)
	clone := arr.Clone()
	clone.Arr[0] = NewInt(99)
	if arr.Arr[0].I == 99 {
		t.Errorf("Clone aliased the backing array")
	}
}

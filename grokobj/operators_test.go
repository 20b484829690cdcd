package grokobj

import (
	"math"
	"testing"
)

func TestBinaryOperators(t *testing.T) {
	cases := []struct {
		name string
		fn   BinaryFunc
		l, r *Object
		want string
	}{
		{"add numbers", Add, Number(2), Number(3), "5"},
		{"add string left", Add, String("a"), Number(1), "a1"},
		{"add string right", Add, Number(1), String("a"), "1a"},
		{"add undefined", Add, Number(1), Undefined(), "NaN"},
		{"add undefined string", Add, String("a"), Undefined(), "aundefined"},
		{"add null", Add, Number(1), Null(), "1"},
		{"add object", Add, NewObject(), Number(1), "NaN"},
		{"sub", Sub, Number(5), Number(7), "-2"},
		{"sub numeric strings", Sub, String("5"), String("2"), "3"},
		{"mul", Mul, Number(3), Number(5), "15"},
		{"div", Div, Number(7), Number(2), "3.5"},
		{"div zero", Div, Number(1), Number(0), "Infinity"},
		{"rem", Rem, Number(7), Number(3), "1"},
		{"rem negative", Rem, Number(-7), Number(3), "-1"},
		{"lt", Lt, Number(1), Number(2), "1"},
		{"lt strings", Lt, String("b"), String("a"), "0"},
		{"lt mixed", Lt, String("10"), Number(9), "0"},
		{"lt nan", Lt, Undefined(), Number(1), "0"},
		{"gt", Gt, Number(2), Number(1), "1"},
		{"le", Le, Number(2), Number(2), "1"},
		{"ge", Ge, Number(1), Number(2), "0"},
		{"eq numbers", Eq, Number(1), Number(1), "1"},
		{"eq number string", Eq, Number(1), String("1"), "1"},
		{"eq null undefined", Eq, Null(), Undefined(), "1"},
		{"eq null zero", Eq, Null(), Number(0), "0"},
		{"ne", Ne, String("a"), String("b"), "1"},
		{"shl", Shl, Number(1), Number(4), "16"},
		{"shl wraps count", Shl, Number(1), Number(33), "2"},
		{"shr", Shr, Number(-16), Number(2), "-4"},
		{"bor", BitOr, Number(5), Number(2), "7"},
		{"band", BitAnd, Number(6), Number(3), "2"},
		{"xor", BitXor, Number(6), Number(3), "5"},
		{"or", LogicalOr, Number(0), String("x"), "1"},
		{"or falsy", LogicalOr, Number(0), String(""), "0"},
		{"and", LogicalAnd, Number(2), Number(3), "1"},
		{"and falsy", LogicalAnd, Number(2), Null(), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.fn(c.l, c.r)
			if str := ToString(got); str != c.want {
				t.Fatalf("got %q, want %q", str, c.want)
			}
		})
	}
}

func TestEqualIdentity(t *testing.T) {
	a := NewObject()
	b := Copy(a)
	if !Equal(a, b) {
		t.Fatal("copies of the same object should be equal")
	}
	if Equal(a, NewObject()) {
		t.Fatal("distinct objects should not be equal")
	}
	nan := Number(math.NaN())
	if Equal(nan, nan) {
		t.Fatal("NaN should not equal itself")
	}
}

package grokobj

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	falsy := []*Object{
		NumberFromBool(false),
		Number(0),
		Number(math.NaN()),
		String(""),
		Null(),
		Undefined(),
	}
	for _, o := range falsy {
		if Truthy(o) {
			t.Fatalf("%v should be falsy", o)
		}
	}
	truthy := []*Object{
		NumberFromBool(true),
		Number(1),
		Number(-0.5),
		String("x"),
		String("0"),
		NewObject(),
		NewArray(0),
		NewFunction(&Function{Name: "f"}),
	}
	for _, o := range truthy {
		if !Truthy(o) {
			t.Fatalf("%v should be truthy", o)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{17, "17"},
		{-3, "-3"},
		{0.1, "0.1"},
		{2.5, "2.5"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{0.000001, "0.000001"},
		{123456789012, "123456789012"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.Copysign(0, -1), "0"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Fatalf("FormatNumber(%v): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	if n := ToNumber(Null()); n != 0 {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(Undefined()); !math.IsNaN(n) {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(String(" 42 ")); n != 42 {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(String("")); n != 0 {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(String("abc")); !math.IsNaN(n) {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(String("0x10")); !math.IsNaN(n) {
		t.Fatalf("got %v", n)
	}
	if n := ToNumber(NewObject()); !math.IsNaN(n) {
		t.Fatalf("got %v", n)
	}
}

func TestReparse(t *testing.T) {
	if o := Reparse(String("41")); o.Kind() != KindNumber || o.Number() != 41 {
		t.Fatalf("got %v", o)
	}
	if o := Reparse(Number(2.5)); o.Number() != 2.5 {
		t.Fatalf("got %v", o)
	}
	if o := Reparse(String("abc")); !IsUndefined(o) {
		t.Fatalf("got %v", o)
	}
	if o := Reparse(Undefined()); !IsUndefined(o) {
		t.Fatalf("got %v", o)
	}
}

func TestToInt32(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{1.9, 1},
		{-1.9, -1},
		{4294967296, 0},
		{2147483648, -2147483648},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, c := range cases {
		if got := ToInt32(c.in); got != c.want {
			t.Fatalf("ToInt32(%v): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestArrayToString(t *testing.T) {
	arr := NewArray(3)
	arr.Array().Assign(0, Number(1))
	arr.Array().Assign(2, String("x"))
	if str := ToString(arr); str != "1,,x" {
		t.Fatalf("got %q", str)
	}
}

func TestCyclicArrayToString(t *testing.T) {
	self := NewArray(2)
	self.Array().Assign(0, Number(1))
	self.Array().Assign(1, self)
	if str := ToString(self); str != "1," {
		t.Fatalf("got %q", str)
	}

	a := NewArray(2)
	b := NewArray(2)
	a.Array().Assign(0, b)
	a.Array().Assign(1, Number(1))
	b.Array().Assign(0, a)
	b.Array().Assign(1, Number(2))
	if str := ToString(a); str != ",2,1" {
		t.Fatalf("got %q", str)
	}
	if str := ToString(Add(b, String(""))); str != ",1,2" {
		t.Fatalf("got %q", str)
	}

	// shared but acyclic elements are joined every time
	shared := NewArray(1)
	shared.Array().Assign(0, Number(3))
	pair := NewArray(2)
	pair.Array().Assign(0, shared)
	pair.Array().Assign(1, shared)
	if str := ToString(pair); str != "3,3" {
		t.Fatalf("got %q", str)
	}
}

func TestResetKeepsWritability(t *testing.T) {
	o := Number(1)
	o.SetWritable(false)
	o.Reset(String("x"))
	if o.IsWritable() {
		t.Fatal("writability changed")
	}
	if o.Str() != "x" {
		t.Fatalf("got %v", o)
	}
	c := Copy(o)
	if !c.IsWritable() {
		t.Fatal("copy should be writable")
	}
}

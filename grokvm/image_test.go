package grokvm_test

import (
	"testing"

	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

func TestProgramImage(t *testing.T) {
	program, err := grokasm.ParseString(`
		.entry main
	f:
		fetch a
		pushim
		push 1
		adds
		ret
	main:
		push func f(a) @f
		push 41
		call 1
		push func f
		push "x"
		call 1
		push true
		push null
		push 1.5
		jmpz @end
	end:
	`)
	if err != nil {
		t.Fatal(err)
	}

	data, err := grokvm.MarshalProgram(program)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := grokvm.UnmarshalProgram(data)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.Start != program.Start || decoded.End != program.End {
		t.Fatalf("got %v %v", decoded.Start, decoded.End)
	}
	if len(decoded.Code) != len(program.Code) {
		t.Fatalf("got %v", len(decoded.Code))
	}
	for i, inst := range program.Code {
		if got := decoded.Code[i].String(); got != inst.String() {
			t.Fatalf("pc %d: got %q, expected %q", i, got, inst.String())
		}
	}

	// shared function objects stay shared
	first := decoded.Code[program.Start].Datum.Obj
	second := decoded.Code[program.Start+3].Datum.Obj
	if first != second {
		t.Fatal("function identity lost")
	}
	fn := first.Function()
	if fn.Name != "f" || fn.Entry != 0 || len(fn.Params) != 1 {
		t.Fatalf("got %+v", fn)
	}

	// deterministic encoding
	again, err := grokvm.MarshalProgram(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(data) {
		t.Fatal("encoding is not deterministic")
	}

	m := newMachine(t, "noop", nil)
	m.Load(decoded)
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	m.GetResult()
	m.GetResult()
	m.GetResult()
	if res := m.GetResult(); res.Str() != "x1" {
		t.Fatalf("got %v", res)
	}
	if res := m.GetResult(); res.Number() != 42 {
		t.Fatalf("got %v", res)
	}
}

func TestProgramImageRejectsNative(t *testing.T) {
	program := grokvm.NewProgram([]grokvm.Instruction{
		{
			Op: grokvm.OpPush,
			Datum: grokvm.ObjectDatum(grokobj.NewFunction(&grokobj.Function{
				Name: "native",
				Native: func(args []*grokobj.Object, this *grokobj.Object) (*grokobj.Object, error) {
					return nil, nil
				},
			})),
		},
	})
	if _, err := grokvm.MarshalProgram(program); err == nil {
		t.Fatal("expected error")
	}
}

func TestProgramImageBadData(t *testing.T) {
	if _, err := grokvm.UnmarshalProgram([]byte("foo")); err == nil {
		t.Fatal("expected error")
	}
}

package debugs

import (
	"testing"

	"github.com/reusee/grok/grokenv"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
	"go.starlark.net/starlark"
)

func TestObjectToStarlark(t *testing.T) {
	obj := grokobj.NewObject()
	grokobj.SetProperty(obj, "n", grokobj.Number(1))
	grokobj.SetProperty(obj, "s", grokobj.String("foo"))
	grokobj.SetProperty(obj, "self", obj)
	array := grokobj.NewArray(2)
	array.Array().Assign(0, grokobj.Number(2))
	grokobj.SetProperty(obj, "array", array)

	value := toStarlarkValue(obj)
	dict, ok := value.(*starlark.Dict)
	if !ok {
		t.Fatalf("got %T", value)
	}

	get := func(key string) starlark.Value {
		v, found, err := dict.Get(starlark.String(key))
		if err != nil || !found {
			t.Fatalf("%s not found", key)
		}
		return v
	}
	if v := get("n"); v != starlark.Float(1) {
		t.Fatalf("got %v", v)
	}
	if v := get("s"); v != starlark.String("foo") {
		t.Fatalf("got %v", v)
	}
	if v := get("self"); v != starlark.String("[circular]") {
		t.Fatalf("got %v", v)
	}
	list, ok := get("array").(*starlark.List)
	if !ok || list.Len() != 2 {
		t.Fatalf("got %v", get("array"))
	}
	if list.Index(0) != starlark.Float(2) || list.Index(1) != starlark.None {
		t.Fatalf("got %v", list)
	}

	if v := toStarlarkValue((*grokobj.Object)(nil)); v != starlark.None {
		t.Fatalf("got %v", v)
	}
}

func TestMachineGlobals(t *testing.T) {
	store := grokenv.New()
	vm := grokvm.New(store, nil)
	vm.Load(grokvm.NewProgram([]grokvm.Instruction{
		{Op: grokvm.OpPush, Datum: grokvm.NumberDatum(1)},
		{Op: grokvm.OpPush, Datum: grokvm.NumberDatum(0)},
	}))
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	store.Define("x", grokobj.Number(42))

	globals := MachineGlobals(vm)
	if globals["pc"] != 2 {
		t.Fatalf("got %v", globals["pc"])
	}
	stack := globals["stack"].([]any)
	if len(stack) != 2 {
		t.Fatalf("got %v", stack)
	}
	flags := globals["flags"].([]string)
	if len(flags) != 1 || flags[0] != "zero" {
		t.Fatalf("got %v", flags)
	}

	mappings := make(starlark.StringDict)
	for name, value := range globals {
		mappings[name] = toStarlarkValue(value)
	}
	thread := &starlark.Thread{Name: "test"}
	res, err := starlark.ExecFile(thread, "test.star", `
first = disasm(0)
missing = disasm(100)
x = lookup("x")
depth = len(stack)
`, mappings)
	if err != nil {
		t.Fatal(err)
	}
	if res["first"] != starlark.String(vm.Code[0].String()) {
		t.Fatalf("got %v", res["first"])
	}
	if res["missing"] != starlark.String("") {
		t.Fatalf("got %v", res["missing"])
	}
	if res["x"] != starlark.String("42") {
		t.Fatalf("got %v", res["x"])
	}
	if n, _ := starlark.AsInt32(res["depth"]); n != 2 {
		t.Fatalf("got %v", res["depth"])
	}
}

package grokrun

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokconfigs"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
	"github.com/reusee/grok/logs"
	"github.com/reusee/grok/modes"
)

func testScope(t *testing.T, stdout io.Writer) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() logs.Writer {
			return io.Discard
		},
		func() Stdout {
			return stdout
		},
	)
}

func mustParse(t *testing.T, src string) *grokvm.Program {
	t.Helper()
	p, err := grokasm.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExecute(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		ctx := context.Background()

		_, err := execute(ctx, machine, mustParse(t, `
			fetch print
			pushim
			push "hello"
			push 42
			call 2
		`))
		if err != nil {
			t.Fatal(err)
		}
		if buf.String() != "hello 42\n" {
			t.Fatalf("got %q", buf.String())
		}

		// globals survive across executions
		machine.Store.Define("x", grokobj.Number(1))
		ret, err := execute(ctx, machine, mustParse(t, `
			fetch x
			pushim
			push 2
			adds
		`))
		if err != nil {
			t.Fatal(err)
		}
		if grokobj.ToNumber(ret) != 3 {
			t.Fatalf("got %v", ret)
		}
	})
}

func TestExecuteRuntimeError(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		ret, err := execute(context.Background(), machine, mustParse(t, `
			push 1
			fetch missing
		`))
		if err == nil {
			t.Fatal("should error")
		}
		if ret != nil {
			t.Fatalf("got %v", ret)
		}
		if !strings.Contains(err.Error(), "missing is not defined") {
			t.Fatalf("got %v", err)
		}
		// reset after failure
		if len(machine.VM.Stack) != 0 || machine.VM.Current != machine.VM.Start {
			t.Fatalf("got %v %v", machine.VM.Stack, machine.VM.Current)
		}

		// still usable
		ret, err = execute(context.Background(), machine, mustParse(t, `push 5`))
		if err != nil {
			t.Fatal(err)
		}
		if grokobj.ToNumber(ret) != 5 {
			t.Fatalf("got %v", ret)
		}
	})
}

func TestExecuteBytecodeFault(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		_, err := execute(context.Background(), machine, mustParse(t, `
			push 1
			pushim
		`))
		if err == nil {
			t.Fatal("should error")
		}
		if !strings.Contains(err.Error(), "pushim with an empty accumulator") {
			t.Fatalf("got %v", err)
		}
	})
}

func TestFrameLimitConfig(t *testing.T) {
	testScope(t, io.Discard).Fork(
		func() configs.Loader {
			dir := t.TempDir()
			path := filepath.Join(dir, "grok.cue")
			if err := os.WriteFile(path, []byte("frame_limit: 4\n"), 0644); err != nil {
				t.Fatal(err)
			}
			return configs.NewLoader([]string{path}, "")
		},
	).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		_, err := execute(context.Background(), machine, mustParse(t, `
			.entry start
		f:	fetch f
			pushim
			call 0
			ret
		start:
			news f
			push func f() @f
			fetch f
			pushim
			store
			fetch f
			pushim
			call 0
		`))
		if err == nil {
			t.Fatal("should error")
		}
		if !strings.Contains(err.Error(), grokvm.ErrFrameLimit.Error()) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestTrace(t *testing.T) {
	trace := new(bytes.Buffer)
	testScope(t, io.Discard).Fork(
		func() TraceWriter {
			return trace
		},
		func() configs.Loader {
			dir := t.TempDir()
			path := filepath.Join(dir, "grok.cue")
			if err := os.WriteFile(path, []byte("trace_execution: true\n"), 0644); err != nil {
				t.Fatal(err)
			}
			return configs.NewLoader([]string{path}, "")
		},
	).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		_, err := execute(context.Background(), newMachine(), mustParse(t, `
			push 1
			push 2
		`))
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %q", trace.String())
		}
		if !strings.HasPrefix(lines[0], "push") {
			t.Fatalf("got %q", lines[0])
		}
	})
}

func TestLoadProgram(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		load LoadProgram,
	) {
		dir := t.TempDir()

		src := filepath.Join(dir, "prog.s")
		if err := os.WriteFile(src, []byte("push 1\npush 2\nadds\n"), 0644); err != nil {
			t.Fatal(err)
		}
		program, err := load(src)
		if err != nil {
			t.Fatal(err)
		}
		if len(program.Code) != 3 {
			t.Fatalf("got %v", program.Code)
		}

		image, err := grokvm.MarshalProgram(program)
		if err != nil {
			t.Fatal(err)
		}
		compiled := filepath.Join(dir, "prog"+ImageExt)
		if err := os.WriteFile(compiled, image, 0644); err != nil {
			t.Fatal(err)
		}
		loaded, err := load(compiled)
		if err != nil {
			t.Fatal(err)
		}
		if len(loaded.Code) != 3 || loaded.Code[2].Op != grokvm.OpAdds {
			t.Fatalf("got %v", loaded.Code)
		}

		if _, err := load(filepath.Join(dir, "missing.s")); err == nil {
			t.Fatal("should error")
		}
	})
}

func TestExecuteFiles(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		executeFiles ExecuteFiles,
	) {
		dir := t.TempDir()
		write := func(name, src string) string {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(src), 0644); err != nil {
				t.Fatal(err)
			}
			return path
		}
		pass := write("pass.s", `
			fetch assert_equal
			pushim
			push 1
			push true
			call 2
		`)
		fail := write("fail.s", `
			fetch assert_equal
			pushim
			push 1
			push 2
			call 2
		`)

		if err := executeFiles(context.Background(), []string{pass, pass, pass}); err != nil {
			t.Fatal(err)
		}

		err := executeFiles(context.Background(), []string{pass, fail, pass})
		if err == nil {
			t.Fatal("should error")
		}
		if !strings.Contains(err.Error(), "fail.s") || strings.Contains(err.Error(), "pass.s") {
			t.Fatalf("got %v", err)
		}
	})
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.s")
	if err := os.WriteFile(lib, []byte(`
		news answer
		push 42
		fetch answer
		pushim
		store
	`), 0644); err != nil {
		t.Fatal(err)
	}

	testScope(t, io.Discard).Fork(
		func() grokconfigs.Preload {
			return grokconfigs.Preload{lib}
		},
	).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		ret, err := execute(context.Background(), machine, mustParse(t, `
			fetch answer
			pushim
		`))
		if err != nil {
			t.Fatal(err)
		}
		if grokobj.ToNumber(ret) != 42 {
			t.Fatalf("got %v", ret)
		}
		if len(machine.VM.Stack) != 0 {
			t.Fatalf("got %v", machine.VM.Stack)
		}
	})
}

func TestExecuteFaultInCall(t *testing.T) {
	testScope(t, io.Discard).Call(func(
		newMachine NewMachine,
		execute Execute,
	) {
		machine := newMachine()
		_, err := execute(context.Background(), machine, mustParse(t, `
			.entry start
		f:	fetch nope
			pushim
			ret
		start:
			push func f(a) @f
			push 42
			call 1
		`))
		if err == nil {
			t.Fatal("should error")
		}
		if machine.Store.Depth() != 0 {
			t.Fatalf("got %v", machine.Store.Depth())
		}

		_, err = execute(context.Background(), machine, mustParse(t, `
			fetch a
			pushim
		`))
		if err == nil || !strings.Contains(err.Error(), "a is not defined") {
			t.Fatalf("got %v", err)
		}
	})
}

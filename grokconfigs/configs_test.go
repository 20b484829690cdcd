package grokconfigs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/modes"
)

func TestConfigs(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return ConfigPaths{"testdata/grok.cue"}
		},
	).Call(func(
		trace TraceExecution,
		capacity StackCapacity,
		limit FrameLimit,
		tap TapOnFault,
	) {
		if !trace {
			t.Fatal("expected trace")
		}
		if limit != 64 {
			t.Fatalf("got %v", limit)
		}
		if capacity <= 0 {
			t.Fatalf("got %v", capacity)
		}
		if tap {
			t.Fatal("unexpected tap")
		}
	})
}

func TestSchema(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/bad.cue"}, schema)
	var n int
	if err := loader.AssignFirst("frame_limit", &n); err == nil {
		t.Fatal("should error")
	}
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	first := write("first.cue", `preload: ["a.s", "b.s"]`)
	second := write("second.cue", `preload: ["c.s"]`)
	empty := write("empty.cue", `jobs: 2`)

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() ConfigPaths {
			return ConfigPaths{first, empty, second}
		},
	).Call(func(
		preload Preload,
		jobs Jobs,
	) {
		if str := fmt.Sprintf("%v", preload); str != "[a.s b.s c.s]" {
			t.Fatalf("got %s", str)
		}
		if jobs != 2 {
			t.Fatalf("got %v", jobs)
		}
	})
}

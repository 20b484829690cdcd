package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokrun"
	"github.com/reusee/grok/grokvm"
	"github.com/reusee/grok/logs"
	"github.com/reusee/grok/modes"
)

var (
	wrap = e5.Wrap.With(e5.WrapStacktrace)

	runPath  = cmds.Var[string]("run")
	disPath  = cmds.Var[string]("dis")
	replMode = cmds.Switch("repl")

	buildIn, buildOut string
)

// repeated: check a.s check b.s
var checkPaths = cmds.Collect[string]("check")

func init() {
	cmds.Define("build", cmds.Func(func(in, out string) {
		buildIn = in
		buildOut = out
	}).Desc("assemble a program and write its image"))
}

type Module struct {
	dscope.Module
	Run grokrun.Module
}

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		load grokrun.LoadProgram,
		newMachine grokrun.NewMachine,
		execute grokrun.Execute,
		executeFiles grokrun.ExecuteFiles,
	) {
		ctx := context.Background()

		switch {

		case *runPath != "":
			program, err := load(*runPath)
			ce(err)
			ret, err := execute(ctx, newMachine(), program)
			ce(err)
			logger.DebugContext(ctx, "result",
				"value", grokobj.ToString(ret),
			)

		case buildIn != "":
			program, err := load(buildIn)
			ce(err)
			image, err := grokvm.MarshalProgram(program)
			ce(err)
			ce(os.WriteFile(buildOut, image, 0644))
			logger.Info("image written",
				"path", buildOut,
				"instructions", len(program.Code),
			)

		case *disPath != "":
			program, err := load(*disPath)
			ce(err)
			fmt.Print(grokasm.Disassemble(program))

		case len(*checkPaths) > 0:
			ce(executeFiles(ctx, *checkPaths))

		case *replMode:
			runREPL(ctx, newMachine(), execute)

		default:
			cmds.GlobalExecutor.PrintUsage()
		}

	})
}

func ce(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", wrap(err))
		os.Exit(-1)
	}
}

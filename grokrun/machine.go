package grokrun

import (
	"github.com/reusee/grok/grokbuiltins"
	"github.com/reusee/grok/grokconfigs"
	"github.com/reusee/grok/grokenv"
	"github.com/reusee/grok/grokvm"
	"github.com/reusee/grok/logs"
)

// Machine is an engine bound to its scope store. Globals defined in Store
// survive across executions.
type Machine struct {
	VM    *grokvm.VM
	Store *grokenv.Store

	preloaded bool
}

type NewMachine func() *Machine

func (Module) NewMachine(
	logger logs.Logger,
	stdout Stdout,
	traceWriter TraceWriter,
	trace grokconfigs.TraceExecution,
	capacity grokconfigs.StackCapacity,
	limit grokconfigs.FrameLimit,
) NewMachine {
	return func() *Machine {
		store := grokenv.New()
		options := &grokvm.Options{
			Logger:        logger,
			StackCapacity: int(capacity),
			FrameLimit:    int(limit),
		}
		if trace {
			options.Trace = traceWriter
		}
		vm := grokvm.New(store, options)
		grokbuiltins.Install(store, vm, &grokbuiltins.Options{
			Stdout: stdout,
		})
		return &Machine{
			VM:    vm,
			Store: store,
		}
	}
}

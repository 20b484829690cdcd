package grokrun

import (
	"context"

	"github.com/reusee/grok/debugs"
	"github.com/reusee/grok/grokconfigs"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
	"github.com/reusee/grok/logs"
	"github.com/reusee/grok/modes"
)

// Execute loads program into machine, runs it to the end and returns the
// operand stack top. The first execution on a machine runs the preload files. Bytecode faults are returned as *grokvm.BytecodeFault.
// A failed machine is reset before Execute returns.
type Execute func(ctx context.Context, machine *Machine, program *grokvm.Program) (*grokobj.Object, error)

func (Module) Execute(
	logger logs.Logger,
	newSpan logs.NewSpan,
	tap debugs.Tap,
	tapOnFault grokconfigs.TapOnFault,
	preload grokconfigs.Preload,
	load LoadProgram,
	mode modes.Mode,
) Execute {
	return func(ctx context.Context, machine *Machine, program *grokvm.Program) (ret *grokobj.Object, err error) {
		ctx, _ = newSpan(ctx, "")
		vm := machine.VM

		defer func() {
			if p := recover(); p != nil {
				fault, ok := p.(*grokvm.BytecodeFault)
				if !ok {
					panic(p)
				}
				err = fault
			}
			if err == nil {
				return
			}
			logger.ErrorContext(ctx, "execution failed",
				"err", err,
				"pc", vm.Current,
			)
			if tapOnFault {
				tap(ctx, "fault", debugs.MachineGlobals(vm))
			}
			vm.Reset()
			ret = nil
			err = logs.WrapSpan(ctx, wrap(err))
		}()

		if !machine.preloaded {
			machine.preloaded = true
			for _, path := range preload {
				p, err := load(path)
				if err != nil {
					return nil, err
				}
				vm.Load(p)
				if err := vm.Run(); err != nil {
					return nil, err
				}
				vm.Reset()
				logger.DebugContext(ctx, "preloaded",
					"path", path,
				)
			}
		}

		vm.Load(program)
		logger.DebugContext(ctx, "execute",
			"start", program.Start,
			"end", program.End,
		)
		if err := vm.Run(); err != nil {
			return nil, err
		}

		if mode == modes.ModeDevelopment && len(vm.Frames) > 0 {
			logger.WarnContext(ctx, "unreturned call frames",
				"frames", len(vm.Frames),
			)
		}

		return vm.GetResult(), nil
	}
}

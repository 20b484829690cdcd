package debugs

import (
	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

// MachineGlobals exposes the engine registers and stacks to a tap session.
// Stack tops are last.
func MachineGlobals(vm *grokvm.VM) map[string]any {
	stack := make([]any, 0, len(vm.Stack))
	for _, value := range vm.Stack {
		slot := map[string]any{
			"value": value.O,
		}
		if value.Key != "" {
			slot["key"] = value.Key
		}
		stack = append(stack, slot)
	}

	var flags []string
	if vm.Flags&grokvm.ZeroFlag != 0 {
		flags = append(flags, "zero")
	}
	if vm.Flags&grokvm.ConstructorCall != 0 {
		flags = append(flags, "constructor_call")
	}

	return map[string]any{
		"pc":         vm.Current,
		"start":      vm.Start,
		"end":        vm.End,
		"flags":      flags,
		"ac":         vm.AC,
		"stack":      stack,
		"this_stack": vm.TStack,
		"frames":     vm.Frames,
		"this":       vm.This(),

		"disasm": func(pc int) string {
			if pc < 0 || pc >= len(vm.Code) {
				return ""
			}
			return vm.Code[pc].String()
		},

		"listing": func() string {
			return grokasm.Disassemble(&grokvm.Program{
				Code:  vm.Code,
				Start: vm.Start,
				End:   vm.End,
			})
		},

		"lookup": func(name string) string {
			v, err := vm.Scope().GetValue(name)
			if err != nil {
				return err.Error()
			}
			return grokobj.ToString(v)
		},
	}
}

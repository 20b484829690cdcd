package grokconfigs

import (
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/vars"
)

// StackCapacity is the initial capacity of the operand and this stacks.
type StackCapacity int

var _ configs.Configurable = StackCapacity(0)

func (StackCapacity) ConfigPath() string {
	return "stack_capacity"
}

const defaultStackCapacity = 256

var stackCapacityFlag = cmds.Var[int]("-stack-capacity")

func (Module) StackCapacity(
	loader configs.Loader,
) StackCapacity {
	return StackCapacity(vars.FirstNonZero(
		*stackCapacityFlag,
		int(configs.Lookup[StackCapacity](loader)),
		defaultStackCapacity,
	))
}

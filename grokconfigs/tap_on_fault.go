package grokconfigs

import (
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
)

// TapOnFault opens a starlark tap over the machine state when a run faults.
type TapOnFault bool

var _ configs.Configurable = TapOnFault(false)

func (TapOnFault) ConfigPath() string {
	return "tap_on_fault"
}

var tapFlag = cmds.Switch("-tap")

func (Module) TapOnFault(
	loader configs.Loader,
) TapOnFault {
	if *tapFlag {
		return true
	}
	return configs.Lookup[TapOnFault](loader)
}

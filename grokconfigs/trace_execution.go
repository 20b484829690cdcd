package grokconfigs

import (
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
)

// TraceExecution enables the per-instruction trace on stderr.
type TraceExecution bool

var _ configs.Configurable = TraceExecution(false)

func (TraceExecution) ConfigPath() string {
	return "trace_execution"
}

var traceFlag = cmds.Switch("-trace")

func (Module) TraceExecution(
	loader configs.Loader,
) TraceExecution {
	if *traceFlag {
		return true
	}
	return configs.Lookup[TraceExecution](loader)
}

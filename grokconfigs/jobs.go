package grokconfigs

import (
	"runtime"

	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/vars"
)

// Jobs is the number of programs executed concurrently by batch runs.
type Jobs int

var _ configs.Configurable = Jobs(0)

func (Jobs) ConfigPath() string {
	return "jobs"
}

var jobsFlag = cmds.Var[int]("-jobs")

func (Module) Jobs(
	loader configs.Loader,
) Jobs {
	return Jobs(vars.FirstNonZero(
		*jobsFlag,
		int(configs.Lookup[Jobs](loader)),
		runtime.NumCPU(),
	))
}

package grokconfigs

import (
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
	"github.com/reusee/grok/vars"
)

// FrameLimit bounds the call depth. Zero means unlimited.
type FrameLimit int

var _ configs.Configurable = FrameLimit(0)

func (FrameLimit) ConfigPath() string {
	return "frame_limit"
}

var frameLimitFlag = cmds.Var[int]("-frame-limit")

func (Module) FrameLimit(
	loader configs.Loader,
) FrameLimit {
	return FrameLimit(vars.FirstNonZero(
		*frameLimitFlag,
		int(configs.Lookup[FrameLimit](loader)),
	))
}

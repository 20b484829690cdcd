package grokconfigs

import (
	"github.com/reusee/grok/cmds"
	"github.com/reusee/grok/configs"
)

// Preload lists assembly files run on every new machine before its first
// program. Unlike scalar values, lists from all config files are
// concatenated, after the -preload flags.
type Preload []string

func (Preload) ConfigPath() string {
	return "preload"
}

var preloadFlag = cmds.Collect[string]("-preload")

func (Module) Preload(
	loader configs.Loader,
) Preload {
	ret := Preload(append([]string(nil), *preloadFlag...))
	for paths := range configs.All[[]string](loader, Preload(nil).ConfigPath()) {
		ret = append(ret, paths...)
	}
	return ret
}

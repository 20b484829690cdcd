package grokconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/grok/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

package grokrun

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/grok/debugs"
	"github.com/reusee/grok/grokconfigs"
	"github.com/reusee/grok/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs grokconfigs.Module
	Debugs  debugs.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

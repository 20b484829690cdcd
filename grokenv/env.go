package grokenv

import "github.com/reusee/grok/grokobj"

// Env is one lexical scope. Lookups walk the Parent chain.
type Env struct {
	Parent *Env
	Vars   map[string]*grokobj.Object
}

func (e *Env) Get(name string) (*grokobj.Object, bool) {
	if v, ok := e.Vars[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Get(name)
	}
	return nil, false
}

// Def binds name in this scope, shadowing any outer binding.
func (e *Env) Def(name string, val *grokobj.Object) {
	if e.Vars == nil {
		e.Vars = make(map[string]*grokobj.Object)
	}
	e.Vars[name] = val
}

func (e *Env) NewChild() *Env {
	return &Env{
		Parent: e,
	}
}

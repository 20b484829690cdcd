package grokvm

import "github.com/reusee/grok/grokobj"

// Scope is the name binding store the engine resolves identifiers against.
type Scope interface {
	This() *grokobj.Object
	GetValue(name string) (*grokobj.Object, error)
	StoreValue(name string, value *grokobj.Object)
	CreateScope()
	RemoveScope()
}

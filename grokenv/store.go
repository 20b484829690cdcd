package grokenv

import (
	"errors"
	"fmt"

	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokvm"
)

var ErrUnbound = errors.New("unbound reference")

type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}

func (e *UnboundError) Unwrap() error {
	return ErrUnbound
}

// Store is the scope store consumed by the engine. The global scope is never
// removed; the global receiver is a plain object independent of the bindings.
type Store struct {
	Scope  *Env
	global *Env
	this   *grokobj.Object
}

var _ grokvm.Scope = new(Store)

func New() *Store {
	global := new(Env)
	return &Store{
		Scope:  global,
		global: global,
		this:   grokobj.NewObject(),
	}
}

func (s *Store) This() *grokobj.Object {
	return s.this
}

func (s *Store) GetValue(name string) (*grokobj.Object, error) {
	if v, ok := s.Scope.Get(name); ok {
		return v, nil
	}
	return nil, &UnboundError{
		Name: name,
	}
}

// StoreValue binds name in the innermost scope.
func (s *Store) StoreValue(name string, value *grokobj.Object) {
	s.Scope.Def(name, value)
}

// Define binds name in the global scope.
func (s *Store) Define(name string, value *grokobj.Object) {
	s.global.Def(name, value)
}

// DefineReadOnly binds name in the global scope to a value stores cannot overwrite.
func (s *Store) DefineReadOnly(name string, value *grokobj.Object) {
	value.SetWritable(false)
	s.global.Def(name, value)
}

func (s *Store) CreateScope() {
	s.Scope = s.Scope.NewChild()
}

func (s *Store) RemoveScope() {
	if s.Scope.Parent == nil {
		return
	}
	s.Scope = s.Scope.Parent
}

// Depth counts the scopes above the global one.
func (s *Store) Depth() int {
	n := 0
	for e := s.Scope; e.Parent != nil; e = e.Parent {
		n++
	}
	return n
}

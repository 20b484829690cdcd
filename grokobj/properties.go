package grokobj

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Properties is an own-property table that enumerates in insertion order.
type Properties struct {
	m *linkedhashmap.Map
}

func NewProperties() *Properties {
	return &Properties{
		m: linkedhashmap.New(),
	}
}

func (p *Properties) Get(key string) (*Object, bool) {
	v, ok := p.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Object), true
}

func (p *Properties) Set(key string, value *Object) {
	p.m.Put(key, value)
}

func (p *Properties) Delete(key string) {
	p.m.Remove(key)
}

func (p *Properties) Len() int {
	return p.m.Size()
}

func (p *Properties) Keys() []string {
	keys := make([]string, 0, p.m.Size())
	for _, k := range p.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

func (p *Properties) All(yield func(string, *Object) bool) {
	it := p.m.Iterator()
	for it.Next() {
		if !yield(it.Key().(string), it.Value().(*Object)) {
			return
		}
	}
}

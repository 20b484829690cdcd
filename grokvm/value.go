package grokvm

import "github.com/reusee/grok/grokobj"

// Value is an operand stack slot. Key is the property name attached by maps
// and consumed by poprop.
type Value struct {
	O   *grokobj.Object
	Key string
}

package grokobj

import "fmt"

type Kind uint8

const (
	KindNull Kind = iota
	KindUndefined
	KindNumber
	KindString
	KindObject
	KindArray
	KindFunction
)

var kindNames = [...]string{
	KindNull:      "null",
	KindUndefined: "undefined",
	KindNumber:    "number",
	KindString:    "string",
	KindObject:    "object",
	KindArray:     "array",
	KindFunction:  "function",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func badKind(k Kind) string {
	return fmt.Sprintf("grokobj: unknown kind %v", k)
}

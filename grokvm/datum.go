package grokvm

import (
	"fmt"

	"github.com/reusee/grok/grokobj"
)

type DatumKind uint8

const (
	DatumNull DatumKind = iota
	DatumNumber
	DatumString
	DatumName
	DatumBool
	DatumObject
)

var datumKindNames = [...]string{
	DatumNull:   "null",
	DatumNumber: "number",
	DatumString: "string",
	DatumName:   "name",
	DatumBool:   "bool",
	DatumObject: "object",
}

func (k DatumKind) String() string {
	if int(k) < len(datumKindNames) {
		return datumKindNames[k]
	}
	return fmt.Sprintf("datum(%d)", uint8(k))
}

// Datum is the operand embedded in an instruction.
type Datum struct {
	Kind DatumKind
	Num  float64
	Str  string
	Bool bool
	Obj  *grokobj.Object
}

func NullDatum() Datum {
	return Datum{Kind: DatumNull}
}

func NumberDatum(n float64) Datum {
	return Datum{Kind: DatumNumber, Num: n}
}

func StringDatum(s string) Datum {
	return Datum{Kind: DatumString, Str: s}
}

func NameDatum(name string) Datum {
	return Datum{Kind: DatumName, Str: name}
}

func BoolDatum(b bool) Datum {
	return Datum{Kind: DatumBool, Bool: b}
}

func ObjectDatum(o *grokobj.Object) Datum {
	return Datum{Kind: DatumObject, Obj: o}
}

func (d Datum) String() string {
	switch d.Kind {
	case DatumNull:
		return "Null"
	case DatumNumber:
		return grokobj.FormatNumber(d.Num)
	case DatumString, DatumName:
		return d.Str
	case DatumBool:
		if d.Bool {
			return "true"
		}
		return "false"
	case DatumObject:
		return "[ object Object ]"
	}
	panic(&BytecodeFault{
		PC:     -1,
		Reason: fmt.Sprintf("unknown datum kind %v", d.Kind),
	})
}

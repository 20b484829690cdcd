package grokobj

// Object is a mutable cell. Scope bindings, property slots and stack slots all
// hold *Object, so an assignment through any of them is visible to the others.
type Object struct {
	kind     Kind
	number   float64
	str      string
	props    *Properties
	array    *Array
	function *Function
	readOnly bool
}

func Undefined() *Object {
	return &Object{kind: KindUndefined}
}

func Null() *Object {
	return &Object{kind: KindNull}
}

func Number(f float64) *Object {
	return &Object{kind: KindNumber, number: f}
}

func NumberFromBool(b bool) *Object {
	if b {
		return Number(1)
	}
	return Number(0)
}

// NumberFromString parses str as a number. Unparsable input yields undefined.
func NumberFromString(str string) *Object {
	f, ok := parseNumber(str)
	if !ok {
		return Undefined()
	}
	return Number(f)
}

func String(str string) *Object {
	return &Object{kind: KindString, str: str}
}

func NewObject() *Object {
	return &Object{kind: KindObject, props: NewProperties()}
}

func NewArray(size int) *Object {
	return &Object{kind: KindArray, array: newArray(size)}
}

func NewFunction(fn *Function) *Object {
	return &Object{kind: KindFunction, function: fn}
}

func (o *Object) Kind() Kind {
	return o.kind
}

func (o *Object) Number() float64 {
	return o.number
}

func (o *Object) Str() string {
	return o.str
}

// Props returns the own property table of objects and functions, nil otherwise.
func (o *Object) Props() *Properties {
	switch o.kind {
	case KindObject:
		return o.props
	case KindFunction:
		return o.function.props()
	case KindNull, KindUndefined, KindNumber, KindString, KindArray:
		return nil
	}
	panic(badKind(o.kind))
}

func (o *Object) Array() *Array {
	return o.array
}

func (o *Object) Function() *Function {
	return o.function
}

func (o *Object) IsWritable() bool {
	return !o.readOnly
}

func (o *Object) SetWritable(writable bool) {
	o.readOnly = !writable
}

// Reset replaces the contents of o with those of src. Reference kinds share
// their payload afterwards. Writability of o is kept.
func (o *Object) Reset(src *Object) {
	readOnly := o.readOnly
	*o = *src
	o.readOnly = readOnly
}

// Copy returns a new writable cell holding the same contents as o.
func Copy(o *Object) *Object {
	ret := *o
	ret.readOnly = false
	return &ret
}

// Same reports whether a and b hold the same reference payload, or are the
// same cell for value kinds.
func Same(a, b *Object) bool {
	if a == b {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		return a.props == b.props
	case KindArray:
		return a.array == b.array
	case KindFunction:
		return a.function == b.function
	case KindNull, KindUndefined, KindNumber, KindString:
		return false
	}
	panic(badKind(a.kind))
}

func IsArray(o *Object) bool {
	return o.kind == KindArray
}

func IsCallable(o *Object) bool {
	return o.kind == KindFunction
}

func IsUndefined(o *Object) bool {
	return o.kind == KindUndefined
}

func IsNull(o *Object) bool {
	return o.kind == KindNull
}

func (o *Object) String() string {
	return ToString(o)
}

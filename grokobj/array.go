package grokobj

import "strconv"

type Array struct {
	Elements []*Object
	props    *Properties
}

func newArray(size int) *Array {
	elems := make([]*Object, size)
	for i := range elems {
		elems[i] = Undefined()
	}
	return &Array{
		Elements: elems,
		props:    NewProperties(),
	}
}

func (a *Array) Len() int {
	return len(a.Elements)
}

// At looks up key on the array. Canonical non-negative integer keys address
// elements and grow the array when out of range; "length" yields a read-only
// snapshot; other keys live in the array's own property table.
func (a *Array) At(key string) *Object {
	if i, ok := arrayIndex(key); ok {
		a.grow(i + 1)
		return a.Elements[i]
	}
	if key == "length" {
		ret := Number(float64(len(a.Elements)))
		ret.readOnly = true
		return ret
	}
	return getOrCreate(a.props, key)
}

func (a *Array) Assign(i int, value *Object) {
	a.grow(i + 1)
	a.Elements[i] = value
}

func (a *Array) Props() *Properties {
	return a.props
}

func (a *Array) grow(n int) {
	for len(a.Elements) < n {
		a.Elements = append(a.Elements, Undefined())
	}
}

// keys at or above maxArrayIndex are plain properties
const maxArrayIndex = 1 << 24

func arrayIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n >= maxArrayIndex {
		return 0, false
	}
	return int(n), true
}

package grokobj

import "strconv"

// GetProperty returns the slot stored under key. Objects, arrays and functions
// materialize an undefined slot for an absent key so that a following store
// assigns through it. Primitive receivers yield read-only values.
func GetProperty(o *Object, key string) *Object {
	switch o.kind {
	case KindObject:
		return getOrCreate(o.props, key)
	case KindArray:
		return o.array.At(key)
	case KindFunction:
		if key == "prototype" {
			o.function.Prepare()
		}
		return getOrCreate(o.function.props(), key)
	case KindString:
		return readOnly(stringProperty(o.str, key))
	case KindNull, KindUndefined, KindNumber:
		return readOnly(Undefined())
	}
	panic(badKind(o.kind))
}

// SetProperty binds key to value on objects, arrays and functions. It reports
// false for primitive receivers.
func SetProperty(o *Object, key string, value *Object) bool {
	switch o.kind {
	case KindObject:
		o.props.Set(key, value)
		return true
	case KindArray:
		if i, ok := arrayIndex(key); ok {
			o.array.Assign(i, value)
		} else {
			o.array.props.Set(key, value)
		}
		return true
	case KindFunction:
		o.function.props().Set(key, value)
		return true
	case KindNull, KindUndefined, KindNumber, KindString:
		return false
	}
	panic(badKind(o.kind))
}

func getOrCreate(props *Properties, key string) *Object {
	if v, ok := props.Get(key); ok {
		return v
	}
	v := Undefined()
	props.Set(key, v)
	return v
}

func stringProperty(str string, key string) *Object {
	runes := []rune(str)
	if key == "length" {
		return Number(float64(len(runes)))
	}
	if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(runes) {
		return String(string(runes[i]))
	}
	return Undefined()
}

func readOnly(o *Object) *Object {
	o.readOnly = true
	return o
}

package grokobj

import "math"

type BinaryFunc func(l, r *Object) *Object

// Add concatenates when either side is a string, otherwise adds numerically.
func Add(l, r *Object) *Object {
	if l.kind == KindString || r.kind == KindString {
		return String(ToString(l) + ToString(r))
	}
	return Number(ToNumber(l) + ToNumber(r))
}

func Sub(l, r *Object) *Object {
	return Number(ToNumber(l) - ToNumber(r))
}

func Mul(l, r *Object) *Object {
	return Number(ToNumber(l) * ToNumber(r))
}

func Div(l, r *Object) *Object {
	return Number(ToNumber(l) / ToNumber(r))
}

func Rem(l, r *Object) *Object {
	return Number(math.Mod(ToNumber(l), ToNumber(r)))
}

func Lt(l, r *Object) *Object {
	return NumberFromBool(compare(l, r, func(c int) bool { return c < 0 }))
}

func Gt(l, r *Object) *Object {
	return NumberFromBool(compare(l, r, func(c int) bool { return c > 0 }))
}

func Le(l, r *Object) *Object {
	return NumberFromBool(compare(l, r, func(c int) bool { return c <= 0 }))
}

func Ge(l, r *Object) *Object {
	return NumberFromBool(compare(l, r, func(c int) bool { return c >= 0 }))
}

func Eq(l, r *Object) *Object {
	return NumberFromBool(Equal(l, r))
}

func Ne(l, r *Object) *Object {
	return NumberFromBool(!Equal(l, r))
}

func Shl(l, r *Object) *Object {
	shift := uint32(ToInt32(ToNumber(r))) & 31
	return Number(float64(ToInt32(ToNumber(l)) << shift))
}

func Shr(l, r *Object) *Object {
	shift := uint32(ToInt32(ToNumber(r))) & 31
	return Number(float64(ToInt32(ToNumber(l)) >> shift))
}

func BitOr(l, r *Object) *Object {
	return Number(float64(ToInt32(ToNumber(l)) | ToInt32(ToNumber(r))))
}

func BitAnd(l, r *Object) *Object {
	return Number(float64(ToInt32(ToNumber(l)) & ToInt32(ToNumber(r))))
}

func BitXor(l, r *Object) *Object {
	return Number(float64(ToInt32(ToNumber(l)) ^ ToInt32(ToNumber(r))))
}

// LogicalOr and LogicalAnd yield 1 or 0, not an operand.
func LogicalOr(l, r *Object) *Object {
	return NumberFromBool(Truthy(l) || Truthy(r))
}

func LogicalAnd(l, r *Object) *Object {
	return NumberFromBool(Truthy(l) && Truthy(r))
}

// Equal is loose equality: null and undefined equal each other, numbers and
// strings compare numerically, reference kinds compare by identity.
func Equal(l, r *Object) bool {
	switch l.kind {
	case KindNull, KindUndefined:
		return r.kind == KindNull || r.kind == KindUndefined
	case KindNumber:
		switch r.kind {
		case KindNumber, KindString:
			return l.number == ToNumber(r)
		}
		return false
	case KindString:
		switch r.kind {
		case KindString:
			return l.str == r.str
		case KindNumber:
			return ToNumber(l) == r.number
		}
		return false
	case KindObject, KindArray, KindFunction:
		return Same(l, r)
	}
	panic(badKind(l.kind))
}

// compare orders strings lexically when both sides are strings and numerically
// otherwise. Any comparison involving NaN is false.
func compare(l, r *Object, test func(int) bool) bool {
	if l.kind == KindString && r.kind == KindString {
		switch {
		case l.str < r.str:
			return test(-1)
		case l.str > r.str:
			return test(1)
		}
		return test(0)
	}
	a, b := ToNumber(l), ToNumber(r)
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return false
	case a < b:
		return test(-1)
	case a > b:
		return test(1)
	}
	return test(0)
}

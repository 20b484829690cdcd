package grokobj

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Truthy reports the truthiness of o: undefined, null, 0, NaN and "" are falsy.
func Truthy(o *Object) bool {
	switch o.kind {
	case KindNull, KindUndefined:
		return false
	case KindNumber:
		return o.number != 0 && !math.IsNaN(o.number)
	case KindString:
		return o.str != ""
	case KindObject, KindArray, KindFunction:
		return true
	}
	panic(badKind(o.kind))
}

func ToString(o *Object) string {
	return toString(o, nil)
}

// toString tracks the arrays being joined; an array reached again renders
// as the empty string.
func toString(o *Object, joining map[*Array]bool) string {
	switch o.kind {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindNumber:
		return FormatNumber(o.number)
	case KindString:
		return o.str
	case KindObject:
		return "[object Object]"
	case KindArray:
		if joining[o.array] {
			return ""
		}
		if joining == nil {
			joining = make(map[*Array]bool)
		}
		joining[o.array] = true
		defer delete(joining, o.array)
		parts := make([]string, len(o.array.Elements))
		for i, elem := range o.array.Elements {
			if elem.kind == KindNull || elem.kind == KindUndefined {
				continue
			}
			parts[i] = toString(elem, joining)
		}
		return strings.Join(parts, ",")
	case KindFunction:
		return "function " + o.function.Name + "(" + strings.Join(o.function.Params, ", ") + ")"
	}
	panic(badKind(o.kind))
}

// ToNumber converts o for numeric operators. undefined and non-primitive
// kinds become NaN; null becomes 0.
func ToNumber(o *Object) float64 {
	switch o.kind {
	case KindNull:
		return 0
	case KindUndefined:
		return math.NaN()
	case KindNumber:
		return o.number
	case KindString:
		f, ok := parseNumber(o.str)
		if !ok {
			return math.NaN()
		}
		return f
	case KindObject, KindArray, KindFunction:
		return math.NaN()
	}
	panic(badKind(o.kind))
}

// Reparse stringifies o and parses the result back as a number, the operand
// conversion used by the unary operators.
func Reparse(o *Object) *Object {
	return NumberFromString(ToString(o))
}

func ToInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	f = math.Mod(f, 1<<32)
	if f < 0 {
		f += 1 << 32
	}
	return int32(uint32(f))
}

func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	str := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(str[strings.IndexByte(str, 'e')+1:])
	if exp >= -6 && exp < 21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	str = strings.Replace(str, "e-0", "e-", 1)
	str = strings.Replace(str, "e+0", "e+", 1)
	return str
}

func parseNumber(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	switch str {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if strings.ContainsAny(str, "_xXpPiInN") {
		return 0, false
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

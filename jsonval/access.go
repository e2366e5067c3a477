package jsonval

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/timzifer/edgeconf/faults"
)

// AsObject narrows a value to an object.
func AsObject(v Value) (Object, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, faults.JSONNoObject.New(String(v))
	}
	return obj, nil
}

// ObjectMember returns the named member narrowed to an object.
func ObjectMember(v Value, name string) (Object, error) {
	sub, err := Member(v, name)
	if err != nil {
		return nil, err
	}
	obj, ok := sub.(Object)
	if !ok {
		return nil, faults.JSONNoObjectMember.New(name, String(sub))
	}
	return obj, nil
}

// AsArray narrows a value to an array.
func AsArray(v Value) (Array, error) {
	arr, ok := v.(Array)
	if !ok {
		return nil, faults.JSONNoArray.New(String(v))
	}
	return arr, nil
}

// ArrayMember returns the named member narrowed to an array.
func ArrayMember(v Value, name string) (Array, error) {
	sub, err := Member(v, name)
	if err != nil {
		return nil, err
	}
	arr, ok := sub.(Array)
	if !ok {
		return nil, faults.JSONNoArrayMember.New(name, String(sub))
	}
	return arr, nil
}

// AsPrimitive narrows a value to a primitive (string, bool or number).
func AsPrimitive(v Value) (Value, error) {
	if !isPrimitive(v) {
		return nil, faults.JSONNoPrimitive.New(String(v))
	}
	return v, nil
}

// PrimitiveMember returns the named member narrowed to a primitive.
func PrimitiveMember(v Value, name string) (Value, error) {
	sub, err := Member(v, name)
	if err != nil {
		return nil, err
	}
	if !isPrimitive(sub) {
		return nil, faults.JSONNoPrimitiveMember.New(name, String(sub))
	}
	return sub, nil
}

// Member requires v to be an object containing the named member and returns
// the member value.
func Member(v Value, name string) (Value, error) {
	obj, err := AsObject(v)
	if err != nil {
		return nil, err
	}
	sub, ok := obj[name]
	if !ok {
		return nil, faults.JSONHasNoMember.New(String(v), name)
	}
	return sub, nil
}

// OptionalMember returns the named member of an object, reporting absence
// instead of failing. A non-object v counts as absent.
func OptionalMember(v Value, name string) (Value, bool) {
	sub, err := Member(v, name)
	if err != nil {
		return nil, false
	}
	return sub, true
}

// AsString narrows a value to a string. Numeric and boolean primitives are
// leniently rendered as their text content.
func AsString(v Value) (string, error) {
	p, err := AsPrimitive(v)
	if err != nil {
		return "", err
	}
	return primitiveString(p), nil
}

// StringMember returns the named member coerced to a string.
func StringMember(v Value, name string) (string, error) {
	sub, err := PrimitiveMember(v, name)
	if err != nil {
		return "", err
	}
	return primitiveString(sub), nil
}

// OptionalStringMember is StringMember with absence instead of failure.
func OptionalStringMember(v Value, name string) (string, bool) {
	s, err := StringMember(v, name)
	if err != nil {
		return "", false
	}
	return s, true
}

// AsBool narrows a value to a boolean primitive.
func AsBool(v Value) (bool, error) {
	p, err := AsPrimitive(v)
	if err != nil {
		return false, err
	}
	b, ok := p.(bool)
	if !ok {
		return false, faults.JSONNoBoolean.New(String(p))
	}
	return b, nil
}

// BoolMember returns the named member narrowed to a boolean.
func BoolMember(v Value, name string) (bool, error) {
	sub, err := PrimitiveMember(v, name)
	if err != nil {
		return false, err
	}
	b, ok := sub.(bool)
	if !ok {
		return false, faults.JSONNoBooleanMember.New(name, String(sub))
	}
	return b, nil
}

// OptionalBoolMember is BoolMember with absence instead of failure.
func OptionalBoolMember(v Value, name string) (bool, bool) {
	b, err := BoolMember(v, name)
	if err != nil {
		return false, false
	}
	return b, true
}

// AsInt narrows a value to an int. Numbers are truncated towards zero and
// numeric strings are parsed leniently.
func AsInt(v Value) (int, error) {
	p, err := AsPrimitive(v)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt64(p)
	if !ok {
		return 0, faults.JSONNoNumber.New(String(p))
	}
	return int(i), nil
}

// IntMember returns the named member coerced to an int.
func IntMember(v Value, name string) (int, error) {
	sub, err := PrimitiveMember(v, name)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt64(sub)
	if !ok {
		return 0, faults.JSONNoIntegerMember.New(name, String(sub))
	}
	return int(i), nil
}

// OptionalIntMember is IntMember with absence instead of failure.
func OptionalIntMember(v Value, name string) (int, bool) {
	i, err := IntMember(v, name)
	if err != nil {
		return 0, false
	}
	return i, true
}

// AsInt64 narrows a value to an int64 with the same coercion as AsInt.
func AsInt64(v Value) (int64, error) {
	p, err := AsPrimitive(v)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt64(p)
	if !ok {
		return 0, faults.JSONNoNumber.New(String(p))
	}
	return i, nil
}

// Int64Member returns the named member coerced to an int64.
func Int64Member(v Value, name string) (int64, error) {
	sub, err := PrimitiveMember(v, name)
	if err != nil {
		return 0, err
	}
	i, ok := coerceInt64(sub)
	if !ok {
		return 0, faults.JSONNoNumberMember.New(name, String(sub))
	}
	return i, nil
}

// OptionalInt64Member is Int64Member with absence instead of failure.
func OptionalInt64Member(v Value, name string) (int64, bool) {
	i, err := Int64Member(v, name)
	if err != nil {
		return 0, false
	}
	return i, true
}

// AsFloat narrows a value to a float64. Numeric strings are parsed through
// decimal so exponent and high-precision notations survive.
func AsFloat(v Value) (float64, error) {
	p, err := AsPrimitive(v)
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat(p)
	if !ok {
		return 0, faults.JSONNoNumber.New(String(p))
	}
	return f, nil
}

// FloatMember returns the named member coerced to a float64.
func FloatMember(v Value, name string) (float64, error) {
	sub, err := PrimitiveMember(v, name)
	if err != nil {
		return 0, err
	}
	f, ok := coerceFloat(sub)
	if !ok {
		return 0, faults.JSONNoFloatMember.New(name, String(sub))
	}
	return f, nil
}

// OptionalFloatMember is FloatMember with absence instead of failure.
func OptionalFloatMember(v Value, name string) (float64, bool) {
	f, err := FloatMember(v, name)
	if err != nil {
		return 0, false
	}
	return f, true
}

// OptionalObjectMember is ObjectMember with absence instead of failure.
func OptionalObjectMember(v Value, name string) (Object, bool) {
	obj, err := ObjectMember(v, name)
	if err != nil {
		return nil, false
	}
	return obj, true
}

// OptionalArrayMember is ArrayMember with absence instead of failure.
func OptionalArrayMember(v Value, name string) (Array, bool) {
	arr, err := ArrayMember(v, name)
	if err != nil {
		return nil, false
	}
	return arr, true
}

// StringsFromArray converts an array of primitives into a string slice.
func StringsFromArray(arr Array) ([]string, error) {
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, err := AsString(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DateMember parses a "YYYY-MM-DD" string member into a time.Time at
// midnight in the given location.
func DateMember(v Value, name string, loc *time.Location) (time.Time, error) {
	s, err := StringMember(v, name)
	if err != nil {
		return time.Time{}, err
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, faults.JSONNoDateMember.New(name, String(v), "expected YYYY-MM-DD")
	}
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, faults.JSONNoDateMember.New(name, String(v), err.Error())
		}
		nums[i] = n
	}
	date := time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, loc)
	// time.Date normalizes out-of-range fields; a changed calendar day
	// means the input was no real date.
	if y, m, d := date.Date(); y != nums[0] || m != time.Month(nums[1]) || d != nums[2] {
		return time.Time{}, faults.JSONNoDateMember.New(name, String(v), "day out of range")
	}
	return date, nil
}

func coerceInt64(p Value) (int64, bool) {
	switch n := p.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		// Fractional payloads truncate towards zero.
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return d.IntPart(), true
	default:
		return 0, false
	}
}

func coerceFloat(p Value) (float64, bool) {
	switch n := p.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return d.InexactFloat64(), true
	default:
		return 0, false
	}
}

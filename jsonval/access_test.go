package jsonval

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/timzifer/edgeconf/faults"
)

func mustParse(t *testing.T, text string) Value {
	t.Helper()
	v, err := Parse(text)
	require.NoError(t, err)
	return v
}

func TestAsObject(t *testing.T) {
	v := mustParse(t, `{"a":1}`)
	obj, err := AsObject(v)
	require.NoError(t, err)
	require.Contains(t, obj, "a")

	_, err = AsObject(mustParse(t, `[1,2]`))
	require.True(t, errors.Is(err, faults.JSONNoObject))
}

func TestMemberMissing(t *testing.T) {
	_, err := Member(Object{}, "x")
	require.True(t, errors.Is(err, faults.JSONHasNoMember))

	var fe *faults.Error
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "x", fe.Params()[1])

	_, ok := OptionalMember(Object{}, "x")
	require.False(t, ok)
}

func TestMemberOnNonObject(t *testing.T) {
	_, err := Member("scalar", "x")
	require.True(t, errors.Is(err, faults.JSONNoObject))
}

func TestStringCoercion(t *testing.T) {
	v := mustParse(t, `{"s":"text","n":7,"b":true}`)

	s, err := StringMember(v, "s")
	require.NoError(t, err)
	require.Equal(t, "text", s)

	s, err = StringMember(v, "n")
	require.NoError(t, err)
	require.Equal(t, "7", s)

	s, err = StringMember(v, "b")
	require.NoError(t, err)
	require.Equal(t, "true", s)

	_, err = StringMember(v, "missing")
	require.True(t, errors.Is(err, faults.JSONHasNoMember))
}

func TestBoolMember(t *testing.T) {
	v := mustParse(t, `{"b":false,"s":"true"}`)

	b, err := BoolMember(v, "b")
	require.NoError(t, err)
	require.False(t, b)

	_, err = BoolMember(v, "s")
	require.True(t, errors.Is(err, faults.JSONNoBooleanMember))

	_, ok := OptionalBoolMember(v, "s")
	require.False(t, ok)
}

func TestIntCoercion(t *testing.T) {
	v := mustParse(t, `{"n":42,"s":"42","f":3.9,"x":"x"}`)

	n, err := IntMember(v, "n")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = IntMember(v, "s")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	// Fractional numbers truncate towards zero.
	n, err = IntMember(v, "f")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = IntMember(v, "x")
	require.True(t, errors.Is(err, faults.JSONNoIntegerMember))
}

func TestIntCoercionFractionalString(t *testing.T) {
	v := mustParse(t, `{"s":"3.5","neg":"-3.5"}`)

	// Stringified fractions truncate towards zero like numeric ones.
	n, err := IntMember(v, "s")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	i64, err := Int64Member(v, "neg")
	require.NoError(t, err)
	require.Equal(t, int64(-3), i64)
}

func TestAsIntScalar(t *testing.T) {
	n, err := AsInt(json.Number("42"))
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = AsInt("42")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	_, err = AsInt("x")
	require.True(t, errors.Is(err, faults.JSONNoNumber))

	_, err = AsInt(Array{})
	require.True(t, errors.Is(err, faults.JSONNoPrimitive))
}

func TestInt64Coercion(t *testing.T) {
	v := mustParse(t, `{"big":9223372036854775807,"s":"12","bad":"nope"}`)

	n, err := Int64Member(v, "big")
	require.NoError(t, err)
	require.Equal(t, int64(9223372036854775807), n)

	n, err = Int64Member(v, "s")
	require.NoError(t, err)
	require.Equal(t, int64(12), n)

	_, err = Int64Member(v, "bad")
	require.True(t, errors.Is(err, faults.JSONNoNumberMember))
}

func TestFloatCoercion(t *testing.T) {
	v := mustParse(t, `{"f":1.5,"s":"2.25","bad":"x"}`)

	f, err := FloatMember(v, "f")
	require.NoError(t, err)
	require.Equal(t, 1.5, f)

	f, err = FloatMember(v, "s")
	require.NoError(t, err)
	require.Equal(t, 2.25, f)

	_, err = FloatMember(v, "bad")
	require.True(t, errors.Is(err, faults.JSONNoFloatMember))

	_, ok := OptionalFloatMember(v, "bad")
	require.False(t, ok)
}

func TestOptionalMembersReportAbsence(t *testing.T) {
	v := mustParse(t, `{"s":"x","n":1}`)

	s, ok := OptionalStringMember(v, "s")
	require.True(t, ok)
	require.Equal(t, "x", s)

	_, ok = OptionalStringMember(v, "missing")
	require.False(t, ok)

	i, ok := OptionalIntMember(v, "n")
	require.True(t, ok)
	require.Equal(t, 1, i)

	_, ok = OptionalInt64Member(v, "missing")
	require.False(t, ok)

	_, ok = OptionalObjectMember(v, "s")
	require.False(t, ok)

	_, ok = OptionalArrayMember(v, "missing")
	require.False(t, ok)
}

func TestArrayMember(t *testing.T) {
	v := mustParse(t, `{"a":[1,2],"s":"x"}`)

	arr, err := ArrayMember(v, "a")
	require.NoError(t, err)
	require.Len(t, arr, 2)

	_, err = ArrayMember(v, "s")
	require.True(t, errors.Is(err, faults.JSONNoArrayMember))
}

func TestStringsFromArray(t *testing.T) {
	arr, err := AsArray(mustParse(t, `["a",1,true]`))
	require.NoError(t, err)

	strs, err := StringsFromArray(arr)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "1", "true"}, strs)

	_, err = StringsFromArray(Array{Object{}})
	require.True(t, errors.Is(err, faults.JSONNoPrimitive))
}

func TestDateMember(t *testing.T) {
	v := mustParse(t, `{"day":"2024-03-09","bad":"2024-03","worse":"y-m-d"}`)

	ts, err := DateMember(v, "day", time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), ts)

	_, err = DateMember(v, "bad", time.UTC)
	require.True(t, errors.Is(err, faults.JSONNoDateMember))

	_, err = DateMember(v, "worse", time.UTC)
	require.True(t, errors.Is(err, faults.JSONNoDateMember))
}

func TestDateMemberRejectsOutOfRangeParts(t *testing.T) {
	v := mustParse(t, `{"m":"2024-13-01","d":"2024-02-30","zero":"2024-00-10"}`)

	for _, name := range []string{"m", "d", "zero"} {
		_, err := DateMember(v, name, time.UTC)
		require.Truef(t, errors.Is(err, faults.JSONNoDateMember), "member %s", name)
	}

	// Leap day stays a valid date.
	ts, err := DateMember(mustParse(t, `{"d":"2024-02-29"}`), "d", time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), ts)
}

func TestPrimitiveMember(t *testing.T) {
	v := mustParse(t, `{"p":1,"o":{}}`)

	p, err := PrimitiveMember(v, "p")
	require.NoError(t, err)
	require.Equal(t, json.Number("1"), p)

	_, err = PrimitiveMember(v, "o")
	require.True(t, errors.Is(err, faults.JSONNoPrimitiveMember))
}

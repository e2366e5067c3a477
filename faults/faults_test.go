package faults

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestForCodeKnown(t *testing.T) {
	require.Same(t, JSONHasNoMember, ForCode(5000))
	require.Same(t, Generic, ForCode(1))
	require.Same(t, EdgeNoComponentWithID, ForCode(2000))
}

func TestForCodeUnknownFallsBackToGeneric(t *testing.T) {
	SetLogger(zerolog.Nop())
	defer SetLogger(zerolog.New(nil))

	require.Same(t, Generic, ForCode(99999))
}

type countingCollector struct {
	codes []int
}

func (c *countingCollector) IncUnknownErrorCode(code int) {
	c.codes = append(c.codes, code)
}

func TestForCodeUnknownHitsCollector(t *testing.T) {
	SetLogger(zerolog.Nop())
	defer SetLogger(zerolog.New(nil))

	rec := &countingCollector{}
	SetCollector(rec)
	defer SetCollector(nil)

	require.Same(t, Generic, ForCode(424242))
	require.Same(t, JSONNoObject, ForCode(5002))
	require.Equal(t, []int{424242}, rec.codes)
}

func TestMessageRendersPositionalParams(t *testing.T) {
	msg := JSONHasNoMember.Message(`{"a":1}`, "x")
	require.Equal(t, `JSON [{"a":1}] has no member [x]`, msg)
}

func TestMessageToleratesParamCountMismatch(t *testing.T) {
	SetLogger(zerolog.Nop())
	defer SetLogger(zerolog.New(nil))

	// Too many params must not panic or fail, only log.
	msg := AuthenticationFailed.Message("extra")
	require.Contains(t, msg, "Authentication failed")
}

func TestMessageStringifiesParams(t *testing.T) {
	msg := JSONNoIntegerMember.Message("count", 42)
	require.Equal(t, "JSON [count:42] is not an Integer", msg)
}

func TestNewCarriesKindCodeAndParams(t *testing.T) {
	err := JSONNoStringMember.New("name", "123")
	require.EqualError(t, err, "JSON [name:123] is not a String")

	var fe *Error
	require.True(t, errors.As(err, &fe))
	require.Equal(t, 5010, fe.Code())
	require.Same(t, JSONNoStringMember, fe.Kind())
	require.Equal(t, []any{"name", "123"}, fe.Params())
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := JSONNoObject.New("true")
	require.True(t, errors.Is(err, JSONNoObject))
	require.False(t, errors.Is(err, JSONNoArray))

	wrapped := fmt.Errorf("decode: %w", err)
	require.True(t, errors.Is(wrapped, JSONNoObject))
}

func TestCodeSpacePartitioning(t *testing.T) {
	cases := []struct {
		kind *Kind
		code int
	}{
		{Generic, 1},
		{NoValidChannelAddress, 1000},
		{EdgeChannelNoOption, 2005},
		{BackendNoUIWithToken, 3002},
		{RPCResponseWithoutRequest, 4003},
		{JSONNoFloatMember, 5017},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, tc.kind.Code(), tc.kind.Name())
	}
}

func TestAllCodesUnique(t *testing.T) {
	seen := map[int]string{}
	for _, kind := range allKinds() {
		other, dup := seen[kind.Code()]
		require.Falsef(t, dup, "code %d shared by %s and %s", kind.Code(), other, kind.Name())
		seen[kind.Code()] = kind.Name()
	}
}

package zkspec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownSpec(t *testing.T) {
	s, err := Lookup("mdoc", 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.NumAttributes)
	require.Equal(t, 1, s.Version)
}

func TestLookupUnknownSpec(t *testing.T) {
	_, err := Lookup("mdoc", 99)
	require.ErrorIs(t, err, ErrUnknownSpec)
}

func TestLookupByHashRoundTrip(t *testing.T) {
	s, err := Lookup("mdoc", 3)
	require.NoError(t, err)
	got, err := LookupByHash(s.CircuitHashHex)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestLookupByHashUnknown(t *testing.T) {
	_, err := LookupByHash("deadbeef")
	require.ErrorIs(t, err, ErrUnknownSpec)
}

func TestCheckRegeneratableRejectsStaleVersion(t *testing.T) {
	err := CheckRegeneratable("mdoc", 2, 0)
	require.ErrorIs(t, err, ErrStaleCircuitVersion)
}

func TestCheckRegeneratableAcceptsLatestOrNewer(t *testing.T) {
	require.NoError(t, CheckRegeneratable("mdoc", 2, 1))
	require.NoError(t, CheckRegeneratable("mdoc", 2, 2))
}

func TestCheckRegeneratableUnknownPair(t *testing.T) {
	err := CheckRegeneratable("mdoc", 42, 1)
	require.ErrorIs(t, err, ErrUnknownSpec)
}

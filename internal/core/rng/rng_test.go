package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNG_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.NextU64(), b.NextU64(), "sequence diverged at step %d", i)
	}
}

func TestRNG_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.NextU64() == b.NextU64() {
			same++
		}
	}
	require.Zero(t, same, "distinct seeds should not track each other")
}

func TestRNG_ReseedRestartsSequence(t *testing.T) {
	r := New(7)
	first := make([]uint32, 50)
	for i := range first {
		first[i] = r.NextU32()
	}

	r.Reseed(7)
	for i := range first {
		require.Equal(t, first[i], r.NextU32(), "reseed did not restart at step %d", i)
	}
	require.Equal(t, uint64(7), r.Seed())
}

func TestRNG_NextRangeInclusive(t *testing.T) {
	r := New(99)

	sawMin, sawMax := false, false
	for i := 0; i < 10_000; i++ {
		v := r.NextRange(3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
		if v == 3 {
			sawMin = true
		}
		if v == 7 {
			sawMax = true
		}
	}
	require.True(t, sawMin, "min bound never produced")
	require.True(t, sawMax, "max bound never produced")
}

func TestRNG_NextRangeSingleValue(t *testing.T) {
	r := New(5)
	for i := 0; i < 10; i++ {
		require.Equal(t, 4, r.NextRange(4, 4))
	}
}

func TestRNG_NextRangeEmptyPanics(t *testing.T) {
	r := New(1)
	require.Panics(t, func() { r.NextRange(5, 4) })
}

func TestRNG_ChanceBounds(t *testing.T) {
	r := New(11)
	for i := 0; i < 100; i++ {
		require.False(t, r.Chance(0))
		require.True(t, r.Chance(100))
	}
}

func TestDeriveSeed_Stable(t *testing.T) {
	require.Equal(t, DeriveSeed(12, 3), DeriveSeed(12, 3))
	require.NotEqual(t, DeriveSeed(12, 3), DeriveSeed(12, 4))
	require.NotEqual(t, DeriveSeed(12, 3), DeriveSeed(13, 3))
}

func BenchmarkRNG_NextU64(b *testing.B) {
	r := New(1)
	for i := 0; i < b.N; i++ {
		_ = r.NextU64()
	}
}

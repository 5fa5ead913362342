package transcript

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/stretchr/testify/require"
)

func TestDeterministicGivenSameAbsorbs(t *testing.T) {
	f := fp.Field()
	t1 := New()
	t2 := New()

	t1.Absorb(TagInput, []byte("hello"))
	t2.Absorb(TagInput, []byte("hello"))
	require.Equal(t, t1.Digest(), t2.Digest())

	c1 := t1.SqueezeChallenge(f)
	c2 := t2.SqueezeChallenge(f)
	require.True(t, c1.Equal(c2))
}

func TestDifferentTagsDiverge(t *testing.T) {
	t1 := New()
	t2 := New()
	t1.Absorb(TagInput, []byte("x"))
	t2.Absorb(TagPoly, []byte("x"))
	require.NotEqual(t, t1.Digest(), t2.Digest())
}

func TestSqueezeConsumesDistinctBlocks(t *testing.T) {
	f := fp.Field()
	tr := New()
	tr.Absorb(TagInput, []byte("seed"))
	elts := tr.SqueezeField(f, 4)
	for i := 0; i < len(elts); i++ {
		for j := i + 1; j < len(elts); j++ {
			require.False(t, elts[i].Equal(elts[j]), "squeeze outputs should not collide")
		}
	}
}

func TestDistinctIndicesHaveNoDuplicates(t *testing.T) {
	tr := New()
	tr.Absorb(TagOpen, []byte("columns"))
	idx := tr.DistinctIndices(300, 80)
	require.Len(t, idx, 80)
	seen := make(map[uint32]bool)
	for _, i := range idx {
		require.False(t, seen[i])
		seen[i] = true
		require.Less(t, i, uint32(300))
	}
}

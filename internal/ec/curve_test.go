package ec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorOnCurve(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()
	require.True(t, g.IsOnCurve())
}

func TestIdentityIsAdditiveIdentity(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()
	id := curve.Identity()

	sum := g.Add(id)
	x1, y1 := sum.Affine()
	x2, y2 := g.Affine()
	require.True(t, x1.Equal(x2))
	require.True(t, y1.Equal(y2))
}

func TestDoubleMatchesAdd(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()

	d1 := g.Double()
	d2 := g.Add(g)
	x1, y1 := d1.Affine()
	x2, y2 := d2.Affine()
	require.True(t, x1.Equal(x2))
	require.True(t, y1.Equal(y2))
	require.True(t, d1.IsOnCurve())
}

func TestAddInverseIsIdentity(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()
	sum := g.Add(g.Neg())
	require.True(t, sum.IsZero())
}

func bitsOf(n uint64, width int) []bool {
	out := make([]bool, width)
	for i := 0; i < width; i++ {
		out[width-1-i] = (n>>uint(i))&1 == 1
	}
	return out
}

func TestScalarMultMatchesRepeatedAdd(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()

	acc := curve.Identity()
	for i := 0; i < 13; i++ {
		acc = acc.Add(g)
	}
	got := g.ScalarMult(bitsOf(13, 8))

	x1, y1 := acc.Affine()
	x2, y2 := got.Affine()
	require.True(t, x1.Equal(x2))
	require.True(t, y1.Equal(y2))
}

func TestMultiScalarMultMatchesSumOfScalarMults(t *testing.T) {
	curve := BN254G1()
	g := curve.Generator()
	h := g.Double()

	scalars := [][]bool{bitsOf(5, 8), bitsOf(11, 8)}
	points := []*Point{g, h}

	got := MultiScalarMult(curve, scalars, points)
	want := g.ScalarMult(bitsOf(5, 8)).Add(h.ScalarMult(bitsOf(11, 8)))

	x1, y1 := got.Affine()
	x2, y2 := want.Affine()
	require.True(t, x1.Equal(x2))
	require.True(t, y1.Equal(y2))
}

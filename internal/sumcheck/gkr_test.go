package sumcheck

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/longfellow-zk/longfellow/internal/circuit"
	"github.com/longfellow-zk/longfellow/internal/transcript"
	"github.com/stretchr/testify/require"
)

func buildAdderCircuit(f algebra.Field) *circuit.Circuit {
	b := circuit.NewBuilder(f)
	x := b.PublicInput()
	y := b.PrivateInput()
	z := b.PrivateInput()
	sum := b.Add(b.Add(x, y), z)
	b.AssertEq(sum, b.Konst(f.OfScalar(10)))
	return b.Compile()
}

func TestGKRAcceptsSatisfiedWitness(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(3)}
	witness, err := c.Evaluate(inputs)
	require.NoError(t, err)
	require.True(t, c.Satisfied(witness))

	trP := transcript.New()
	proof, claims := Prove(trP, c, witness)

	trV := transcript.New()
	vClaims, err := Verify(trV, c, proof)
	require.NoError(t, err)
	require.Equal(t, trP.Digest(), trV.Digest())
	require.True(t, claims[0].Value.Equal(vClaims[0].Value))
	require.True(t, claims[1].Value.Equal(vClaims[1].Value))
}

func TestGKRRejectsUnsatisfiedWitness(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(99)}
	witness, err := c.Evaluate(inputs)
	require.NoError(t, err)
	require.False(t, c.Satisfied(witness))

	trP := transcript.New()
	proof, _ := Prove(trP, c, witness)

	trV := transcript.New()
	_, err = Verify(trV, c, proof)
	require.Error(t, err)
}

func TestLinearFormCoeffsMatchesDirectEvaluation(t *testing.T) {
	f := fp.Field()
	point := []algebra.Elt{f.OfScalar(3), f.OfScalar(5)}
	values := []algebra.Elt{f.OfScalar(1), f.OfScalar(2), f.OfScalar(3), f.OfScalar(4)}
	coeffs := LinearFormCoeffs(f, point, len(values))

	direct := f.Zero()
	for i, c := range coeffs {
		direct = f.New().Add(direct, f.New().Mul(c, values[i]))
	}
	// Also compute via repeated linear interpolation over the hypercube,
	// which is the textbook definition of a multilinear extension. Indices
	// are LSB-first (indexBits convention), so each fold pairs adjacent
	// elements (2i, 2i+1), matching sumcheck.go's foldVec.
	cur := append([]algebra.Elt(nil), values...)
	pt := point
	for len(cur) > 1 {
		half := len(cur) / 2
		next := make([]algebra.Elt, half)
		bit := pt[0]
		for i := range next {
			a, b := cur[2*i], cur[2*i+1]
			diff := f.New().Sub(b, a)
			diff = f.New().Mul(diff, bit)
			next[i] = f.New().Add(a, diff)
		}
		cur = next
		pt = pt[1:]
	}
	require.True(t, direct.Equal(cur[0]))
}

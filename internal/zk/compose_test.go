package zk

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/longfellow-zk/longfellow/internal/circuit"
	"github.com/longfellow-zk/longfellow/internal/transcript"
	"github.com/stretchr/testify/require"
)

// buildAdderCircuit asserts x+y+z == 10, the same small circuit
// internal/sumcheck's GKR tests use, so this package's round trip exercises
// a circuit whose correctness is already independently established there.
func buildAdderCircuit(f algebra.Field) *circuit.Circuit {
	b := circuit.NewBuilder(f)
	x := b.PublicInput()
	y := b.PrivateInput()
	z := b.PrivateInput()
	sum := b.Add(b.Add(x, y), z)
	b.AssertEq(sum, b.Konst(f.OfScalar(10)))
	return b.Compile()
}

func smallParams() Params {
	return Params{Rate: 4, NumQueries: 8, NumBlindRows: 2}
}

func TestZKRoundTrip(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(3)}
	params := smallParams()

	trP := transcript.New()
	proof, err := Prove(trP, c, inputs, params)
	require.NoError(t, err)

	trV := transcript.New()
	err = Verify(trV, c, inputs[:c.NPubIn], params, proof)
	require.NoError(t, err)
}

func TestZKProveRejectsUnsatisfiedWitness(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(99)}
	params := smallParams()

	trP := transcript.New()
	_, err := Prove(trP, c, inputs, params)
	require.ErrorIs(t, err, ErrWitnessUnsatisfied)
}

func TestZKVerifyRejectsTamperedProof(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(3)}
	params := smallParams()

	trP := transcript.New()
	proof, err := Prove(trP, c, inputs, params)
	require.NoError(t, err)

	proof.Ligero.Responses[0].Row[0] = f.New().Add(proof.Ligero.Responses[0].Row[0], f.One())

	trV := transcript.New()
	err = Verify(trV, c, inputs[:c.NPubIn], params, proof)
	require.Error(t, err)
}

package circuit

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSatisfiedWitness(t *testing.T) {
	f := fp.Field()
	b := NewBuilder(f)
	x := b.PublicInput()
	y := b.PrivateInput()
	b.AssertEq(b.Add(x, y), b.Konst(f.OfScalar(7)))
	c := b.Compile()

	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4)}
	witness, err := c.Evaluate(inputs)
	require.NoError(t, err)
	require.True(t, c.Satisfied(witness))
}

func TestEvaluateUnsatisfiedWitness(t *testing.T) {
	f := fp.Field()
	b := NewBuilder(f)
	x := b.PublicInput()
	y := b.PrivateInput()
	b.AssertEq(b.Add(x, y), b.Konst(f.OfScalar(7)))
	c := b.Compile()

	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(100)}
	witness, err := c.Evaluate(inputs)
	require.NoError(t, err)
	require.False(t, c.Satisfied(witness))
}

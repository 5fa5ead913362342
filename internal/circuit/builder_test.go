package circuit

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/stretchr/testify/require"
)

func TestCompileSimpleAssertEq(t *testing.T) {
	f := fp.Field()
	b := NewBuilder(f)
	x := b.PublicInput()
	y := b.PrivateInput()
	sum := b.Add(x, y)
	b.AssertEq(sum, b.Konst(f.OfScalar(7)))

	c := b.Compile()
	// The builder's constant-one wire is itself a public input.
	require.Equal(t, uint64(3), c.NInputs)
	require.Equal(t, uint64(2), c.NPubIn)
	require.NotZero(t, c.NL())
}

func TestCanonicalizationIsOrderIndependent(t *testing.T) {
	f := fp.Field()

	build := func(order int) *Circuit {
		b := NewBuilder(f)
		x := b.PublicInput()
		y := b.PublicInput()
		var sum, diff WireID
		if order == 0 {
			sum = b.Add(x, y)
			diff = b.Sub(x, y)
		} else {
			diff = b.Sub(x, y)
			sum = b.Add(x, y)
		}
		prod := b.Mul(sum, diff)
		b.AssertEq(prod, b.Konst(f.OfScalar(5)))
		return b.Compile()
	}

	c1 := build(0)
	c2 := build(1)
	require.Equal(t, c1.Marshal(), c2.Marshal())
	require.Equal(t, c1.ID(), c2.ID())
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	f := fp.Field()
	b := NewBuilder(f)
	x := b.PublicInput()
	b.Assert0(b.Sub(x, b.Konst(f.OfScalar(42))))
	c := b.Compile()

	data := c.Marshal()
	parsed, err := Unmarshal(f, data)
	require.NoError(t, err)
	require.Equal(t, c.ID(), parsed.ID())
}

func TestUnmarshalRejectsTruncated(t *testing.T) {
	f := fp.Field()
	b := NewBuilder(f)
	x := b.PublicInput()
	b.Assert0(b.Sub(x, b.Konst(f.OfScalar(1))))
	c := b.Compile()
	data := c.Marshal()
	// Dropping the final byte must be rejected, as any adversarial
	// shortening must be.
	_, err := Unmarshal(f, data[:len(data)-1])
	require.Error(t, err)
}

package producers

import (
	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// BooleanConstrain asserts every wire in bits holds 0 or 1 via the standard
// b*(1-b)=0 gadget. In this package only SHA256 uses it; the ECDSA, base64
// and CBOR producers assert a single verdict wire instead.
func BooleanConstrain(b *circuit.Builder, bits []circuit.WireID) {
	f := b.Field()
	one := b.Konst(f.One())
	for _, w := range bits {
		oneMinusW := b.Sub(one, w)
		prod := b.Mul(w, oneMinusW)
		b.Assert0(prod)
	}
}

// PackBitsLE combines little-endian bits (already boolean-constrained by
// the caller) into a single wire via the affine combination sum(bit_i *
// 2^i), the field-level "word from bits" reconstruction every bit-decomposed
// gadget needs before it can participate in an equality assertion against a
// packed public value.
func PackBitsLE(b *circuit.Builder, bits []circuit.WireID) circuit.WireID {
	f := b.Field()
	acc := b.Konst(f.Zero())
	weight := f.One()
	two := f.Two()
	for _, w := range bits {
		acc = b.Add(acc, b.Linear(w, weight))
		weight = f.New().Mul(weight, two)
	}
	return acc
}

// WireBitsOf decomposes n into nbits little-endian boolean field elements
// (0 or 1), the off-circuit values a set of bit wires packed by PackBitsLE
// would carry for n.
func WireBitsOf(f algebra.Field, n uint64, nbits int) []algebra.Elt {
	out := make([]algebra.Elt, nbits)
	for i := 0; i < nbits; i++ {
		out[i] = f.OfScalar((n >> uint(i)) & 1)
	}
	return out
}

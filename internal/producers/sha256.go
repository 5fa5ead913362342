package producers

import (
	"crypto/sha256"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// SHA256 is the circuit producer for spec.md §2's SHA-256 layer: it hashes
// the mdoc's MSO byte string. Per spec.md §1 this is treated as an
// interface, not a bit-level gate layout — the off-circuit Witness step runs
// the real stdlib implementation, and the in-circuit gadget only
// boolean-constrains the claimed digest bits and packs them into word wires.
// It does not compare those words against any digest value, and no other
// producer in this package consumes them.
type SHA256 struct{}

// Witness hashes raw with crypto/sha256 and returns the 256 little-endian
// boolean field elements a bit-exact arithmetization would have derived gate
// by gate from the compression function.
func (SHA256) Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error) {
	digest := sha256.Sum256(raw)
	bits := make([]algebra.Elt, 0, 256)
	for _, byt := range digest {
		for i := 0; i < 8; i++ {
			bits = append(bits, f.OfScalar(uint64((byt>>uint(i))&1)))
		}
	}
	return bits, nil
}

// Build boolean-constrains the 256 input bit wires and packs them, 32 bits
// at a time, into 8 word wires — the shape a real SHA-256 arithmetization
// exposes to whatever producer consumes the digest next.
func (SHA256) Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID {
	if len(inputs) != 256 {
		panic("producers: sha256 gadget expects exactly 256 bit wires")
	}
	BooleanConstrain(b, inputs)
	words := make([]circuit.WireID, 8)
	for w := 0; w < 8; w++ {
		words[w] = PackBitsLE(b, inputs[w*32:(w+1)*32])
	}
	return words
}

func (SHA256) Name() string { return "sha256" }

package producers

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// ECDSAP256 is the circuit producer for spec.md §2's ECDSA-P256 layer: it
// checks the mdoc issuer's COSE_Sign1 signature over the MSO digest. As
// with SHA256, spec.md §1 treats the P-256 scalar-multiplication chain as an
// interface rather than a bit-level gate layout; Witness runs the real
// verification with crypto/ecdsa and crypto/elliptic, and Build wires only
// the "the claimed verdict is exactly valid" shape.
type ECDSAP256 struct{}

// rawSig is the layout Witness expects raw to be: pubX(32) || pubY(32) ||
// digest(32) || r(32) || s(32), big-endian fixed-width fields, matching the
// fixed-width encodings internal/algebra.Elt.Bytes() uses elsewhere.
const rawSigLen = 32 * 5

// ErrMalformedSignatureInput is returned when raw is not rawSigLen bytes.
var ErrMalformedSignatureInput = fmt.Errorf("ecdsap256: expected pubX||pubY||digest||r||s, 160 bytes total")

// Witness verifies the P-256 signature encoded in raw and returns a single
// field element: the counter-group encoding of 1 (Counter().AsCounter(1))
// if the signature verifies, otherwise AsCounter(0). A bit-exact
// arithmetization would instead emit every intermediate scalar-multiplication
// wire; this interface-level producer emits only the final verdict.
func (ECDSAP256) Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error) {
	if len(raw) != rawSigLen {
		return nil, ErrMalformedSignatureInput
	}
	x := new(big.Int).SetBytes(raw[0:32])
	y := new(big.Int).SetBytes(raw[32:64])
	digest := raw[64:96]
	r := new(big.Int).SetBytes(raw[96:128])
	s := new(big.Int).SetBytes(raw[128:160])

	pub := &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}
	valid := ecdsa.Verify(pub, digest, r, s)

	cg := f.Counter()
	if valid {
		return []algebra.Elt{cg.AsCounter(1)}, nil
	}
	return []algebra.Elt{cg.AsCounter(0)}, nil
}

// Build asserts the verdict wire equals the counter-group's encoding of 1,
// i.e. that Witness found a valid signature (spec.md §9's nonzeroness-check
// idiom, here degenerate to a single factor rather than a grand product).
func (ECDSAP256) Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID {
	if len(inputs) != 1 {
		panic("producers: ecdsap256 gadget expects exactly one verdict wire")
	}
	f := b.Field()
	verdict := inputs[0]
	b.AssertEq(verdict, b.Konst(f.Counter().AsCounter(1)))
	return []circuit.WireID{verdict}
}

func (ECDSAP256) Name() string { return "ecdsa-p256" }

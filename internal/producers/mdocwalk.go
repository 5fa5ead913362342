package producers

import (
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

const mdocWalkRawLen = 32 + 32 + 1

// ErrMalformedWalkInput is returned when raw is not mdocWalkRawLen bytes.
var ErrMalformedWalkInput = fmt.Errorf("mdoc-walk: expected attrValue||requestedValue||notRevoked, 65 bytes total")

// MdocWalk is the circuit producer for spec.md §2's top-level "MDOC
// structure walker": having located the requested attribute's CBOR value
// (via CBORParser) and taken the document's revocation bit as supplied by
// the caller (there is no status-list lookup here; spec.md §8.1's
// supplemented revocation scenario), it wires
// the policy's two core assertions: the attribute equals the value the
// verifier asked about, and the credential is not revoked. Unlike the other
// producers in this package, this one is the actual policy check (not a
// reference stand-in for a hash/signature/parse primitive), so Build
// asserts equality directly rather than checking a verdict indicator.
type MdocWalk struct{}

// Witness packs attrValue(32) || requestedValue(32) || notRevoked(1 byte,
// 0x01 or 0x00) from raw into field elements: the attribute value, the
// requested value, and a counter-group indicator for "not revoked".
func (MdocWalk) Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error) {
	if len(raw) != mdocWalkRawLen {
		return nil, ErrMalformedWalkInput
	}
	attr := f.New()
	if err := attr.SetBytes(raw[0:32]); err != nil {
		return nil, err
	}
	requested := f.New()
	if err := requested.SetBytes(raw[32:64]); err != nil {
		return nil, err
	}
	cg := f.Counter()
	notRevoked := cg.AsCounter(0)
	if raw[64] != 0 {
		notRevoked = cg.AsCounter(1)
	}
	return []algebra.Elt{attr, requested, notRevoked}, nil
}

// Build asserts attr == requested (the policy's attribute comparison) and
// that the revocation wire carries the counter-group's encoding of 1 (the
// credential is live).
func (MdocWalk) Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID {
	if len(inputs) != 3 {
		panic("producers: mdocwalk gadget expects exactly three wires (attr, requested, notRevoked)")
	}
	f := b.Field()
	attr, requested, notRevoked := inputs[0], inputs[1], inputs[2]
	b.AssertEq(attr, requested)
	b.AssertEq(notRevoked, b.Konst(f.Counter().AsCounter(1)))
	return []circuit.WireID{attr}
}

func (MdocWalk) Name() string { return "mdoc-walk" }

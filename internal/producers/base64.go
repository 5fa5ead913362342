package producers

import (
	"encoding/base64"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// Base64URL is the circuit producer for spec.md §2's base64 layer: mdoc
// device/session-transcript bytes sometimes arrive base64url-encoded (e.g.
// inside a DeviceEngagement QR payload) and must be decoded before CBOR
// parsing. As with the other producers, the in-circuit gadget checks the
// decode-succeeded shape rather than the 6-bit-symbol gate chain a bit-exact
// arithmetization would use.
type Base64URL struct{}

// Witness decodes raw as standard-library base64url (no padding) and
// reports success via a counter-group indicator.
func (Base64URL) Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error) {
	cg := f.Counter()
	if _, err := base64.RawURLEncoding.DecodeString(string(raw)); err != nil {
		return []algebra.Elt{cg.AsCounter(0)}, nil
	}
	return []algebra.Elt{cg.AsCounter(1)}, nil
}

// Build asserts the decode-succeeded wire equals the counter-group's
// encoding of 1.
func (Base64URL) Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID {
	if len(inputs) != 1 {
		panic("producers: base64 gadget expects exactly one decode-verdict wire")
	}
	f := b.Field()
	verdict := inputs[0]
	b.AssertEq(verdict, b.Konst(f.Counter().AsCounter(1)))
	return []circuit.WireID{verdict}
}

func (Base64URL) Name() string { return "base64url" }

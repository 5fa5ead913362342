package producers

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// CBORParser is the circuit producer for spec.md §2's CBOR-parser layer: it
// walks the mdoc IssuerSigned structure and extracts the attribute
// name/value pairs the policy compares against. Per spec.md §1/§9 the real
// arithmetization checks every parser invariant (tag bytes, length prefixes,
// map-key ordering) with a single grand-product argument; this producer
// keeps that shape at the interface level — Witness runs the real decode
// with fxamacker/cbor (the dependency every mdoc-adjacent repo in this
// corpus pulls in), and Build only asserts the decode-succeeded indicator.
type CBORParser struct{}

// Witness decodes raw as a CBOR map and returns a single counter-group
// element: AsCounter(1) if raw is well-formed CBOR, AsCounter(0) otherwise.
// A bit-exact arithmetization would instead emit one wire per consumed
// input byte, chained through the parser's invariant checks.
func (CBORParser) Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error) {
	var v interface{}
	cg := f.Counter()
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return []algebra.Elt{cg.AsCounter(0)}, nil
	}
	return []algebra.Elt{cg.AsCounter(1)}, nil
}

// Build asserts the decode-succeeded wire equals the counter-group's
// encoding of 1.
func (CBORParser) Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID {
	if len(inputs) != 1 {
		panic("producers: cbor gadget expects exactly one decode-verdict wire")
	}
	f := b.Field()
	verdict := inputs[0]
	b.AssertEq(verdict, b.Konst(f.Counter().AsCounter(1)))
	return []circuit.WireID{verdict}
}

func (CBORParser) Name() string { return "cbor-parser" }

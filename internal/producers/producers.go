// Package producers defines the circuit-producer contract spec.md §1 keeps
// at the interface level: "the specific credential circuits (SHA-256,
// ECDSA, CBOR parser, base64 decoder, MDOC structure walker) are treated as
// circuit producers: their intent is described only as interfaces, not
// bit-level gate layouts." Concrete producers in this package satisfy
// Producer with a reference (non-bit-exact) gadget — enough to exercise
// internal/circuit's builder and internal/zk's composition end to end —
// plus an out-of-circuit Witness step that fills the private wires a real
// bit-level arithmetization would derive from SHA-256/ECDSA/CBOR gate
// chains.
package producers

import (
	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
)

// Producer arithmetizes one credential-processing step (spec.md §2's
// dependency-ordered layer 4, "circuit producers"). Witness and Build are
// split so the same producer can be used to fill private inputs (off
// circuit, using the real Go stdlib primitive) and to wire the
// corresponding constraint into a Builder (in circuit, as a reference
// gadget) without duplicating the "what does this step compute" logic.
type Producer interface {
	// Name identifies the producer for logging and circuit-ID bookkeeping.
	Name() string
	// Witness computes this step's private wire values off circuit, using
	// the real Go stdlib/ecosystem primitive (crypto/sha256, crypto/ecdsa,
	// fxamacker/cbor, encoding/base64) the in-circuit gadget only checks the
	// shape of.
	Witness(f algebra.Field, raw []byte) ([]algebra.Elt, error)
	// Build wires this producer's gadget into b, consuming the wires in
	// inputs (previously allocated, e.g. via b.PrivateInput/PublicInput) and
	// returning the output wires downstream producers or the top-level
	// attribute-comparison gadget consume.
	Build(b *circuit.Builder, inputs []circuit.WireID) []circuit.WireID
}

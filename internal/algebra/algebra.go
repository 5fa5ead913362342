// Package algebra defines the field-element contracts shared by every layer
// above it (linalg, ec, circuit, sumcheck, ligero): prime fields in Montgomery
// form and the characteristic-2 tower used by the GF(2^128) instantiation.
//
// Concrete fields live in subpackages (fp, gf2k) so that the hot paths for the
// two fields this library actually ships — the bn254 scalar field used for
// sumcheck/Ligero arithmetic, and GF(2^128) used by the hash/MDOC circuits —
// are monomorphized rather than routed through a boxed interface on every
// multiplication. The Elt interface below is the contract those concrete
// types satisfy, and is what generic helpers (Horner evaluation, EQ, batched
// inversion) are written against.
package algebra

// Elt is a single field element. Implementations mutate the receiver, the
// same convention gnark-crypto's fr.Element uses, so that generic code
// written against this interface does not allocate on every operation.
type Elt interface {
	// Add sets the receiver to a+b and returns it.
	Add(a, b Elt) Elt
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Elt) Elt
	// Neg sets the receiver to -a and returns it.
	Neg(a Elt) Elt
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Elt) Elt
	// Square sets the receiver to a*a and returns it.
	Square(a Elt) Elt
	// Inverse sets the receiver to a^-1 and returns it. Panics if a is zero.
	Inverse(a Elt) Elt
	// IsZero reports whether the receiver is the additive identity.
	IsZero() bool
	// Equal reports whether the receiver equals other.
	Equal(other Elt) bool
	// Set copies a into the receiver and returns it.
	Set(a Elt) Elt
	// Bytes returns the fixed-width big-endian encoding of the receiver.
	Bytes() []byte
	// SetBytes decodes a fixed-width big-endian encoding into the receiver.
	// It returns an error (range failure) rather than silently reducing mod p,
	// per spec.md's serialization round-trip requirement.
	SetBytes(b []byte) error
	// String renders a decimal (prime fields) or hex (binary fields) form,
	// used only for debugging and canonical sort keys — never for algebra.
	String() string
}

// Field is a field descriptor: an immutable, shareable factory for Elt values
// plus the fixed constants and evaluation points spec.md §4.1 requires. Field
// descriptors are constructed once (see fp.Field(), gf2k.Field()) and may be
// shared read-only across many concurrent proofs, matching §5's resource
// model.
type Field interface {
	// Name identifies the field for transcript domain separation and ZkSpec
	// bookkeeping, e.g. "bn254.fr" or "gf2_128".
	Name() string
	// NumBytes is the fixed wire width of a serialized element.
	NumBytes() int
	// New allocates a zero element.
	New() Elt
	// Zero, One, Two, MinusOne, Half are small named constants.
	Zero() Elt
	One() Elt
	Two() Elt
	MinusOne() Elt
	Half() Elt
	// X and InvX are a canonical field-extension generator and its inverse,
	// used by LCH14-style FFTs and subfield injection for gf2k; prime-field
	// implementations set them to One()/One() since they are unused there.
	X() Elt
	InvX() Elt
	// OfScalar injects a uint64 as a field element.
	OfScalar(n uint64) Elt
	// OfString parses a decimal or 0x-prefixed hex literal.
	OfString(s string) (Elt, error)
	// EvaluationPoints returns at least 6 distinct points used as the fixed
	// Lagrange-basis nodes for Polynomial (spec.md §3), along with their
	// precomputed Newton-form denominators (NewtonDenominators()[i] is
	// 1/prod_{j!=i}(points[i]-points[j])).
	EvaluationPoints() []Elt
	NewtonDenominators() []Elt
	// Counter returns the counter-group view of this field (spec.md §4.1).
	Counter() CounterGroup
}

// CounterGroup injects small unsigned integers into a field without modular
// wraparound artifacts, and exposes a "zero iff the counter is zero"
// indicator used by the CBOR circuit to test nonzeroness via a single
// product gate (spec.md §4.1/§9).
type CounterGroup interface {
	// AsCounter maps a small non-negative integer into the group.
	AsCounter(n uint64) Elt
	// ZnzIndicator returns a field element that is zero iff c encodes zero.
	// For binary fields this is c-1 (the group is multiplicative, so the
	// identity is 1); for prime fields this is c itself (the group is
	// additive, so the identity is 0).
	ZnzIndicator(c Elt) Elt
}

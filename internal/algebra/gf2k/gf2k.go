// Package gf2k implements GF(2^128), the characteristic-2 field used by the
// hash/MDOC circuit (spec.md §3/§4.1). No repository in the retrieval pack
// implements a binary-field tower (gnark-crypto targets prime-order SNARK
// curves; the pack's other hash/commitment code is all prime-field or
// off-the-shelf Poseidon/SHA), so this package is a from-scratch software
// carry-less-multiply implementation grounded directly on the field
// described in spec.md §4.1, not on a pack dependency — see DESIGN.md.
package gf2k

import (
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
)

// Elt is an element of GF(2^128), represented as a 128-bit vector in two
// uint64 limbs (lo holds bits 0..63, hi holds bits 64..127).
type Elt struct {
	lo, hi uint64
}

var _ algebra.Elt = (*Elt)(nil)

func as(e algebra.Elt) *Elt { return e.(*Elt) }

func (e *Elt) Add(a, b algebra.Elt) algebra.Elt {
	// Addition in GF(2^k) is bitwise XOR; also serves as subtraction.
	e.lo = as(a).lo ^ as(b).lo
	e.hi = as(a).hi ^ as(b).hi
	return e
}

func (e *Elt) Sub(a, b algebra.Elt) algebra.Elt { return e.Add(a, b) }

func (e *Elt) Neg(a algebra.Elt) algebra.Elt {
	e.lo, e.hi = as(a).lo, as(a).hi
	return e
}

// modulus is x^128 + x^7 + x^2 + x + 1 (spec.md §4.1), represented as the
// low 128 bits of the reduction polynomial below x^128 itself: bits 7,2,1,0.
const reductionBits = uint64(1<<7 | 1<<2 | 1<<1 | 1)

func (e *Elt) Mul(a, b algebra.Elt) algebra.Elt {
	*e = *clmulReduce(as(a), as(b))
	return e
}

// clmul128 performs carry-less (polynomial) multiplication of two 128-bit
// operands, producing a 256-bit product across four uint64 limbs (lo order
// first). It is a straightforward schoolbook shift-and-xor; not constant
// time, which is acceptable since all field arithmetic here is prover/verifier
// side, never executed on secret key material outside the arithmetized
// circuit (spec.md §4.3 makes the same prover-side/non-constant-time call for
// scalar multiplication).
func clmul128(a, b *Elt) (r0, r1, r2, r3 uint64) {
	clmul64 := func(x, y uint64) (lo, hi uint64) {
		for i := 0; i < 64; i++ {
			if (y>>uint(i))&1 == 1 {
				shl := shiftLeft128(x, 0, uint(i))
				lo ^= shl[0]
				hi ^= shl[1]
			}
		}
		return
	}
	// Four 64x64 -> 128 partial products assembled into the 256-bit result.
	loLo, loHi := clmul64(a.lo, b.lo)
	midLo1, midHi1 := clmul64(a.lo, b.hi)
	midLo2, midHi2 := clmul64(a.hi, b.lo)
	hiLo, hiHi := clmul64(a.hi, b.hi)

	r0 = loLo
	mid := loHi ^ midLo1 ^ midLo2
	r1 = mid
	high := midHi1 ^ midHi2 ^ hiLo
	r2 = high
	r3 = hiHi
	return
}

// shiftLeft128 shifts the 64-bit value x left by n bits (n < 64) starting at
// limb position 0, returning the low/high 64-bit limbs of the result.
func shiftLeft128(x, _ uint64, n uint) [2]uint64 {
	if n == 0 {
		return [2]uint64{x, 0}
	}
	return [2]uint64{x << n, x >> (64 - n)}
}

// clmulReduce multiplies a and b as GF(2)[x] polynomials and reduces modulo
// x^128 + x^7 + x^2 + x + 1.
func clmulReduce(a, b *Elt) *Elt {
	r0, r1, r2, r3 := clmul128(a, b)
	// Fold the high 128 bits (r2:r3, representing the x^128.. terms) back
	// down using x^128 = x^7+x^2+x+1 (mod the irreducible), twice: once to
	// fold r3 (bits 192..255, i.e. x^128 times the x^64.. part) and once for
	// the remainder in r2's top half.
	fold := func(hi uint64) (foldLo, foldHi uint64) {
		// hi * x^128 mod m(x) == hi shifted into the reduction polynomial's
		// bit pattern (since x^128 ≡ x^7+x^2+x+1).
		lo, top := shiftLeft128(hi, 0, 7)[0], shiftLeft128(hi, 0, 7)[1]
		lo2, top2 := shiftLeft128(hi, 0, 2)[0], shiftLeft128(hi, 0, 2)[1]
		lo1, top1 := shiftLeft128(hi, 0, 1)[0], shiftLeft128(hi, 0, 1)[1]
		foldLo = lo ^ lo2 ^ lo1 ^ hi
		foldHi = top ^ top2 ^ top1
		return
	}
	f3lo, f3hi := fold(r3)
	r1 ^= f3lo
	r2 ^= f3hi
	f2lo, f2hi := fold(r2)
	r0 ^= f2lo
	r1 ^= f2hi
	return &Elt{lo: r0, hi: r1}
}

func (e *Elt) Square(a algebra.Elt) algebra.Elt { return e.Mul(a, a) }

// Inverse computes a^-1 via Fermat's little theorem: a^(2^128-2), using
// square-and-multiply over the 128 squarings. GF(2^128)* has order 2^128-1,
// so a^(2^128-1) = 1 for a != 0, hence a^-1 = a^(2^128-2).
func (e *Elt) Inverse(a algebra.Elt) algebra.Elt {
	av := as(a)
	if av.lo == 0 && av.hi == 0 {
		panic("gf2k: inverse of zero")
	}
	// a^(2^128-2) = product over i=1..127 of a^(2^i), i.e. repeated squaring
	// accumulated via a square-and-multiply ladder on the exponent 2^128-2
	// (binary: 127 ones followed by a zero).
	result := &Elt{lo: 0, hi: 0}
	result.one()
	base := &Elt{lo: av.lo, hi: av.hi}
	for i := 0; i < 127; i++ {
		base.Square(base)
		result.Mul(result, base)
	}
	// final bit of the exponent (2^128-2) is 0: one more squaring only.
	base.Square(base)
	e.lo, e.hi = result.lo, result.hi
	return e
}

func (e *Elt) one() { e.lo, e.hi = 1, 0 }

func (e *Elt) IsZero() bool { return e.lo == 0 && e.hi == 0 }

func (e *Elt) Equal(other algebra.Elt) bool {
	o := as(other)
	return e.lo == o.lo && e.hi == o.hi
}

func (e *Elt) Set(a algebra.Elt) algebra.Elt {
	o := as(a)
	e.lo, e.hi = o.lo, o.hi
	return e
}

// NumBytes is the fixed wire width of a GF(2^128) element.
const NumBytes = 16

func (e *Elt) Bytes() []byte {
	out := make([]byte, NumBytes)
	for i := 0; i < 8; i++ {
		out[i] = byte(e.hi >> (8 * (7 - i)))
		out[8+i] = byte(e.lo >> (8 * (7 - i)))
	}
	return out
}

// SetBytes decodes a 16-byte big-endian encoding. Every bit pattern is a
// valid GF(2^128) element, so unlike the prime-field wrapper this never
// rejects on range — only on length (spec.md §8: "every k-bit string is
// valid" for binary fields).
func (e *Elt) SetBytes(b []byte) error {
	if len(b) != NumBytes {
		return fmt.Errorf("gf2k: encoded element must be %d bytes, got %d", NumBytes, len(b))
	}
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(b[i])
		lo = lo<<8 | uint64(b[8+i])
	}
	e.hi, e.lo = hi, lo
	return nil
}

func (e *Elt) String() string { return fmt.Sprintf("%016x%016x", e.hi, e.lo) }

// field is the shared GF(2^128) descriptor.
type field struct {
	evalPoints []algebra.Elt
	newtonDen  []algebra.Elt
	subfield   []*Elt // basis beta_0 .. beta_{s-1}
}

var singleton = buildField()

// Field returns the shared, immutable GF(2^128) descriptor.
func Field() algebra.Field { return singleton }

func buildField() *field {
	f := &field{}
	// See fp.buildField's comment: sized beyond the §4.1 minimum of 6 so
	// Ligero's row width can reuse this fixed-node Lagrange/Newton machinery.
	const n = 128
	pts := make([]*Elt, n)
	for i := 0; i < n; i++ {
		pts[i] = &Elt{lo: uint64(i)}
	}
	dens := make([]*Elt, n)
	for i := 0; i < n; i++ {
		prod := &Elt{lo: 1}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff := new(Elt)
			diff.Sub(pts[i], pts[j])
			prod.Mul(prod, diff)
		}
		dens[i] = new(Elt)
		dens[i].Inverse(prod)
	}
	f.evalPoints = make([]algebra.Elt, n)
	f.newtonDen = make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		f.evalPoints[i] = pts[i]
		f.newtonDen[i] = dens[i]
	}
	// Subfield basis: the standard-basis powers of x (x^0..x^63), giving the
	// distinguished 64-bit subfield GF(2^64) <= GF(2^128) used to inject
	// small scalars (spec.md §4.1) — beta_i = x^i maps a 64-bit integer n to
	// sum_i n_i * x^i by construction, i.e. just the lower limb.
	const subfieldBits = 64
	f.subfield = make([]*Elt, subfieldBits)
	acc := &Elt{lo: 1}
	xElt := &Elt{lo: 2} // "x" is the element with bit-1 set (polynomial X)
	for i := 0; i < subfieldBits; i++ {
		f.subfield[i] = &Elt{lo: acc.lo, hi: acc.hi}
		acc.Mul(acc, xElt)
	}
	return f
}

func (*field) Name() string     { return "gf2_128" }
func (*field) NumBytes() int    { return NumBytes }
func (*field) New() algebra.Elt { return new(Elt) }
func (*field) Zero() algebra.Elt { return &Elt{} }
func (*field) One() algebra.Elt  { return &Elt{lo: 1} }
func (*field) Two() algebra.Elt {
	// In characteristic 2, "2" = 1+1 = 0.
	return &Elt{}
}
func (*field) MinusOne() algebra.Elt { return &Elt{lo: 1} } // -1 == 1 in char 2
func (*field) Half() algebra.Elt {
	// 1/2 is undefined in characteristic 2; callers must never reach this
	// path for gf2k. Panic loudly rather than silently returning garbage.
	panic("gf2k: field has characteristic 2, Half() is undefined")
}

// X is the field generator used by the subspace/LCH14 construction; InvX its
// inverse.
func (*field) X() algebra.Elt {
	return &Elt{lo: 2}
}
func (*field) InvX() algebra.Elt {
	e := new(Elt)
	e.Inverse(&Elt{lo: 2})
	return e
}

func (*field) OfScalar(n uint64) algebra.Elt { return &Elt{lo: n} }

func (*field) OfString(s string) (algebra.Elt, error) {
	var n uint64
	if _, err := fmt.Sscanf(s, "0x%x", &n); err == nil {
		return &Elt{lo: n}, nil
	}
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		return &Elt{lo: n}, nil
	}
	return nil, fmt.Errorf("gf2k: invalid scalar literal %q", s)
}

func (f *field) EvaluationPoints() []algebra.Elt   { return f.evalPoints }
func (f *field) NewtonDenominators() []algebra.Elt { return f.newtonDen }
func (f *field) Counter() algebra.CounterGroup     { return multCounter{f} }

// SubfieldBasis returns the basis {beta_0, ..., beta_63} used to inject a
// 64-bit integer into the distinguished subfield (spec.md §4.1), and by the
// LCH14 additive FFT to build the subspace evaluation domain.
func SubfieldBasis() []*Elt { return singleton.subfield }

// InSubfield reports whether e lies in the distinguished 64-bit subfield
// (spec.md §4.1's in_subfield test): true iff the high limb is zero, given
// the subfield basis construction above (beta_i = x^i for i < 64).
func InSubfield(e *Elt) bool { return e.hi == 0 }

// multCounter is the multiplicative-subgroup counter injection for binary
// fields: AsCounter maps n to x^n in the subgroup generated by x, and the
// zero-iff-zero indicator is counter-1 (the group's multiplicative identity
// is 1 = x^0, not 0).
type multCounter struct{ f *field }

func (m multCounter) AsCounter(n uint64) algebra.Elt {
	out := &Elt{lo: 1}
	base := &Elt{lo: 2}
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			out.Mul(out, base)
		}
		base.Square(base)
	}
	return out
}

func (m multCounter) ZnzIndicator(c algebra.Elt) algebra.Elt {
	out := new(Elt)
	out.Sub(c, singleton.One()) // Sub == Add == XOR in char 2, so this is c-1
	return out
}

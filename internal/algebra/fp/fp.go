// Package fp implements the prime-field instantiation of algebra.Field,
// wrapping github.com/consensys/gnark-crypto's bn254 scalar field. Elements
// there are already stored in Montgomery form internally (the representation
// spec.md §3 requires for PrimeFieldElt), so this package is a thin adapter
// rather than a from-scratch bignum implementation — the same approach the
// teacher repo (vocdoni-davinci-node) takes in crypto/ecc/bn254/bn254.go,
// wrapping gnark-crypto's curve/field types behind a small local interface.
package fp

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/longfellow-zk/longfellow/internal/algebra"
)

// Elt is a single bn254-scalar-field element.
type Elt struct {
	v fr.Element
}

var _ algebra.Elt = (*Elt)(nil)

func wrap(e *Elt) *fr.Element { return &e.v }

func (e *Elt) Add(a, b algebra.Elt) algebra.Elt {
	e.v.Add(wrap(a.(*Elt)), wrap(b.(*Elt)))
	return e
}

func (e *Elt) Sub(a, b algebra.Elt) algebra.Elt {
	e.v.Sub(wrap(a.(*Elt)), wrap(b.(*Elt)))
	return e
}

func (e *Elt) Neg(a algebra.Elt) algebra.Elt {
	e.v.Neg(wrap(a.(*Elt)))
	return e
}

func (e *Elt) Mul(a, b algebra.Elt) algebra.Elt {
	e.v.Mul(wrap(a.(*Elt)), wrap(b.(*Elt)))
	return e
}

func (e *Elt) Square(a algebra.Elt) algebra.Elt {
	e.v.Square(wrap(a.(*Elt)))
	return e
}

func (e *Elt) Inverse(a algebra.Elt) algebra.Elt {
	if wrap(a.(*Elt)).IsZero() {
		panic("fp: inverse of zero")
	}
	e.v.Inverse(wrap(a.(*Elt)))
	return e
}

func (e *Elt) IsZero() bool { return e.v.IsZero() }

func (e *Elt) Equal(other algebra.Elt) bool { return e.v.Equal(wrap(other.(*Elt))) }

func (e *Elt) Set(a algebra.Elt) algebra.Elt {
	e.v.Set(wrap(a.(*Elt)))
	return e
}

// NumBytes is the fixed wire width of a bn254 scalar-field element.
const NumBytes = fr.Bytes

func (e *Elt) Bytes() []byte {
	b := e.v.Bytes() // fr.Element.Bytes returns the canonical big-endian form
	out := make([]byte, NumBytes)
	copy(out, b[:])
	return out
}

func (e *Elt) SetBytes(b []byte) error {
	if len(b) != NumBytes {
		return fmt.Errorf("fp: encoded element must be %d bytes, got %d", NumBytes, len(b))
	}
	var asBig big.Int
	asBig.SetBytes(b)
	if asBig.Cmp(fr.Modulus()) >= 0 {
		return fmt.Errorf("fp: encoded value %s is out of range", asBig.String())
	}
	e.v.SetBigInt(&asBig)
	return nil
}

func (e *Elt) String() string { return e.v.String() }

// field is the singleton algebra.Field descriptor for the bn254 scalar field.
type field struct {
	evalPoints []algebra.Elt
	newtonDen  []algebra.Elt
	counter    counterGroup
}

var singleton = buildField()

// Field returns the shared, immutable Field descriptor for the bn254 scalar
// field — the default field sumcheck and Ligero arithmetize over.
func Field() algebra.Field { return singleton }

func buildField() *field {
	f := &field{}
	// Fixed evaluation points 0..n-1 and their Newton-form denominators
	// 1/prod_{j!=i}(x_i - x_j), precomputed once at init time (spec.md §4.1).
	// Sized generously (well beyond the §4.1 minimum of 6) so that Ligero's
	// row width (internal/ligero) can use the same fixed-node Lagrange/Newton
	// machinery as the rest of the library instead of a second code path.
	const n = 128
	pts := make([]*Elt, n)
	for i := 0; i < n; i++ {
		pts[i] = new(Elt)
		pts[i].v.SetUint64(uint64(i))
	}
	dens := make([]*Elt, n)
	for i := 0; i < n; i++ {
		prod := fr.One()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var diff fr.Element
			diff.Sub(&pts[i].v, &pts[j].v)
			prod.Mul(&prod, &diff)
		}
		var inv fr.Element
		inv.Inverse(&prod)
		dens[i] = new(Elt)
		dens[i].v = inv
	}
	f.evalPoints = make([]algebra.Elt, n)
	f.newtonDen = make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		f.evalPoints[i] = pts[i]
		f.newtonDen[i] = dens[i]
	}
	return f
}

func (*field) Name() string   { return "bn254.fr" }
func (*field) NumBytes() int  { return NumBytes }
func (*field) New() algebra.Elt { return new(Elt) }

func (*field) Zero() algebra.Elt {
	e := new(Elt)
	e.v.SetZero()
	return e
}

func (*field) One() algebra.Elt {
	e := new(Elt)
	e.v.SetOne()
	return e
}

func (*field) Two() algebra.Elt {
	e := new(Elt)
	e.v.SetUint64(2)
	return e
}

func (*field) MinusOne() algebra.Elt {
	e := new(Elt)
	e.v.SetOne()
	e.v.Neg(&e.v)
	return e
}

func (*field) Half() algebra.Elt {
	e := new(Elt)
	e.v.SetUint64(2)
	e.v.Inverse(&e.v)
	return e
}

// X and InvX are unused by a prime field (no subfield-generator structure is
// needed outside gf2k); fixed to One() so generic code sharing the Field
// interface across fp/gf2k never special-cases the prime-field case.
func (*field) X() algebra.Elt    { return singleton.One() }
func (*field) InvX() algebra.Elt { return singleton.One() }

func (*field) OfScalar(n uint64) algebra.Elt {
	e := new(Elt)
	e.v.SetUint64(n)
	return e
}

func (*field) OfString(s string) (algebra.Elt, error) {
	s = strings.TrimSpace(s)
	var asBig big.Int
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = asBig.SetString(s[2:], 16)
	} else {
		_, ok = asBig.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("fp: invalid scalar literal %q", s)
	}
	e := new(Elt)
	e.v.SetBigInt(&asBig)
	return e, nil
}

func (f *field) EvaluationPoints() []algebra.Elt   { return f.evalPoints }
func (f *field) NewtonDenominators() []algebra.Elt { return f.newtonDen }
func (f *field) Counter() algebra.CounterGroup     { return f.counter }

// counterGroup is the additive-group counter injection for prime fields: the
// counter value c equals the scalar itself, and the zero-iff-zero indicator
// is c unchanged (spec.md §4.1).
type counterGroup struct{}

func (counterGroup) AsCounter(n uint64) algebra.Elt { return singleton.OfScalar(n) }
func (counterGroup) ZnzIndicator(c algebra.Elt) algebra.Elt {
	out := new(Elt)
	out.Set(c)
	return out
}

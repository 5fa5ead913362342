package linalg

import (
	bn254fft "github.com/consensys/gnark-crypto/fft"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
)

// PrimeDomain wraps a gnark-crypto fft.Domain sized to a power-of-two N over
// the bn254 scalar field. Domains are read-only after construction and may be
// shared across proofs (spec.md §5), matching how gnark-crypto's own Domain
// is used for Groth16 witness encoding.
type PrimeDomain struct {
	n      uint64
	domain *bn254fft.Domain
}

// NewPrimeDomain builds (or would build, at init/setup time — gnark-crypto's
// NewDomain itself finds the 2^k-th root of unity for the requested
// cardinality) an FFT domain of size n, which must be a power of two.
func NewPrimeDomain(n uint64) *PrimeDomain {
	if n == 0 || n&(n-1) != 0 {
		panic("linalg: PrimeDomain size must be a power of two")
	}
	return &PrimeDomain{n: n, domain: bn254fft.NewDomain(n)}
}

func (d *PrimeDomain) Size() uint64 { return d.n }

func toFr(in []*fp.Elt) []fr.Element {
	out := make([]fr.Element, len(in))
	for i, e := range in {
		b := e.Bytes()
		var asFr fr.Element
		asFr.SetBytes(b)
		out[i] = asFr
	}
	return out
}

func fromFr(in []fr.Element) []*fp.Elt {
	out := make([]*fp.Elt, len(in))
	for i := range in {
		b := in[i].Bytes()
		e := new(fp.Elt)
		if err := e.SetBytes(b[:]); err != nil {
			panic(err) // fr.Element.Bytes() is always canonical, cannot fail here
		}
		out[i] = e
	}
	return out
}

// FFTForward evaluates a monomial-coefficient vector (length N, zero-padded)
// at the domain's N-th roots of unity: fftf in spec.md §8.
func (d *PrimeDomain) FFTForward(coeffs []*fp.Elt) []*fp.Elt {
	padded := make([]*fp.Elt, d.n)
	copy(padded, coeffs)
	for i := len(coeffs); i < int(d.n); i++ {
		padded[i] = new(fp.Elt)
	}
	vals := toFr(padded)
	d.domain.FFT(vals, bn254fft.DIF)
	bn254fft.BitReverse(vals)
	return fromFr(vals)
}

// FFTInverse is fftb in spec.md §8: recovers monomial coefficients (scaled by
// N, per fftb(fftf(A))/N = A) from N evaluations at the roots of unity.
func (d *PrimeDomain) FFTInverse(evals []*fp.Elt) []*fp.Elt {
	vals := toFr(evals)
	bn254fft.BitReverse(vals)
	d.domain.FFTInverse(vals, bn254fft.DIT)
	// The library's inverse already divides by N; multiply it back so the
	// result is fftb's unscaled output.
	var nFr fr.Element
	nFr.SetUint64(d.n)
	for i := range vals {
		vals[i].Mul(&vals[i], &nFr)
	}
	return fromFr(vals)
}

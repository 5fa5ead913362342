package linalg

import "github.com/longfellow-zk/longfellow/internal/algebra/fp"

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) uint64 {
	p := uint64(1)
	for p < uint64(n) {
		p <<= 1
	}
	return p
}

// ConvolutionFp computes the linear convolution of two bn254-scalar-field
// coefficient vectors via conv = IFFT(FFT(a) .* FFT(b)), using a domain large
// enough to avoid wraparound (next power of two >= len(a)+len(b)-1).
func ConvolutionFp(a, b []*fp.Elt) []*fp.Elt {
	outLen := len(a) + len(b) - 1
	n := nextPowerOfTwo(outLen)
	d := NewPrimeDomain(n)

	fa := d.FFTForward(a)
	fb := d.FFTForward(b)
	prod := make([]*fp.Elt, n)
	for i := range prod {
		prod[i] = new(fp.Elt)
		prod[i].Mul(fa[i], fb[i])
	}
	full := d.FFTInverse(prod)

	// FFTInverse returns coefficients scaled by N per spec.md §8's
	// fftb(fftf(A))/N = A identity; undo that scale here.
	invN := fp.Field().OfScalar(n)
	invNElt := fp.Field().New().Inverse(invN)
	for i := range full {
		full[i].Mul(full[i], invNElt.(*fp.Elt))
	}
	return full[:outLen]
}

package linalg

import "github.com/longfellow-zk/longfellow/internal/algebra"

// ExtendLagrange implements the Reed-Solomon interpolation of spec.md §4.2:
// given N Lagrange values at the field's fixed points {0,...,N-1}, extend to
// M > N values at points {0,...,M-1} by (i) converting to monomial form via
// Newton interpolation, (ii) zero-padding, (iii) re-evaluating at the
// additional points. This generic O(N*M) path works over any algebra.Field
// (including gf2k, which has no multiplicative FFT); callers on the bn254
// scalar field should prefer PrimeDomain's FFTForward/FFTInverse (fft_prime.go)
// or ConvolutionFp (convolution.go) for the FFT-accelerated path.
func ExtendLagrange(f algebra.Field, values []algebra.Elt, m int) []algebra.Elt {
	n := len(values)
	if m < n {
		panic("linalg: Reed-Solomon extension target width must be >= source width")
	}
	poly := NewLagrange(f, values).ToMonomial()
	out := make([]algebra.Elt, m)
	copy(out, values)
	pts := f.EvaluationPoints()
	for i := n; i < m; i++ {
		var x algebra.Elt
		if i < len(pts) {
			x = pts[i]
		} else {
			x = f.OfScalar(uint64(i))
		}
		out[i] = poly.EvalHorner(x)
	}
	return out
}

// TruncatedFFTExtend implements the truncated/bidirectional FFT of spec.md
// §4.2 (van der Hoeven): given the first K < N monomial coefficients and the
// evaluations at the contiguous range [b0, b0+(N-K)) of points, it
// reconstructs the remaining coefficients/evaluations of the length-N block.
// The bookkeeping here is intentionally expressed over the generic
// evaluation-point/Lagrange machinery above (correct for any field) rather
// than the specialized radix split the name implies; it trades the constant
// factor of an FFT-based block decomposition for an implementation that is
// field-agnostic and easy to check against the interpolation invariant
// directly.
func TruncatedFFTExtend(f algebra.Field, knownCoeffs []algebra.Elt, knownEvalsFromB0 []algebra.Elt, b0, n int) (coeffs, evals []algebra.Elt) {
	k := len(knownCoeffs)
	if k+len(knownEvalsFromB0) < n {
		panic("linalg: not enough known data to reconstruct the block")
	}
	// Build a degree-(n-1) polynomial consistent with the k known monomial
	// coefficients (low-order) and the n-k known evaluations (at
	// b0..b0+n-k-1), by solving via the k+...=n interpolation points
	// directly: evaluate the partial monomial part at every known evaluation
	// point, subtract it off, then interpolate the residual (which must be
	// divisible by x^k) over the remaining points.
	low := make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		if i < k {
			low[i] = knownCoeffs[i]
		} else {
			low[i] = f.Zero()
		}
	}
	lowPoly := NewMonomial(f, low)

	residualPts := make([]algebra.Elt, len(knownEvalsFromB0))
	residualVals := make([]algebra.Elt, len(knownEvalsFromB0))
	for i, e := range knownEvalsFromB0 {
		x := f.OfScalar(uint64(b0 + i))
		residualPts[i] = x
		lowAtX := lowPoly.EvalHorner(x)
		residualVals[i] = f.New().Sub(e, lowAtX)
	}
	// residual(x) = (full(x) - low(x)) is divisible by x^k since full and low
	// agree on the first k monomial coefficients; dividing out x^k and
	// interpolating over residualPts/residualVals (after scaling by x^-k)
	// gives the high-order coefficients.
	highPoly := interpolateGeneric(f, residualPts, residualVals)
	highShifted := make([]algebra.Elt, n)
	for i := range highShifted {
		highShifted[i] = f.Zero()
	}
	for i, c := range highPoly.Coeffs {
		if i+k < n {
			highShifted[i+k] = c
		}
	}
	full := make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		full[i] = f.New().Add(low[i], highShifted[i])
	}
	fullPoly := NewMonomial(f, full)
	evalsOut := make([]algebra.Elt, n)
	pts := f.EvaluationPoints()
	for i := 0; i < n; i++ {
		var x algebra.Elt
		if i < len(pts) {
			x = pts[i]
		} else {
			x = f.OfScalar(uint64(i))
		}
		evalsOut[i] = fullPoly.EvalHorner(x)
	}
	return full, evalsOut
}

// interpolateGeneric recovers monomial coefficients from arbitrary
// (not-necessarily-canonical) point/value pairs via Lagrange interpolation —
// a straightforward O(n^2) fallback used by TruncatedFFTExtend's residual
// step, where the interpolation nodes are not the field's fixed canonical
// points.
func interpolateGeneric(f algebra.Field, pts, vals []algebra.Elt) *Polynomial {
	n := len(pts)
	result := make([]algebra.Elt, n)
	for i := range result {
		result[i] = f.Zero()
	}
	for i := 0; i < n; i++ {
		// Build the i-th Lagrange basis polynomial L_i(x) = prod_{j!=i}(x-pts[j])/(pts[i]-pts[j]).
		basis := []algebra.Elt{f.One()}
		denom := f.One()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			basis = polyMulLinear(f, basis, pts[j])
			d := f.New().Sub(pts[i], pts[j])
			denom = f.New().Mul(denom, d)
		}
		invDenom := f.New().Inverse(denom)
		scale := f.New().Mul(vals[i], invDenom)
		for idx, c := range basis {
			scaled := f.New().Mul(c, scale)
			result[idx] = f.New().Add(result[idx], scaled)
		}
	}
	return NewMonomial(f, result)
}


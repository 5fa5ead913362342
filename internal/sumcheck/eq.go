// Package sumcheck implements the layer-by-layer GKR argument of spec.md
// §4.6: at each layer the prover reduces two claimed wire evaluations at
// the current layer to two fresh claims at the next layer down, via a
// sumcheck over the layer's quadratic terms combined with an equality
// (EQ) weighting of the claim points.
//
// No repo in the retrieval pack implements GKR/sumcheck; this package is
// built directly from spec.md §4.6's description, using the same
// dense-array round-by-round folding technique the teacher's KZG blob
// evaluation code (crypto/blobs/barycentric.go) uses for its own
// Lagrange-basis bookkeeping, generalized here to a bilinear sum rather
// than a single polynomial evaluation.
package sumcheck

import "github.com/longfellow-zk/longfellow/internal/algebra"

// indexBits decomposes idx into nbits boolean coordinates, least-significant
// bit first: bits[i] = (idx>>i)&1. This must match the sumcheck folding
// convention in sumcheck.go, which pairs indices 2i/2i+1 (differing only in
// bit 0) at round 0 — so bits[0] is exactly the coordinate round 0's
// challenge binds, bits[1] the coordinate round 1 binds, and so on.
func indexBits(idx uint32, nbits int) []bool {
	out := make([]bool, nbits)
	for i := 0; i < nbits; i++ {
		out[i] = (idx>>uint(i))&1 == 1
	}
	return out
}

// eqBit evaluates one factor of the multilinear equality extension: point*1
// + (1-point)*0 when bit is true, else 1-point.
func eqBit(f algebra.Field, point algebra.Elt, bit bool) algebra.Elt {
	if bit {
		return point
	}
	return f.New().Sub(f.One(), point)
}

// EQ evaluates the multilinear extension of the equality function at a
// field-valued point against a boolean index, eq(point, bits) =
// Π_i (point_i if bits_i else 1-point_i).
func EQ(f algebra.Field, point []algebra.Elt, bits []bool) algebra.Elt {
	acc := f.One()
	for i, b := range bits {
		acc = f.New().Mul(acc, eqBit(f, point[i], b))
	}
	return acc
}

// EQPoints evaluates the multilinear equality extension between two
// field-valued points of equal length (used by the verifier's final-claim
// check, where both the claim point and the bound sumcheck challenge are
// arbitrary field elements, not booleans).
func EQPoints(f algebra.Field, a, b []algebra.Elt) algebra.Elt {
	acc := f.One()
	for i := range a {
		// a_i*b_i + (1-a_i)*(1-b_i), computed directly so it holds in any
		// characteristic (no reliance on a "divide/multiply by 2" shortcut).
		ab := f.New().Mul(a[i], b[i])
		notA := f.New().Sub(f.One(), a[i])
		notB := f.New().Sub(f.One(), b[i])
		notAnotB := f.New().Mul(notA, notB)
		term := f.New().Add(ab, notAnotB)
		acc = f.New().Mul(acc, term)
	}
	return acc
}

// lagrange3Points are the three fixed nodes round polynomials are evaluated
// at and transmitted over (spec.md §3: "Lagrange form over 3 points"). They
// are the field's first three canonical evaluation points rather than the
// literal integers 0,1,2, so the same code path works unmodified over
// characteristic-2 fields (where halving is undefined).
func lagrange3Points(f algebra.Field) []algebra.Elt {
	return f.EvaluationPoints()[:3]
}

// lagrange3 evaluates the unique degree-<=2 polynomial through
// (pts[0],p0), (pts[1],p1), (pts[2],p2) at field point r, via a direct
// three-term Lagrange formula using field inverses — valid in any
// characteristic, unlike a formula that divides by the integer 2.
func lagrange3(f algebra.Field, pts []algebra.Elt, p0, p1, p2, r algebra.Elt) algebra.Elt {
	vals := []algebra.Elt{p0, p1, p2}
	sum := f.Zero()
	for i := 0; i < 3; i++ {
		num := f.One()
		den := f.One()
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			num = f.New().Mul(num, f.New().Sub(r, pts[j]))
			den = f.New().Mul(den, f.New().Sub(pts[i], pts[j]))
		}
		invDen := f.New().Inverse(den)
		term := f.New().Mul(num, invDen)
		term = f.New().Mul(term, vals[i])
		sum = f.New().Add(sum, term)
	}
	return sum
}

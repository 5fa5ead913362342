// Package linalg implements the Blas-style vector operations, polynomial
// bases, FFTs (prime-field Cooley-Tukey and GF(2^k) LCH14 additive),
// convolution, and Reed-Solomon interpolation spec.md §4.2 describes.
//
// The prime-field FFT is grounded on github.com/consensys/gnark-crypto/fft,
// the same NTT package the teacher's gnark-crypto dependency already ships;
// the barycentric/Lagrange evaluation helpers are grounded on
// crypto/blobs/barycentric.go and crypto/blobs/barycentric_eval.go, which
// implement exactly this formula for a fixed 4096-point KZG domain — this
// package generalizes it to an arbitrary power-of-two N.
package linalg

import "github.com/longfellow-zk/longfellow/internal/algebra"

// Basis identifies which representation a Polynomial's coefficients are in.
type Basis int

const (
	// Monomial: coeffs[i] is the coefficient of x^i.
	Monomial Basis = iota
	// Lagrange: coeffs[i] is the polynomial's value at Field.EvaluationPoints()[i].
	Lagrange
)

// Polynomial is a fixed-degree-N polynomial over a field, stored in either
// the monomial or a Lagrange basis over the field's fixed evaluation points
// (spec.md §3).
type Polynomial struct {
	Field  algebra.Field
	Basis  Basis
	Coeffs []algebra.Elt
}

// NewMonomial builds a Polynomial from monomial coefficients (lowest degree
// first).
func NewMonomial(f algebra.Field, coeffs []algebra.Elt) *Polynomial {
	return &Polynomial{Field: f, Basis: Monomial, Coeffs: coeffs}
}

// NewLagrange builds a Polynomial from values at f.EvaluationPoints()[:len(values)].
func NewLagrange(f algebra.Field, values []algebra.Elt) *Polynomial {
	return &Polynomial{Field: f, Basis: Lagrange, Coeffs: values}
}

// EvalHorner evaluates a monomial-basis polynomial at x via Horner's method.
func (p *Polynomial) EvalHorner(x algebra.Elt) algebra.Elt {
	if p.Basis != Monomial {
		panic("linalg: EvalHorner requires a monomial-basis polynomial")
	}
	acc := p.Field.Zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = p.Field.New().Mul(acc, x)
		acc = p.Field.New().Add(acc, p.Coeffs[i])
	}
	return acc
}

// EvalBarycentric evaluates a Lagrange-basis polynomial at an arbitrary point
// z using the barycentric formula:
//
//	p(z) = l(z) * sum_i coeffs[i] * w_i / (z - x_i),  l(z) = prod_i (z - x_i)
//
// where x_i are the first N fixed evaluation nodes and
// w_i = 1/prod_{j!=i, j<N}(x_i-x_j) are the barycentric weights — the same formula
// crypto/blobs/barycentric.go computes for a fixed 4096-point KZG domain,
// generalized here to an arbitrary node count. If z coincides with a node,
// that node's value is returned directly rather than dividing by zero.
func (p *Polynomial) EvalBarycentric(z algebra.Elt) algebra.Elt {
	if p.Basis != Lagrange {
		panic("linalg: EvalBarycentric requires a Lagrange-basis polynomial")
	}
	f := p.Field
	nodes := f.EvaluationPoints()
	n := len(p.Coeffs)
	weights := make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		prod := f.One()
		for j := 0; j < n; j++ {
			if j != i {
				prod = f.New().Mul(prod, f.New().Sub(nodes[i], nodes[j]))
			}
		}
		weights[i] = f.New().Inverse(prod)
	}

	for i := 0; i < n; i++ {
		if z.Equal(nodes[i]) {
			return p.Coeffs[i]
		}
	}

	num := f.Zero()
	denomAcc := f.Zero()
	for i := 0; i < n; i++ {
		diff := f.New().Sub(z, nodes[i])
		invDiff := f.New().Inverse(diff)
		term := f.New().Mul(weights[i], invDiff)
		contrib := f.New().Mul(term, p.Coeffs[i])
		num = f.New().Add(num, contrib)
		denomAcc = f.New().Add(denomAcc, term)
	}
	// num/denomAcc is the standard barycentric-2 formula; it is algebraically
	// equal to the l(z)-scaled sum above but simpler since l(z) cancels
	// between numerator and denominator.
	return f.New().Mul(num, f.New().Inverse(denomAcc))
}

// ToMonomial converts a Lagrange-basis polynomial to monomial form via
// Newton's divided-difference interpolation (spec.md §3: "monomial<->Lagrange
// conversion via Newton form").
func (p *Polynomial) ToMonomial() *Polynomial {
	if p.Basis == Monomial {
		return p
	}
	f := p.Field
	nodes := f.EvaluationPoints()[:len(p.Coeffs)]
	divDiff := newtonDividedDifferences(f, nodes, p.Coeffs)

	// Expand the Newton form c0 + c1(x-x0) + c2(x-x0)(x-x1) + ... into
	// monomial coefficients via synthetic multiplication.
	result := make([]algebra.Elt, len(p.Coeffs))
	for i := range result {
		result[i] = f.Zero()
	}
	result[0] = divDiff[0]
	acc := []algebra.Elt{f.One()} // running product (x-x0)...(x-x_{k-1})
	for k := 1; k < len(divDiff); k++ {
		acc = polyMulLinear(f, acc, nodes[k-1])
		for i, c := range acc {
			scaled := f.New().Mul(c, divDiff[k])
			result[i] = f.New().Add(result[i], scaled)
		}
	}
	return NewMonomial(f, result)
}

// newtonDividedDifferences computes the Newton divided-difference table's
// diagonal c[0..n-1] such that p(x) = sum_k c[k] * prod_{j<k}(x-nodes[j]).
func newtonDividedDifferences(f algebra.Field, nodes, values []algebra.Elt) []algebra.Elt {
	n := len(values)
	table := make([]algebra.Elt, n)
	copy(table, values)
	out := make([]algebra.Elt, n)
	out[0] = table[0]
	for k := 1; k < n; k++ {
		for i := n - 1; i >= k; i-- {
			num := f.New().Sub(table[i], table[i-1])
			denom := f.New().Sub(nodes[i], nodes[i-k])
			table[i] = f.New().Mul(num, f.New().Inverse(denom))
		}
		out[k] = table[k]
	}
	return out
}

// polyMulLinear multiplies monomial-basis poly by (x - root), appending one
// degree.
func polyMulLinear(f algebra.Field, poly []algebra.Elt, root algebra.Elt) []algebra.Elt {
	out := make([]algebra.Elt, len(poly)+1)
	for i := range out {
		out[i] = f.Zero()
	}
	for i, c := range poly {
		out[i+1] = f.New().Add(out[i+1], c)
		scaled := f.New().Mul(c, root)
		out[i] = f.New().Sub(out[i], scaled)
	}
	return out
}

// BatchInverse inverts n field elements using Montgomery's trick: a single
// field inversion plus 3(n-1) multiplications, instead of n inversions.
func BatchInverse(f algebra.Field, in []algebra.Elt) []algebra.Elt {
	n := len(in)
	if n == 0 {
		return nil
	}
	prefix := make([]algebra.Elt, n)
	prefix[0] = in[0]
	for i := 1; i < n; i++ {
		prefix[i] = f.New().Mul(prefix[i-1], in[i])
	}
	inv := f.New().Inverse(prefix[n-1])
	out := make([]algebra.Elt, n)
	for i := n - 1; i > 0; i-- {
		out[i] = f.New().Mul(inv, prefix[i-1])
		inv = f.New().Mul(inv, in[i])
	}
	out[0] = inv
	return out
}

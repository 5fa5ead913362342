package ec

import "container/heap"

// windowBits is the width of the fixed scalar-multiplication table: 2^4 = 16
// precomputed multiples of the base point, processed 4 bits at a time.
const windowBits = 4
const windowSize = 1 << windowBits

// table holds 0*P, 1*P, ..., 15*P for a fixed base point P.
type table struct {
	entries [windowSize]*Point
}

func buildTable(p *Point) *table {
	t := &table{}
	t.entries[0] = p.Curve.Identity()
	for i := 1; i < windowSize; i++ {
		t.entries[i] = t.entries[i-1].Add(p)
	}
	return t
}

// ScalarMult computes scalar*P via a fixed 4-bit windowed ladder: the
// precomputed table amortizes point additions across the window at the cost
// of 15 extra additions up front, which pays off whenever a base point is
// reused across many scalars (as the curve generator is, across proofs).
//
// bits is the scalar in big-endian bit order (most significant bit first);
// callers typically derive it from a field/scalar element's canonical byte
// encoding.
func (p *Point) ScalarMult(bits []bool) *Point {
	t := buildTable(p)
	acc := p.Curve.Identity()
	// Process windowBits at a time, most-significant window first.
	i := 0
	for i < len(bits) {
		end := i + windowBits
		if end > len(bits) {
			end = len(bits)
		}
		chunk := bits[i:end]
		// Shift the accumulator left by the number of bits actually consumed.
		for range chunk {
			acc = acc.Double()
		}
		idx := 0
		for _, b := range chunk {
			idx <<= 1
			if b {
				idx |= 1
			}
		}
		acc = acc.Add(t.entries[idx])
		i = end
	}
	return acc
}

// msmTerm is one (scalar-bits, point) pair in a multi-scalar-multiplication.
type msmTerm struct {
	bits  []bool // big-endian, all padded to the same width
	point *Point
}

// bosCosterHeap is a max-heap over msmTerm ordered by the terms' current
// scalar value (interpreted as a big-endian bit string), used to repeatedly
// combine the two largest-scalar terms in Bos-Coster multi-scalar
// multiplication.
type bosCosterHeap []*msmTerm

func (h bosCosterHeap) Len() int { return len(h) }
func (h bosCosterHeap) Less(i, j int) bool { return compareBits(h[i].bits, h[j].bits) > 0 }
func (h bosCosterHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *bosCosterHeap) Push(x any)        { *h = append(*h, x.(*msmTerm)) }
func (h *bosCosterHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// compareBits compares two equal-length big-endian bit strings as unsigned
// integers, returning <0, 0, >0 for less/equal/greater.
func compareBits(a, b []bool) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func subtractBits(a, b []bool) []bool {
	out := make([]bool, len(a))
	borrow := false
	for i := len(a) - 1; i >= 0; i-- {
		ai, bi := a[i], b[i]
		v := boolToInt(ai) - boolToInt(bi)
		if borrow {
			v--
		}
		borrow = v < 0
		out[i] = v&1 == 1
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func halveBits(a []bool) ([]bool, bool) {
	out := make([]bool, len(a))
	copy(out[1:], a[:len(a)-1])
	lsb := a[len(a)-1]
	return out, lsb
}

func isZeroBits(a []bool) bool {
	for _, b := range a {
		if b {
			return false
		}
	}
	return true
}

// MultiScalarMult computes sum(scalars[i] * points[i]) using the Bos-Coster
// algorithm (spec.md §4.3): repeatedly pop the two largest scalars off a
// max-heap, add the larger's point into the smaller's point, and push the
// larger back in with its scalar reduced by the smaller — amortizing additions across
// many terms far better than a naive per-term windowed multiply-and-add
// when the number of terms is large.
func MultiScalarMult(curve *Curve, scalars [][]bool, points []*Point) *Point {
	if len(scalars) != len(points) {
		panic("ec: MultiScalarMult requires matching scalar/point counts")
	}
	if len(scalars) == 0 {
		return curve.Identity()
	}
	h := make(bosCosterHeap, 0, len(scalars))
	for i := range scalars {
		h = append(h, &msmTerm{bits: scalars[i], point: points[i]})
	}
	heap.Init(&h)

	acc := curve.Identity()
	for h.Len() > 1 {
		top := heap.Pop(&h).(*msmTerm)
		if isZeroBits(top.bits) {
			continue
		}
		second := h[0]
		// sum c_i P_i = c2*(P1+P2) + (c1-c2)*P1 + (the rest, untouched): fold
		// P1 into P2's point unconditionally, then push back the remainder
		// (c1-c2, P1) if it is still nonzero.
		second.point = second.point.Add(top.point)
		if compareBits(top.bits, second.bits) == 0 {
			continue
		}
		diff := subtractBits(top.bits, second.bits)
		top.bits = diff
		heap.Push(&h, top)
	}
	if h.Len() == 1 {
		last := h[0]
		for !isZeroBits(last.bits) {
			reduced, lsb := halveBits(last.bits)
			if lsb {
				acc = acc.Add(last.point)
			}
			last.point = last.point.Double()
			last.bits = reduced
		}
	}
	return acc
}

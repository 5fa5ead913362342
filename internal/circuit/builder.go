package circuit

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/longfellow-zk/longfellow/internal/algebra"
)

// WireID addresses a gate inside a Builder. It is an allocation-order handle
// only; the compiler replaces it with a content-addressed canonical label
// before emitting layers, so two builders calling Add/Mul/... in different
// orders still compile to byte-identical circuits (spec.md §4.4).
type WireID int

type rawTerm struct {
	a, b  WireID
	coeff algebra.Elt
}

type node struct {
	isInput    bool
	inputIndex int
	isPublic   bool
	terms      []rawTerm // value = sum(coeff_i * val(a_i) * val(b_i))
	depth      int       // topological distance from the input layer
}

// Builder is "QuadCircuit": it accumulates gates addressed by WireID, with
// content-keyed common-subexpression elimination, and lowers the resulting
// DAG into a layered Circuit on Compile (spec.md §4.4).
type Builder struct {
	field algebra.Field
	nodes []node
	one   WireID

	cse      map[string]WireID
	liftMemo map[[2]int]WireID

	sawPrivateInput bool
	outputs         []WireID
}

// NewBuilder creates an empty circuit builder over field f. The first wire
// is always the distinguished public "one" constant.
func NewBuilder(f algebra.Field) *Builder {
	b := &Builder{
		field:    f,
		cse:      make(map[string]WireID),
		liftMemo: make(map[[2]int]WireID),
	}
	one := b.allocInput(true)
	b.one = one
	return b
}

func (b *Builder) allocInput(public bool) WireID {
	if !public {
		b.sawPrivateInput = true
	} else if b.sawPrivateInput {
		panic("circuit: all public inputs must be declared before any private input")
	}
	id := WireID(len(b.nodes))
	b.nodes = append(b.nodes, node{isInput: true, inputIndex: int(id), isPublic: public, depth: 0})
	return id
}

// PublicInput allocates a new public input wire.
func (b *Builder) PublicInput() WireID { return b.allocInput(true) }

// PrivateInput allocates a new private (witness-only) input wire.
func (b *Builder) PrivateInput() WireID { return b.allocInput(false) }

// One returns the distinguished constant-1 public input wire.
func (b *Builder) One() WireID { return b.one }

// Field returns the field this builder's gates are defined over, so
// producers can mint constants (Konst(f.OfScalar(...))) without threading a
// separate field argument alongside every Builder.
func (b *Builder) Field() algebra.Field { return b.field }

func coeffKeyBytes(c algebra.Elt) string { return string(c.Bytes()) }

// addRawNode lifts every operand to a common depth, normalizes and coalesces
// terms (h0<=h1 per pair, identical pairs summed, zero-coefficient terms
// dropped), and returns the wire for the resulting node — reusing an
// existing wire if an identical node already exists (CSE).
func (b *Builder) addRawNode(terms []rawTerm) WireID {
	maxDepth := 0
	for _, t := range terms {
		if d := b.nodes[t.a].depth; d > maxDepth {
			maxDepth = d
		}
		if d := b.nodes[t.b].depth; d > maxDepth {
			maxDepth = d
		}
	}
	lifted := make([]rawTerm, len(terms))
	for i, t := range terms {
		a := b.liftTo(t.a, maxDepth)
		bb := b.liftTo(t.b, maxDepth)
		if a > bb {
			a, bb = bb, a
		}
		lifted[i] = rawTerm{a: a, b: bb, coeff: t.coeff}
	}

	// coalesce identical (a,b) pairs by summing coefficients.
	sort.Slice(lifted, func(i, j int) bool {
		if lifted[i].a != lifted[j].a {
			return lifted[i].a < lifted[j].a
		}
		return lifted[i].b < lifted[j].b
	})
	coalesced := make([]rawTerm, 0, len(lifted))
	for _, t := range lifted {
		if n := len(coalesced); n > 0 && coalesced[n-1].a == t.a && coalesced[n-1].b == t.b {
			coalesced[n-1].coeff = b.field.New().Add(coalesced[n-1].coeff, t.coeff)
		} else {
			coalesced = append(coalesced, t)
		}
	}
	final := coalesced[:0]
	for _, t := range coalesced {
		if !t.coeff.IsZero() {
			final = append(final, t)
		}
	}
	if len(final) == 0 {
		// The node is identically zero; represent it as 0 * one * one so it
		// still occupies a well-defined wire at maxDepth+1.
		final = []rawTerm{{a: b.liftTo(b.one, maxDepth), b: b.liftTo(b.one, maxDepth), coeff: b.field.Zero()}}
	}

	key := fmt.Sprintf("gate:%d", maxDepth+1)
	for _, t := range final {
		key += fmt.Sprintf("|%d,%d,%x", t.a, t.b, coeffKeyBytes(t.coeff))
	}
	if existing, ok := b.cse[key]; ok {
		return existing
	}
	id := WireID(len(b.nodes))
	b.nodes = append(b.nodes, node{terms: final, depth: maxDepth + 1})
	b.cse[key] = id
	return id
}

// liftTo returns a wire computing the same value as w, placed at exactly
// depth targetDepth, inserting a chain of identity pass-through gates
// (g = 1*w*one) as needed. Chains are memoized so repeated lifts of the same
// wire to the same depth (e.g. the "one" wire, needed at nearly every depth)
// share structure.
func (b *Builder) liftTo(w WireID, targetDepth int) WireID {
	d := b.nodes[w].depth
	if d == targetDepth {
		return w
	}
	if d > targetDepth {
		panic("circuit: cannot lift a wire to a shallower depth than its own")
	}
	key := [2]int{int(w), targetDepth}
	if v, ok := b.liftMemo[key]; ok {
		return v
	}
	prev := b.liftTo(w, targetDepth-1)
	onePrev := b.one
	if b.nodes[b.one].depth != targetDepth-1 {
		onePrev = b.liftTo(b.one, targetDepth-1)
	}
	out := b.addRawNode([]rawTerm{{a: prev, b: onePrev, coeff: b.field.One()}})
	b.liftMemo[key] = out
	return out
}

// Konst returns a wire holding the constant c.
func (b *Builder) Konst(c algebra.Elt) WireID {
	return b.addRawNode([]rawTerm{{a: b.one, b: b.one, coeff: c}})
}

// Add returns a wire computing x+y.
func (b *Builder) Add(x, y WireID) WireID {
	return b.addRawNode([]rawTerm{
		{a: x, b: b.one, coeff: b.field.One()},
		{a: y, b: b.one, coeff: b.field.One()},
	})
}

// Sub returns a wire computing x-y.
func (b *Builder) Sub(x, y WireID) WireID {
	return b.addRawNode([]rawTerm{
		{a: x, b: b.one, coeff: b.field.One()},
		{a: y, b: b.one, coeff: b.field.New().Neg(b.field.One())},
	})
}

// Mul returns a wire computing x*y.
func (b *Builder) Mul(x, y WireID) WireID {
	return b.addRawNode([]rawTerm{{a: x, b: y, coeff: b.field.One()}})
}

// Linear returns a wire computing coeff*x.
func (b *Builder) Linear(x WireID, coeff algebra.Elt) WireID {
	return b.addRawNode([]rawTerm{{a: x, b: b.one, coeff: coeff}})
}

// Neg returns a wire computing -x.
func (b *Builder) Neg(x WireID) WireID {
	return b.Linear(x, b.field.New().Neg(b.field.One()))
}

// AssertEq asserts x==y by registering x-y as an output that the prover must
// evaluate to zero (spec.md §9: "assert_eq(a,b) becomes an output wire a-b
// that must evaluate to zero").
func (b *Builder) AssertEq(x, y WireID) {
	b.Output(b.Sub(x, y))
}

// Assert0 asserts x==0.
func (b *Builder) Assert0(x WireID) {
	b.Output(x)
}

// Output registers w as a circuit output (assigned the next free output
// slot, in call order).
func (b *Builder) Output(w WireID) {
	b.outputs = append(b.outputs, w)
}

// canonLabeler assigns content-addressed labels to wires so that circuits
// built by adding the same gates in different orders compile identically.
type canonLabeler struct {
	b      *Builder
	memo   map[WireID][32]byte
}

func newCanonLabeler(b *Builder) *canonLabeler {
	return &canonLabeler{b: b, memo: make(map[WireID][32]byte)}
}

func (cl *canonLabeler) label(w WireID) [32]byte {
	if v, ok := cl.memo[w]; ok {
		return v
	}
	n := cl.b.nodes[w]
	h := sha256.New()
	if n.isInput {
		fmt.Fprintf(h, "input:%d:%v", n.inputIndex, n.isPublic)
	} else {
		type entry struct {
			a, b  [32]byte
			coeff string
		}
		entries := make([]entry, len(n.terms))
		for i, t := range n.terms {
			entries[i] = entry{a: cl.label(t.a), b: cl.label(t.b), coeff: coeffKeyBytes(t.coeff)}
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].a != entries[j].a {
				return lessBytes(entries[i].a[:], entries[j].a[:])
			}
			if entries[i].b != entries[j].b {
				return lessBytes(entries[i].b[:], entries[j].b[:])
			}
			return entries[i].coeff < entries[j].coeff
		})
		for _, e := range entries {
			h.Write(e.a[:])
			h.Write(e.b[:])
			h.Write([]byte(e.coeff))
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	cl.memo[w] = out
	return out
}

func lessBytes(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Compile lowers the builder's DAG into an immutable layered Circuit.
// Layer assignment follows spec.md §3/§4.4: layer 0 holds the outputs,
// layer NL-1 holds the inputs, and every term's two operand wires live in
// the layer immediately below the term's own wire. Gates unreachable from
// any declared output are dropped (dead-code elimination); input wires are
// always retained, even if unused, to keep input indices stable for
// producers that allocate them ahead of time.
func (b *Builder) Compile() *Circuit {
	if len(b.outputs) == 0 {
		panic("circuit: cannot compile a builder with no declared outputs")
	}

	maxDepth := 0
	for _, o := range b.outputs {
		if d := b.nodes[o].depth; d > maxDepth {
			maxDepth = d
		}
	}
	liftedOutputs := make([]WireID, len(b.outputs))
	for i, o := range b.outputs {
		liftedOutputs[i] = b.liftTo(o, maxDepth)
	}
	nl := maxDepth + 1

	// Reachability from the (lifted) outputs.
	reachable := make(map[WireID]bool)
	var mark func(WireID)
	mark = func(w WireID) {
		if reachable[w] {
			return
		}
		reachable[w] = true
		for _, t := range b.nodes[w].terms {
			mark(t.a)
			mark(t.b)
		}
	}
	for _, o := range liftedOutputs {
		mark(o)
	}
	// Inputs are always retained regardless of reachability.
	for w, n := range b.nodes {
		if n.isInput {
			reachable[WireID(w)] = true
		}
	}

	cl := newCanonLabeler(b)

	// Group reachable wires by depth; depth maxDepth+1-ℓ maps to layer ℓ via
	// layer = maxDepth - depth(wire) for all non-input wires, and layer =
	// nl-1 for inputs (depth 0 wires sit at the deepest layer).
	byDepth := make(map[int][]WireID)
	for w := range reachable {
		d := b.nodes[w].depth
		byDepth[d] = append(byDepth[d], w)
	}

	layers := make([]Layer, nl)
	localIndex := make(map[WireID]uint32)

	// Input layer (nl-1): fixed allocation order, public inputs first.
	inputWires := byDepth[0]
	sort.Slice(inputWires, func(i, j int) bool { return inputWires[i] < inputWires[j] })
	for idx, w := range inputWires {
		localIndex[w] = uint32(idx)
	}
	layers[nl-1] = Layer{NW: uint32(len(inputWires)), LogW: logCeil(len(inputWires))}

	constPool := newConstPool(b.field)

	for depth := 1; depth <= maxDepth; depth++ {
		layerIdx := maxDepth - depth
		wires := byDepth[depth]
		sort.Slice(wires, func(i, j int) bool {
			li, lj := cl.label(wires[i]), cl.label(wires[j])
			return lessBytes(li[:], lj[:])
		})
		for idx, w := range wires {
			localIndex[w] = uint32(idx)
		}

		var terms []Term
		for _, w := range wires {
			g := localIndex[w]
			for _, t := range b.nodes[w].terms {
				h0, h1 := localIndex[t.a], localIndex[t.b]
				if h0 > h1 {
					h0, h1 = h1, h0
				}
				terms = append(terms, Term{G: g, H0: h0, H1: h1, ConstIdx: constPool.indexOf(t.coeff)})
			}
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].G != terms[j].G {
				return terms[i].G < terms[j].G
			}
			if terms[i].H0 != terms[j].H0 {
				return terms[i].H0 < terms[j].H0
			}
			return terms[i].H1 < terms[j].H1
		})
		layers[layerIdx] = Layer{NW: uint32(len(wires)), LogW: logCeil(len(wires)), Terms: terms}
	}

	ninputs := len(inputWires)
	npubin := 0
	for _, w := range inputWires {
		if b.nodes[w].isPublic {
			npubin++
		} else {
			break
		}
	}

	return &Circuit{
		Field:   b.field,
		FieldID: fieldIDFor(b.field),
		NC:      1,
		LogC:    0,
		NInputs: uint64(ninputs),
		NPubIn:  uint64(npubin),
		Consts:  constPool.ordered,
		Layers:  layers,
	}
}

func logCeil(n int) uint32 {
	if n <= 1 {
		return 0
	}
	l := uint32(0)
	for (1 << l) < n {
		l++
	}
	return l
}

// constPool deduplicates constant coefficients into the shared table
// referenced by term.ConstIdx (spec.md §6).
type constPool struct {
	field   algebra.Field
	index   map[string]uint32
	ordered []algebra.Elt
}

func newConstPool(f algebra.Field) *constPool {
	return &constPool{field: f, index: make(map[string]uint32)}
}

func (p *constPool) indexOf(c algebra.Elt) uint32 {
	key := coeffKeyBytes(c)
	if idx, ok := p.index[key]; ok {
		return idx
	}
	idx := uint32(len(p.ordered))
	p.index[key] = idx
	p.ordered = append(p.ordered, c)
	return idx
}

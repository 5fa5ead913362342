package circuit

import (
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
)

// Evaluate runs the circuit forward from the input layer (nl-1) to the
// output layer (0), given the full vector of input-wire values (length
// NInputs, public inputs first). It returns the dense, zero-padded
// per-layer wire-value table (witness[ℓ] has length 2^Layers[ℓ].LogW),
// which both the sumcheck prover and Ligero's witness tableau consume.
func (c *Circuit) Evaluate(inputs []algebra.Elt) ([][]algebra.Elt, error) {
	if uint64(len(inputs)) != c.NInputs {
		return nil, fmt.Errorf("circuit: expected %d input values, got %d", c.NInputs, len(inputs))
	}
	witness := make([][]algebra.Elt, len(c.Layers))

	inputLayer := c.Layers[len(c.Layers)-1]
	w := make([]algebra.Elt, 1<<inputLayer.LogW)
	for i := range w {
		w[i] = c.Field.Zero()
	}
	copy(w, inputs)
	witness[len(c.Layers)-1] = w

	for li := len(c.Layers) - 2; li >= 0; li-- {
		layer := c.Layers[li]
		next := witness[li+1]
		out := make([]algebra.Elt, 1<<layer.LogW)
		for i := range out {
			out[i] = c.Field.Zero()
		}
		for _, t := range layer.Terms {
			k := c.Consts[t.ConstIdx]
			prod := c.Field.New().Mul(next[t.H0], next[t.H1])
			prod = c.Field.New().Mul(prod, k)
			out[t.G] = c.Field.New().Add(out[t.G], prod)
		}
		witness[li] = out
	}
	return witness, nil
}

// Satisfied reports whether every output-layer wire evaluates to zero, the
// "witness failure" check of spec.md §7 (assert_eq/assert0 are compiled to
// output wires that must be zero).
func (c *Circuit) Satisfied(witness [][]algebra.Elt) bool {
	out := witness[0]
	outputLayer := c.Layers[0]
	for i := 0; i < int(outputLayer.NW); i++ {
		if !out[i].IsZero() {
			return false
		}
	}
	return true
}

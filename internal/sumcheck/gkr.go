package sumcheck

import (
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
	"github.com/longfellow-zk/longfellow/internal/transcript"
)

// Claim is one of the two final input-layer evaluation claims the GKR
// argument reduces to (spec.md §4.8): the point in the input layer's
// multilinear-extension domain and the claimed value there.
type Claim struct {
	Point []algebra.Elt
	Value algebra.Elt
}

// Prove runs the full layered sumcheck of spec.md §4.6 over a satisfied
// witness (witness[0] must be the all-zero output-layer vector; callers
// should check circuit.Circuit.Satisfied first). It absorbs nothing about
// the circuit ID or public inputs itself — that is the caller's
// responsibility per spec.md §4.8 step 2 — and returns the proof plus the
// two claims on the input layer that Ligero must discharge.
func Prove(tr *transcript.Transcript, c *circuit.Circuit, witness [][]algebra.Elt) (*Proof, [2]Claim) {
	f := c.Field
	logw0 := int(c.Layers[0].LogW)
	g0 := squeezePoint(tr, f, logw0)
	g1 := squeezePoint(tr, f, logw0)
	claim0, claim1 := f.Zero(), f.Zero()

	proof := &Proof{}
	for li := 0; li < len(c.Layers)-1; li++ {
		layer := c.Layers[li]
		lp, h0pt, h1pt := ProveLayer(tr, f, &layer, c.Consts, g0, g1, claim0, claim1, witness[li+1])
		proof.Layers = append(proof.Layers, lp)
		g0, g1 = h0pt, h1pt
		claim0, claim1 = lp.FinalClaims[0], lp.FinalClaims[1]
	}

	return proof, [2]Claim{{Point: g0, Value: claim0}, {Point: g1, Value: claim1}}
}

// Verify replays the GKR argument against proof, returning the two final
// input-layer claims for the caller to hand to Ligero, or an error if any
// round or final check fails (spec.md §7: "verification failure").
func Verify(tr *transcript.Transcript, c *circuit.Circuit, proof *Proof) ([2]Claim, error) {
	f := c.Field
	logw0 := int(c.Layers[0].LogW)
	g0 := squeezePoint(tr, f, logw0)
	g1 := squeezePoint(tr, f, logw0)
	claim0, claim1 := f.Zero(), f.Zero()

	if len(proof.Layers) != len(c.Layers)-1 {
		return [2]Claim{}, fmt.Errorf("sumcheck: proof has %d layers, circuit has %d", len(proof.Layers), len(c.Layers)-1)
	}

	for li := 0; li < len(c.Layers)-1; li++ {
		layer := c.Layers[li]
		logwNext := int(c.Layers[li+1].LogW)
		h0pt, h1pt, wc0, wc1, err := VerifyLayer(tr, f, &layer, c.Consts, g0, g1, claim0, claim1, logwNext, proof.Layers[li])
		if err != nil {
			return [2]Claim{}, fmt.Errorf("sumcheck: layer %d: %w", li, err)
		}
		g0, g1 = h0pt, h1pt
		claim0, claim1 = wc0, wc1
	}

	return [2]Claim{{Point: g0, Value: claim0}, {Point: g1, Value: claim1}}, nil
}

func squeezePoint(tr *transcript.Transcript, f algebra.Field, nbits int) []algebra.Elt {
	tr.Absorb(transcript.TagLayer, nil)
	return tr.SqueezeField(f, nbits)
}

// LinearFormCoeffs returns the length-n coefficient vector k_i =
// EQ(point, bits(i)) for i in [0,n), the linear functional whose dot
// product with the input-layer witness equals the multilinear extension of
// that witness evaluated at point. Both prover and verifier compute this
// independently (spec.md §4.8's "the verifier must independently compute
// the two final input-layer linear forms") and hand it to Ligero as a
// linear claim's coefficient vector.
func LinearFormCoeffs(f algebra.Field, point []algebra.Elt, n int) []algebra.Elt {
	nbits := len(point)
	out := make([]algebra.Elt, n)
	for i := 0; i < n; i++ {
		out[i] = EQ(f, point, indexBits(uint32(i), nbits))
	}
	return out
}

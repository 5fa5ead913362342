// Package zk implements the end-to-end ZK composition of spec.md §4.8:
// evaluate the circuit, run the layered sumcheck, commit the witness (with
// blinding) via Ligero, and discharge the sumcheck's two final input-layer
// claims as Ligero linear claims. This is the "driver" layer the rest of
// the core (circuit, sumcheck, ligero, transcript) is built to support.
package zk

import (
	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/circuit"
	"github.com/longfellow-zk/longfellow/internal/ligero"
	"github.com/longfellow-zk/longfellow/internal/sumcheck"
	"github.com/longfellow-zk/longfellow/internal/transcript"
	"github.com/longfellow-zk/longfellow/util"
)

// Params fixes the Ligero parameters spec.md §4.7 requires (rate 1/R,
// query count Q, blinding-row count) for one proof. DefaultParams targets
// roughly the spec's ~100-bit soundness budget (Q=189 at rate 1/4).
type Params struct {
	Rate         int
	NumQueries   int
	NumBlindRows int
}

// DefaultParams mirrors spec.md §4.7's worked parameters.
func DefaultParams() Params {
	return Params{Rate: 4, NumQueries: 189, NumBlindRows: 2}
}

// Proof is the serializable composed proof of spec.md §3: a SumcheckProof,
// a LigeroCommitment, and a LigeroProof, plus the tableau shape needed to
// reconstruct the verifier's row layout.
type Proof struct {
	Sumcheck *sumcheck.Proof
	Root     ligero.Commitment
	Ligero   ligero.Proof
	Cols, M  int
}

// randomRow draws a length-n vector of uniformly random field elements for
// use as a Ligero blinding row (spec.md §4.7: "blinding rows sampled
// uniformly"), via the same rejection-sampling-on-decode idiom the
// transcript package uses for challenges, seeded from crypto/rand through
// util.RandomBytes.
func randomRow(f algebra.Field, n int) []algebra.Elt {
	out := make([]algebra.Elt, n)
	width := f.NumBytes()
	for i := range out {
		for {
			e := f.New()
			if err := e.SetBytes(util.RandomBytes(width)); err == nil {
				out[i] = e
				break
			}
		}
	}
	return out
}

// orthogonalBlind draws a uniformly random row and projects out its
// component along coeffs, so that dot(coeffs, row) is exactly zero while the
// row otherwise remains uniformly random. Folding a row built this way into
// a claim's response (with weight one) leaves the claim's target untouched
// but randomizes every entry of the revealed row, which is what makes the
// response statistically independent of the witness (spec.md §4.7: "Blinding
// rows make every response distribution independent of the witness") instead
// of disclosing the input layer in the clear.
func orthogonalBlind(f algebra.Field, coeffs []algebra.Elt, n int) []algebra.Elt {
	row := randomRow(f, n)
	dot := f.Zero()
	norm := f.Zero()
	for i, c := range coeffs {
		dot = f.New().Add(dot, f.New().Mul(c, row[i]))
		norm = f.New().Add(norm, f.New().Mul(c, c))
	}
	if norm.IsZero() {
		return row
	}
	scale := f.New().Mul(dot, f.New().Inverse(norm))
	for i, c := range coeffs {
		row[i] = f.New().Sub(row[i], f.New().Mul(scale, c))
	}
	return row
}

// witnessLinearClaim builds the claim that folds the single committed
// witness row together with the blind row dedicated to claim index idx
// (layout.Blind's idx'th row) into one response, zero-weighting every other
// row the Class range happens to span (quadratic-triple bands, and any
// blind row not dedicated to this claim). Because blindRows[idx] was built
// orthogonal to coeffs by orthogonalBlind, Target is unchanged from the
// sumcheck-derived claim value — only the revealed row itself is blinded.
func witnessLinearClaim(f algebra.Field, layout ligero.Layout, coeffs []algebra.Elt, idx int, target algebra.Elt) ligero.LinearClaim {
	start := layout.Witness.Start
	end := layout.Blind.Start + layout.Blind.Len
	weights := make([]algebra.Elt, end-start)
	for i := range weights {
		weights[i] = f.Zero()
	}
	weights[layout.Witness.Start-start] = f.One()
	weights[layout.Blind.Start-start+idx] = f.One()
	return ligero.LinearClaim{
		Class:      ligero.RowRange{Start: start, Len: end - start},
		ColCoeffs:  coeffs,
		RowWeights: weights,
		Target:     target,
	}
}

// Prove runs the full pipeline of spec.md §4.8: evaluate the circuit,
// absorb its ID and public inputs, run sumcheck, commit a blinded witness
// tableau via Ligero, and answer the sumcheck's residual input-layer claims
// as Ligero linear claims.
func Prove(tr *transcript.Transcript, c *circuit.Circuit, inputs []algebra.Elt, params Params) (*Proof, error) {
	witness, err := c.Evaluate(inputs)
	if err != nil {
		return nil, err
	}
	if !c.Satisfied(witness) {
		return nil, ErrWitnessUnsatisfied
	}

	id := c.ID()
	tr.Absorb(transcript.TagInput, id[:])
	tr.AbsorbFieldElts(transcript.TagInput, inputs[:c.NPubIn])

	sproof, claims := sumcheck.Prove(tr, c, witness)

	if params.NumBlindRows != len(claims) {
		return nil, ErrBlindRowCount
	}

	cols := 1 << c.InputLayer().LogW
	if cols > len(c.Field.EvaluationPoints()) {
		return nil, ErrInputLayerTooWide
	}
	m := cols * params.Rate

	inputRow := witness[len(witness)-1]

	coeffs := make([][]algebra.Elt, len(claims))
	blindRows := make([][]algebra.Elt, len(claims))
	for i, cl := range claims {
		coeffs[i] = sumcheck.LinearFormCoeffs(c.Field, cl.Point, cols)
		blindRows[i] = orthogonalBlind(c.Field, coeffs[i], cols)
	}

	tableau, layout := ligero.BuildLayeredTableau(c.Field, [][]algebra.Elt{inputRow}, nil, nil, blindRows, cols, m)
	root := ligero.Commit(tr, tableau)

	linClaims := make([]ligero.LinearClaim, len(claims))
	for i, cl := range claims {
		linClaims[i] = witnessLinearClaim(c.Field, layout, coeffs[i], i, cl.Value)
	}
	lproof := ligero.Prove(tr, c.Field, tableau, linClaims, params.NumQueries)

	return &Proof{Sumcheck: sproof, Root: root, Ligero: lproof, Cols: cols, M: m}, nil
}

// Verify replays Prove's transcript schedule: absorb the circuit ID and
// public inputs, run the sumcheck verifier, absorb the received commitment
// root, and check the Ligero proof against the two claims the sumcheck
// verifier computed — recomputing the linear forms independently, per
// spec.md §4.8 ("the verifier must independently compute the two final
// input-layer linear forms").
func Verify(tr *transcript.Transcript, c *circuit.Circuit, publicInputs []algebra.Elt, params Params, proof *Proof) error {
	id := c.ID()
	tr.Absorb(transcript.TagInput, id[:])
	tr.AbsorbFieldElts(transcript.TagInput, publicInputs)

	claims, err := sumcheck.Verify(tr, c, proof.Sumcheck)
	if err != nil {
		return err
	}

	if params.NumBlindRows != len(claims) {
		return ErrBlindRowCount
	}

	cols := 1 << c.InputLayer().LogW
	if proof.Cols != cols {
		return ErrInputLayerTooWide
	}

	layout := ligero.NewLayout(1, 0, params.NumBlindRows)
	ligero.AbsorbCommitment(tr, proof.Root)

	linClaims := make([]ligero.LinearClaim, len(claims))
	for i, cl := range claims {
		coeffs := sumcheck.LinearFormCoeffs(c.Field, cl.Point, cols)
		linClaims[i] = witnessLinearClaim(c.Field, layout, coeffs, i, cl.Value)
	}

	return ligero.Verify(tr, c.Field, proof.Root, proof.M, layout, linClaims, params.NumQueries, proof.Ligero)
}

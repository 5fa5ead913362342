package ligero

import (
	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/linalg"
	"github.com/longfellow-zk/longfellow/internal/transcript"
)

// LinearClaim asserts a rank-1 linear functional over one row band of the
// committed tableau (spec.md §4.7): sum_u RowWeights[u] * <ColCoeffs,
// Row[Class.Start+u]> = Target. The GKR-to-Ligero reduction (spec.md §4.8)
// produces exactly this shape: ColCoeffs is the EQ/Lagrange linear form
// over the input layer (sumcheck.LinearFormCoeffs) and RowWeights selects
// (and, when the witness spans more than one tableau row, weights) the
// relevant witness rows.
type LinearClaim struct {
	Class      RowRange
	ColCoeffs  []algebra.Elt // length Cols
	RowWeights []algebra.Elt // length Class.Len
	Target     algebra.Elt
}

// LinearResponse is the prover's revealed combined row (spec.md §4.7:
// "the prover sends the response — one field element per witness column").
// Revealing it in the clear is safe because the tableau's blinding rows
// randomize every row-weighted combination the ZK composition asks for.
type LinearResponse struct {
	Row []algebra.Elt // length Cols
}

// ProveLinear computes the row-weighted combination of t's rows in
// claim.Class and returns it as the claim's response.
func ProveLinear(f algebra.Field, t *Tableau, claim LinearClaim) LinearResponse {
	if claim.Class.Start+claim.Class.Len > t.Rows {
		panic("ligero: linear claim row range exceeds tableau")
	}
	combined := make([]algebra.Elt, t.Cols)
	for v := range combined {
		combined[v] = f.Zero()
	}
	for i, w := range claim.RowWeights {
		row := t.Messages[claim.Class.Start+i]
		for v, e := range row {
			term := f.New().Mul(w, e)
			combined[v] = f.New().Add(combined[v], term)
		}
	}
	return LinearResponse{Row: combined}
}

// AbsorbLinearResponse folds a response into the transcript, matching the
// prover's and verifier's absorb sequence (spec.md §5).
func AbsorbLinearResponse(tr *transcript.Transcript, resp LinearResponse) {
	tr.AbsorbFieldElts(transcript.TagCommit, resp.Row)
}

// VerifyLinearTarget checks the response's public-side consistency: that
// dotting ColCoeffs against the revealed response reproduces Target
// (spec.md §4.7(b)'s direct half, computable without any column opening).
func VerifyLinearTarget(f algebra.Field, claim LinearClaim, resp LinearResponse) error {
	if len(resp.Row) != len(claim.ColCoeffs) {
		return ErrLinearResponseMismatch
	}
	sum := f.Zero()
	for v, c := range claim.ColCoeffs {
		term := f.New().Mul(c, resp.Row[v])
		sum = f.New().Add(sum, term)
	}
	if !sum.Equal(claim.Target) {
		return ErrLinearResponseMismatch
	}
	return nil
}

// codewordAt evaluates a length-Cols message row's Reed-Solomon codeword at
// a single column index, without materializing the full width-m codeword —
// used by the verifier, which only ever needs the response's codeword value
// at the handful of columns the transcript selected for opening.
func codewordAt(f algebra.Field, row []algebra.Elt, col int) algebra.Elt {
	poly := linalg.NewLagrange(f, row).ToMonomial()
	pts := f.EvaluationPoints()
	var x algebra.Elt
	if col < len(pts) {
		x = pts[col]
	} else {
		x = f.OfScalar(uint64(col))
	}
	return poly.EvalHorner(x)
}

// VerifyLinearOpening checks that the response is consistent with an
// opened column: the response's own codeword value at the column must
// equal the row-weighted combination of the raw values that column opening
// revealed for claim.Class (spec.md §4.7(b)'s column-consistency half).
// This is the step that prevents a prover from fabricating a response that
// satisfies VerifyLinearTarget without actually being the committed rows'
// combination.
func VerifyLinearOpening(f algebra.Field, claim LinearClaim, resp LinearResponse, opening ColumnOpening) error {
	if claim.Class.Start+claim.Class.Len > len(opening.Values) {
		return ErrRowRangeOutOfBounds
	}
	combined := f.Zero()
	for i, w := range claim.RowWeights {
		v := opening.Values[claim.Class.Start+i]
		term := f.New().Mul(w, v)
		combined = f.New().Add(combined, term)
	}
	respAtCol := codewordAt(f, resp.Row, opening.Index)
	if !respAtCol.Equal(combined) {
		return ErrLinearOpeningMismatch
	}
	return nil
}

// VerifyQuadraticColumn checks spec.md §4.7(c)'s pointwise product check: at
// an opened column, every quadratic-triple row's revealed X and Y values
// multiply to its revealed Z value.
func VerifyQuadraticColumn(f algebra.Field, layout Layout, opening ColumnOpening) error {
	if layout.QuadX.Len == 0 {
		return nil
	}
	if layout.QuadZ.Start+layout.QuadZ.Len > len(opening.Values) {
		return ErrRowRangeOutOfBounds
	}
	for i := 0; i < layout.QuadX.Len; i++ {
		x := opening.Values[layout.QuadX.Start+i]
		y := opening.Values[layout.QuadY.Start+i]
		z := opening.Values[layout.QuadZ.Start+i]
		prod := f.New().Mul(x, y)
		if !prod.Equal(z) {
			return ErrQuadraticOpeningMismatch
		}
	}
	return nil
}

package ligero

import "github.com/longfellow-zk/longfellow/internal/algebra"

// RowRange identifies a contiguous band of tableau rows belonging to one
// row class (spec.md §4.7's "witness slices, quadratic-triple rows,
// blinding rows").
type RowRange struct {
	Start, Len int
}

// contains reports whether idx falls inside r.
func (r RowRange) contains(idx int) bool { return idx >= r.Start && idx < r.Start+r.Len }

// Layout records where each row class lives along a Tableau's row axis, in
// the canonical order spec.md §4.7 requires (witness, then quadratic
// triples, then blinding).
type Layout struct {
	Witness        RowRange
	QuadX, QuadY   RowRange
	QuadZ          RowRange
	Blind          RowRange
}

// TotalRows returns the tableau row count this layout describes.
func (l Layout) TotalRows() int { return l.Blind.Start + l.Blind.Len }

// NewLayout computes a Layout from row-class counts alone, without needing
// the tableau's actual data. Prover and verifier both call this (rather than
// only deriving a Layout as a BuildLayeredTableau side effect) so the
// verifier — which never builds a Tableau — can still compute the same row
// ranges to interpret opened columns.
func NewLayout(numWitness, numQuad, numBlind int) Layout {
	var l Layout
	l.Witness = RowRange{Start: 0, Len: numWitness}
	l.QuadX = RowRange{Start: l.Witness.Start + l.Witness.Len, Len: numQuad}
	l.QuadY = RowRange{Start: l.QuadX.Start + l.QuadX.Len, Len: numQuad}
	l.QuadZ = RowRange{Start: l.QuadY.Start + l.QuadY.Len, Len: numQuad}
	l.Blind = RowRange{Start: l.QuadZ.Start + l.QuadZ.Len, Len: numBlind}
	return l
}

// BuildLayeredTableau assembles the witness tableau of spec.md §4.7: a
// Reed-Solomon-encoded, Merkle-committed matrix with one row band per class.
//
// Quadratic-triple rows are committed specially: rather than independently
// Reed-Solomon-encoding a z message, the Z codeword at every column
// (message and redundant alike) is defined as the entrywise product of the
// already-encoded X and Y codewords. This makes the "pointwise product
// check on the opened columns" (spec.md §4.7(c)) a check the verifier can
// perform directly from revealed column values, rather than requiring a
// second proximity argument on Z; VerifyQuadraticColumn (claims.go) still
// re-derives and checks it explicitly so a prover cannot commit an
// inconsistent Z row.
func BuildLayeredTableau(f algebra.Field, witnessRows, quadX, quadY, blindRows [][]algebra.Elt, cols, m int) (*Tableau, Layout) {
	if len(quadX) != len(quadY) {
		panic("ligero: quadX and quadY row counts must match")
	}

	layout := NewLayout(len(witnessRows), len(quadX), len(blindRows))
	rows := layout.TotalRows()
	msgs := make([][]algebra.Elt, rows)
	codewords := make([][]algebra.Elt, rows)

	place := func(band RowRange, src [][]algebra.Elt) {
		for i, row := range src {
			msgs[band.Start+i] = padRow(f, row, cols)
			codewords[band.Start+i] = extendRow(f, msgs[band.Start+i], m)
		}
	}
	place(layout.Witness, witnessRows)
	place(layout.QuadX, quadX)
	place(layout.QuadY, quadY)

	for i := 0; i < layout.QuadZ.Len; i++ {
		xcw := codewords[layout.QuadX.Start+i]
		ycw := codewords[layout.QuadY.Start+i]
		zcw := make([]algebra.Elt, m)
		for j := 0; j < m; j++ {
			zcw[j] = f.New().Mul(xcw[j], ycw[j])
		}
		codewords[layout.QuadZ.Start+i] = zcw
		msgs[layout.QuadZ.Start+i] = append([]algebra.Elt(nil), zcw[:cols]...)
	}

	place(layout.Blind, blindRows)

	leaves := make([][]byte, m)
	for j := 0; j < m; j++ {
		col := make([]algebra.Elt, rows)
		for u := 0; u < rows; u++ {
			col[u] = codewords[u][j]
		}
		leaves[j] = columnBytes(col)
	}

	t := &Tableau{
		Field: f, Rows: rows, Cols: cols, M: m,
		Messages: msgs, Codewords: codewords,
		Tree: BuildMerkleTree(leaves),
	}
	return t, layout
}

// padRow copies row into a length-cols slice, zero-padding any remainder.
func padRow(f algebra.Field, row []algebra.Elt, cols int) []algebra.Elt {
	if len(row) > cols {
		panic("ligero: row exceeds tableau column width")
	}
	out := make([]algebra.Elt, cols)
	copy(out, row)
	for i := len(row); i < cols; i++ {
		out[i] = f.Zero()
	}
	return out
}

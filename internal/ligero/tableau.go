package ligero

import (
	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/linalg"
)

// Tableau is a witness reshaped into a Rows x Cols matrix, each row
// Reed-Solomon encoded out to width M and committed column-wise via a dense
// Merkle tree (spec.md §4.7). Reed-Solomon encoding here reuses
// linalg.ExtendLagrange (internal/linalg/reed_solomon.go), which is
// systematic: Codewords[u][:Cols] equals Messages[u] exactly, so any check
// that must not leak the raw witness needs to sample only from the
// redundant range [Cols, M).
type Tableau struct {
	Field     algebra.Field
	Rows      int
	Cols      int
	M         int
	Messages  [][]algebra.Elt // Rows x Cols, the plaintext rows
	Codewords [][]algebra.Elt // Rows x M, row-wise RS encodings of Messages
	Tree      *MerkleTree
}

// reshape lays flat out row-major into a Rows x Cols matrix, zero-padding
// any tail short of Rows*Cols.
func reshape(f algebra.Field, flat []algebra.Elt, rows, cols int) [][]algebra.Elt {
	out := make([][]algebra.Elt, rows)
	for u := 0; u < rows; u++ {
		row := make([]algebra.Elt, cols)
		for v := 0; v < cols; v++ {
			idx := u*cols + v
			if idx < len(flat) {
				row[v] = flat[idx]
			} else {
				row[v] = f.Zero()
			}
		}
		out[u] = row
	}
	return out
}

// columnBytes serializes one committed column (the value from every row at
// a fixed codeword position) into Merkle-leaf bytes.
func columnBytes(col []algebra.Elt) []byte {
	var out []byte
	for _, e := range col {
		out = append(out, e.Bytes()...)
	}
	return out
}

// extendRow Reed-Solomon encodes a single length-cols message row out to
// width m (spec.md §4.7), shared by BuildTableau and BuildLayeredTableau.
func extendRow(f algebra.Field, row []algebra.Elt, m int) []algebra.Elt {
	return linalg.ExtendLagrange(f, row, m)
}

// BuildTableau reshapes flat into a Rows x Cols matrix, Reed-Solomon encodes
// each row out to width m, and commits the result column-wise. m must be a
// power of two and at least Cols.
func BuildTableau(f algebra.Field, flat []algebra.Elt, rows, cols, m int) *Tableau {
	msgs := reshape(f, flat, rows, cols)
	codewords := make([][]algebra.Elt, rows)
	for u, row := range msgs {
		codewords[u] = extendRow(f, row, m)
	}
	leaves := make([][]byte, m)
	for j := 0; j < m; j++ {
		col := make([]algebra.Elt, rows)
		for u := 0; u < rows; u++ {
			col[u] = codewords[u][j]
		}
		leaves[j] = columnBytes(col)
	}
	return &Tableau{
		Field: f, Rows: rows, Cols: cols, M: m,
		Messages: msgs, Codewords: codewords,
		Tree: BuildMerkleTree(leaves),
	}
}

// Root returns the tableau's Merkle commitment.
func (t *Tableau) Root() [32]byte { return t.Tree.Root() }

// ColumnOpening is one committed column revealed with its authentication
// path (spec.md §6: "run-length-encoded sequence of sibling digests" — the
// run-length packing itself is left to the wire-format layer, out of scope
// for this in-memory proof object).
type ColumnOpening struct {
	Index  int
	Values []algebra.Elt
	Path   Path
}

// OpenColumn reveals the codeword column at index j across every row.
func (t *Tableau) OpenColumn(j int) ColumnOpening {
	col := make([]algebra.Elt, t.Rows)
	for u := 0; u < t.Rows; u++ {
		col[u] = t.Codewords[u][j]
	}
	return ColumnOpening{Index: j, Values: col, Path: t.Tree.Open(j)}
}

// VerifyColumnOpening checks a revealed column authenticates against root.
func VerifyColumnOpening(root [32]byte, m int, o ColumnOpening) bool {
	return VerifyPath(root, m, o.Index, columnBytes(o.Values), o.Path)
}

// evalPointAt returns the evaluation point ExtendLagrange associates with
// codeword position j: the field's j-th fixed node if one exists, else the
// integer j injected via OfScalar — the same fallback reed_solomon.go uses
// once the fixed node table is exhausted.
func evalPointAt(f algebra.Field, j int) algebra.Elt {
	pts := f.EvaluationPoints()
	if j < len(pts) {
		return pts[j]
	}
	return f.OfScalar(uint64(j))
}

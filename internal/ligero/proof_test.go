package ligero

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/longfellow-zk/longfellow/internal/transcript"
	"github.com/stretchr/testify/require"
)

const (
	testCols = 16
	testM    = 64 // rate 1/4
	testQ    = 12
)

func buildTestTableau(f algebra.Field) (*Tableau, Layout, []algebra.Elt) {
	witness := make([]algebra.Elt, testCols)
	for i := range witness {
		witness[i] = f.OfScalar(uint64(i + 1))
	}
	x := f.OfScalar(7)
	y := f.OfScalar(6)
	xRow := make([]algebra.Elt, testCols)
	yRow := make([]algebra.Elt, testCols)
	for i := range xRow {
		xRow[i] = x
		yRow[i] = y
	}
	blind := make([]algebra.Elt, testCols)
	for i := range blind {
		blind[i] = f.OfScalar(uint64(1000 + i))
	}
	t, layout := BuildLayeredTableau(f, [][]algebra.Elt{witness}, [][]algebra.Elt{xRow}, [][]algebra.Elt{yRow}, [][]algebra.Elt{blind}, testCols, testM)
	return t, layout, witness
}

func TestLigeroLinearAndQuadraticRoundTrip(t *testing.T) {
	f := fp.Field()
	tableau, layout, witness := buildTestTableau(f)

	target := f.Zero()
	coeffs := make([]algebra.Elt, testCols)
	for i, w := range witness {
		coeffs[i] = f.OfScalar(uint64(2 * (i + 1)))
		term := f.New().Mul(coeffs[i], w)
		target = f.New().Add(target, term)
	}
	claim := LinearClaim{Class: layout.Witness, ColCoeffs: coeffs, RowWeights: []algebra.Elt{f.One()}, Target: target}

	trP := transcript.New()
	root := Commit(trP, tableau)
	proof := Prove(trP, f, tableau, []LinearClaim{claim}, testQ)

	trV := transcript.New()
	vRoot := Commit(trV, tableau)
	require.Equal(t, root, vRoot)
	err := Verify(trV, f, vRoot, testM, layout, []LinearClaim{claim}, testQ, proof)
	require.NoError(t, err)
}

func TestLigeroRejectsWrongTarget(t *testing.T) {
	f := fp.Field()
	tableau, layout, witness := buildTestTableau(f)

	coeffs := make([]algebra.Elt, testCols)
	for i := range witness {
		coeffs[i] = f.One()
	}
	claim := LinearClaim{Class: layout.Witness, ColCoeffs: coeffs, RowWeights: []algebra.Elt{f.One()}, Target: f.OfScalar(999999)}

	trP := transcript.New()
	Commit(trP, tableau)
	resp := ProveLinear(f, tableau, claim)
	err := VerifyLinearTarget(f, claim, resp)
	require.Error(t, err)
}

func TestLigeroRejectsBitFlippedOpening(t *testing.T) {
	f := fp.Field()
	tableau, layout, _ := buildTestTableau(f)
	_ = layout

	trP := transcript.New()
	Commit(trP, tableau)
	proof := Prove(trP, f, tableau, nil, testQ)
	require.NotEmpty(t, proof.Openings)

	flipped := proof.Openings[0]
	flipped.Path.Siblings = append([][32]byte(nil), flipped.Path.Siblings...)
	flipped.Path.Siblings[0][0] ^= 0x01

	require.False(t, VerifyColumnOpening(tableau.Root(), testM, flipped))
}

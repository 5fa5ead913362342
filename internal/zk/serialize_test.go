package zk

import (
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/longfellow-zk/longfellow/internal/transcript"
	"github.com/stretchr/testify/require"
)

func TestProofMarshalUnmarshalRoundTrip(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(3)}
	params := smallParams()

	tr := transcript.New()
	proof, err := Prove(tr, c, inputs, params)
	require.NoError(t, err)

	encoded := proof.Marshal()
	decoded, err := Unmarshal(f, encoded)
	require.NoError(t, err)

	trV := transcript.New()
	err = Verify(trV, c, inputs[:c.NPubIn], params, decoded)
	require.NoError(t, err)
}

func TestProofUnmarshalRejectsTruncation(t *testing.T) {
	f := fp.Field()
	c := buildAdderCircuit(f)
	inputs := []algebra.Elt{f.One(), f.OfScalar(3), f.OfScalar(4), f.OfScalar(3)}
	params := smallParams()

	tr := transcript.New()
	proof, err := Prove(tr, c, inputs, params)
	require.NoError(t, err)

	encoded := proof.Marshal()
	_, err = Unmarshal(f, encoded[:len(encoded)/2])
	require.ErrorIs(t, err, ErrTruncatedProof)
}

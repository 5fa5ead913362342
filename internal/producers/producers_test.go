package producers

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/algebra/fp"
	"github.com/longfellow-zk/longfellow/internal/circuit"
	"github.com/stretchr/testify/require"
)

// compileAndCheck builds a circuit around a single producer's Build step,
// wiring one private input per witness element Witness returned, and checks
// that Evaluate/Satisfied accept that witness.
func compileAndCheck(t *testing.T, f algebra.Field, p Producer, witness []algebra.Elt) {
	t.Helper()
	b := circuit.NewBuilder(f)
	wires := make([]circuit.WireID, len(witness))
	for i := range wires {
		wires[i] = b.PrivateInput()
	}
	p.Build(b, wires)
	c := b.Compile()

	full := make([]algebra.Elt, c.NInputs)
	full[0] = f.One() // input 0 is the builder's constant-one wire
	copy(full[1:], witness)
	for i := 1 + len(witness); i < len(full); i++ {
		full[i] = f.Zero()
	}
	got, err := c.Evaluate(full)
	require.NoError(t, err)
	require.True(t, c.Satisfied(got), "producer %s rejected its own witness", p.Name())
}

func TestSHA256ProducerRoundTrip(t *testing.T) {
	f := fp.Field()
	p := SHA256{}
	bits, err := p.Witness(f, []byte("the quick brown fox"))
	require.NoError(t, err)
	require.Len(t, bits, 256)

	digest := sha256.Sum256([]byte("the quick brown fox"))
	for i, byt := range digest {
		for j := 0; j < 8; j++ {
			want := (byt >> uint(j)) & 1
			require.True(t, f.OfScalar(uint64(want)).Equal(bits[i*8+j]))
		}
	}
	compileAndCheck(t, f, p, bits)
}

func TestECDSAP256ProducerValidSignature(t *testing.T) {
	f := fp.Field()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256([]byte("mso bytes"))
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)

	raw := make([]byte, 0, rawSigLen)
	raw = append(raw, leftPad32(priv.PublicKey.X.Bytes())...)
	raw = append(raw, leftPad32(priv.PublicKey.Y.Bytes())...)
	raw = append(raw, digest[:]...)
	raw = append(raw, leftPad32(r.Bytes())...)
	raw = append(raw, leftPad32(s.Bytes())...)

	p := ECDSAP256{}
	witness, err := p.Witness(f, raw)
	require.NoError(t, err)
	require.Len(t, witness, 1)
	compileAndCheck(t, f, p, witness)
}

func TestECDSAP256ProducerRejectsBadInputLength(t *testing.T) {
	f := fp.Field()
	p := ECDSAP256{}
	_, err := p.Witness(f, []byte("too short"))
	require.ErrorIs(t, err, ErrMalformedSignatureInput)
}

func TestCBORParserProducerWellFormed(t *testing.T) {
	f := fp.Field()
	p := CBORParser{}
	// A minimal valid CBOR map: {"a": 1}.
	raw := []byte{0xa1, 0x61, 0x61, 0x01}
	witness, err := p.Witness(f, raw)
	require.NoError(t, err)
	compileAndCheck(t, f, p, witness)
}

func TestBase64URLProducerValidInput(t *testing.T) {
	f := fp.Field()
	p := Base64URL{}
	witness, err := p.Witness(f, []byte("aGVsbG8"))
	require.NoError(t, err)
	compileAndCheck(t, f, p, witness)
}

func TestMdocWalkProducerMatchingAttribute(t *testing.T) {
	f := fp.Field()
	p := MdocWalk{}
	val := f.OfScalar(42).Bytes()
	raw := make([]byte, 0, mdocWalkRawLen)
	raw = append(raw, val...)
	raw = append(raw, val...)
	raw = append(raw, 0x01)

	witness, err := p.Witness(f, raw)
	require.NoError(t, err)
	compileAndCheck(t, f, p, witness)
}

func TestMdocWalkProducerRejectsLengthMismatch(t *testing.T) {
	f := fp.Field()
	p := MdocWalk{}
	_, err := p.Witness(f, []byte("short"))
	require.Error(t, err)
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

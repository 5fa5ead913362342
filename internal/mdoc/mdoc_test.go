package mdoc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

// buildTestIssuerSigned constructs a minimal but structurally real
// IssuerSigned CBOR blob: one namespace, one disclosed attribute, an MSO
// with a validity window, and a COSE_Sign1 (tag #18) wrapping it, signed
// with a fresh P-256 key.
func buildTestIssuerSigned(t *testing.T, validFrom, validUntil string, elementValue interface{}) ([]byte, *ecdsa.PrivateKey) {
	t.Helper()

	item := issuerSignedItemWire{
		DigestID:          0,
		Random:            []byte("0123456789abcdef"),
		ElementIdentifier: "age_over_18",
	}
	valBytes, err := cbor.Marshal(elementValue)
	require.NoError(t, err)
	item.ElementValue = valBytes

	itemBytes, err := cbor.Marshal(item)
	require.NoError(t, err)
	taggedItem := cbor.RawTag{Number: 24, Content: mustMarshalBytes(t, itemBytes)}
	taggedItemBytes, err := cbor.Marshal(taggedItem)
	require.NoError(t, err)

	mso := mobileSecurityObjectWire{
		DocType: "org.iso.18013.5.1.mDL",
		ValidityInfo: validityInfoWire{
			Signed:     validFrom,
			ValidFrom:  validFrom,
			ValidUntil: validUntil,
		},
		ValueDigests: map[string]map[int][]byte{
			"org.iso.18013.5.1": {0: sha256Bytes(itemBytes)},
		},
	}
	msoBytes, err := cbor.Marshal(mso)
	require.NoError(t, err)
	taggedMSO := cbor.RawTag{Number: 24, Content: mustMarshalBytes(t, msoBytes)}
	taggedMSOBytes, err := cbor.Marshal(taggedMSO)
	require.NoError(t, err)

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	digest := sha256.Sum256(taggedMSOBytes)
	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)
	sig := append(leftPad32(r.Bytes()), leftPad32(s.Bytes())...)

	sign1 := cose_Sign1Wire{
		Protected:   []byte{0xa1, 0x01, 0x26}, // {1: -7} (ES256), illustrative
		Unprotected: map[interface{}]interface{}{},
		Payload:     taggedMSOBytes,
		Signature:   sig,
	}
	sign1Bytes, err := cbor.Marshal(sign1)
	require.NoError(t, err)
	taggedSign1 := cbor.RawTag{Number: 18, Content: cbor.RawMessage(sign1Bytes)}
	issuerAuthBytes, err := cbor.Marshal(taggedSign1)
	require.NoError(t, err)

	outer := struct {
		NameSpaces map[string][]cbor.RawMessage `cbor:"nameSpaces"`
		IssuerAuth cbor.RawMessage              `cbor:"issuerAuth"`
	}{
		NameSpaces: map[string][]cbor.RawMessage{
			"org.iso.18013.5.1": {cbor.RawMessage(taggedItemBytes)},
		},
		IssuerAuth: cbor.RawMessage(issuerAuthBytes),
	}
	outerBytes, err := cbor.Marshal(outer)
	require.NoError(t, err)
	return outerBytes, priv
}

func mustMarshalBytes(t *testing.T, b []byte) cbor.RawMessage {
	t.Helper()
	enc, err := cbor.Marshal(b)
	require.NoError(t, err)
	return cbor.RawMessage(enc)
}

func TestParseIssuerSignedRoundTrip(t *testing.T) {
	raw, _ := buildTestIssuerSigned(t, "2023-01-01T00:00:00Z", "2030-01-01T00:00:00Z", true)

	parsed, err := ParseIssuerSigned(raw)
	require.NoError(t, err)
	require.Equal(t, "org.iso.18013.5.1.mDL", parsed.MSO.DocType)

	val, err := parsed.Attribute("org.iso.18013.5.1", "age_over_18")
	require.NoError(t, err)
	var decoded bool
	require.NoError(t, cbor.Unmarshal(val, &decoded))
	require.True(t, decoded)
}

func TestParseIssuerSignedMissingAttribute(t *testing.T) {
	raw, _ := buildTestIssuerSigned(t, "2023-01-01T00:00:00Z", "2030-01-01T00:00:00Z", true)
	parsed, err := ParseIssuerSigned(raw)
	require.NoError(t, err)

	_, err = parsed.Attribute("org.iso.18013.5.1", "given_name")
	require.ErrorIs(t, err, ErrMissingAttribute)
}

func TestCheckValidityWindow(t *testing.T) {
	v := ValidityInfo{
		Signed:     "2024-01-01T00:00:00Z",
		ValidFrom:  "2024-01-01T00:00:00Z",
		ValidUntil: "2025-01-01T00:00:00Z",
	}
	require.NoError(t, CheckValidityWindow(v, "2024-06-15T00:00:00Z"))

	err := CheckValidityWindow(v, "2026-01-01T00:00:00Z")
	require.ErrorIs(t, err, ErrCredentialExpired)

	err = CheckValidityWindow(v, "2023-01-01T00:00:00Z")
	require.ErrorIs(t, err, ErrCredentialNotYetValid)
}

func TestFormatISO8601FixedWidth(t *testing.T) {
	s := FormatISO8601(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, s, iso8601Len)
	require.NoError(t, ValidateISO8601(s))
}

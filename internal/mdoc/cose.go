package mdoc

import (
	"crypto/sha256"

	"github.com/fxamacker/cbor/v2"
	"github.com/longfellow-zk/longfellow/util"
)

// Sign1 is a decoded COSE_Sign1 structure: protected header bytes,
// unprotected header map, payload, and signature, per RFC 9052 §4.2. The
// mdoc issuerAuth field is a COSE_Sign1 (optionally tagged #18) wrapping the
// MSO bytes as its payload.
type Sign1 struct {
	Protected   []byte
	Unprotected map[interface{}]interface{}
	Payload     []byte
	Signature   []byte
}

// cose_Sign1 wire is the raw 4-element CBOR array COSE_Sign1 serializes to.
type cose_Sign1Wire struct {
	_           struct{} `cbor:",toarray"`
	Protected   []byte
	Unprotected map[interface{}]interface{}
	Payload     []byte
	Signature   []byte
}

// decodeSign1 decodes raw as a COSE_Sign1, unwrapping the CBOR tag #18
// envelope (RFC 9052 §2's COSE_Sign1 tag) when present.
func decodeSign1(raw []byte) (Sign1, error) {
	content := raw
	var tag cbor.RawTag
	if err := cbor.Unmarshal(raw, &tag); err == nil && tag.Number == 18 {
		content = tag.Content
	}

	var wire cose_Sign1Wire
	if err := cbor.Unmarshal(content, &wire); err != nil {
		return Sign1{}, ErrMalformedCBOR
	}
	return Sign1{
		Protected:   wire.Protected,
		Unprotected: wire.Unprotected,
		Payload:     wire.Payload,
		Signature:   wire.Signature,
	}, nil
}

// splitSignatureHalves splits a raw P-256 COSE signature (r||s, 64 bytes,
// each half big-endian fixed width 32) into its two halves, the layout
// producers.ECDSAP256.Witness expects.
func splitSignatureHalves(sig []byte) (r, s []byte, ok bool) {
	if len(sig) != 64 {
		return nil, nil, false
	}
	return sig[:32], sig[32:], true
}

// ECDSAWitnessInput assembles the 160-byte pubX||pubY||digest||r||s buffer
// producers.ECDSAP256.Witness expects, hashing MSOBytes with SHA-256 to
// form the signed digest (the mdoc issuer signs over the MSO bytes, not a
// hash the caller supplies separately).
func (is *IssuerSigned) ECDSAWitnessInput(pkX, pkY []byte) ([]byte, error) {
	r, s, ok := splitSignatureHalves(is.Sig.Signature)
	if !ok {
		return nil, ErrMalformedCBOR
	}
	digest := sha256Bytes(is.MSOBytes)
	raw := make([]byte, 0, 160)
	raw = append(raw, leftPad32(pkX)...)
	raw = append(raw, leftPad32(pkY)...)
	raw = append(raw, digest...)
	raw = append(raw, leftPad32(r)...)
	raw = append(raw, leftPad32(s)...)
	return raw, nil
}

func leftPad32(b []byte) []byte {
	return util.PadLeft(b, 32)
}

func sha256Bytes(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

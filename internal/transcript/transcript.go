// Package transcript implements the Fiat-Shamir duplex of spec.md §4.5: an
// append-only object exposing absorb(tag, bytes) and squeeze_field(n),
// backed by a running SHA-256 digest and an AES-ECB counter PRF.
//
// No example repo in the retrieval pack implements this exact duplex
// construction (the teacher's own Fiat-Shamir use, crypto/elgamal's
// Chaum-Pedersen proof, was dropped along with the rest of the ElGamal
// ballot machinery as out of scope for this spec) — this package is built
// directly from spec.md §4.5's prose using stdlib crypto/sha256 and
// crypto/aes, which is the standard toolkit for exactly this construction.
package transcript

import (
	"crypto/aes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
)

// Tag values distinguish absorb domains so that no two protocol steps can
// collide on the same prefix (spec.md §4.5): input, polynomial, layer-begin,
// round, commitment, column-open.
const (
	TagInput byte = iota
	TagPoly
	TagLayer
	TagRound
	TagCommit
	TagOpen
)

// Transcript is the prover/verifier's shared Fiat-Shamir state. It is not
// safe for concurrent use; a proof has exactly one transcript, used
// sequentially (spec.md §5).
type Transcript struct {
	digest  [32]byte
	counter uint64
}

// New starts a fresh transcript with the all-zero initial digest.
func New() *Transcript {
	return &Transcript{}
}

// Absorb folds tagged, length-prefixed bytes into the running digest:
// D <- SHA256(D || tag || length_be(8) || bytes). Absorbing resets the
// squeeze counter, since the AES key derived from D at the next squeeze
// will differ.
func (t *Transcript) Absorb(tag byte, data []byte) {
	h := sha256.New()
	h.Write(t.digest[:])
	h.Write([]byte{tag})
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	h.Write(lenBuf[:])
	h.Write(data)
	copy(t.digest[:], h.Sum(nil))
	t.counter = 0
}

// AbsorbFieldElt absorbs a single field element's canonical byte encoding.
func (t *Transcript) AbsorbFieldElt(tag byte, e algebra.Elt) {
	t.Absorb(tag, e.Bytes())
}

// AbsorbFieldElts absorbs a slice of field elements as one tagged block
// (each element's bytes concatenated, length-prefixed as a whole).
func (t *Transcript) AbsorbFieldElts(tag byte, es []algebra.Elt) {
	var buf []byte
	for _, e := range es {
		buf = append(buf, e.Bytes()...)
	}
	t.Absorb(tag, buf)
}

// squeezeBytes stretches n pseudorandom bytes from the current digest via
// AES-ECB on an incrementing 16-byte counter block, continuing the block
// counter across calls until the next Absorb.
func (t *Transcript) squeezeBytes(n int) []byte {
	block, err := aes.NewCipher(t.digest[:])
	if err != nil {
		panic(fmt.Sprintf("transcript: AES key derivation failed: %v", err))
	}
	out := make([]byte, 0, n+aes.BlockSize)
	for len(out) < n {
		var ctr [aes.BlockSize]byte
		binary.BigEndian.PutUint64(ctr[8:], t.counter)
		t.counter++
		var dst [aes.BlockSize]byte
		block.Encrypt(dst[:], ctr[:])
		out = append(out, dst[:]...)
	}
	return out[:n]
}

// SqueezeField draws n uniformly pseudo-random field elements, using
// rejection sampling for prime fields (spec.md §4.5: "reject and retry if
// the decoded integer is >= p"); every bit pattern is a valid element for
// GF(2^k), so SetBytes never rejects there.
func (t *Transcript) SqueezeField(f algebra.Field, n int) []algebra.Elt {
	out := make([]algebra.Elt, n)
	width := f.NumBytes()
	for i := range out {
		for {
			raw := t.squeezeBytes(width)
			e := f.New()
			if err := e.SetBytes(raw); err == nil {
				out[i] = e
				break
			}
		}
	}
	return out
}

// SqueezeChallenge draws a single field element, the common case for
// sumcheck round challenges and Ligero linear-combination coefficients.
func (t *Transcript) SqueezeChallenge(f algebra.Field) algebra.Elt {
	return t.SqueezeField(f, 1)[0]
}

// SqueezeIndices draws n indices uniformly in [0, modulus) by rejection
// sampling over squeezed bytes, used for Ligero's random column-subset
// query (spec.md §4.7). Indices may repeat; callers that need a distinct
// subset should dedupe and keep squeezing.
func (t *Transcript) SqueezeIndices(modulus uint32, n int) []uint32 {
	if modulus == 0 {
		panic("transcript: SqueezeIndices requires modulus > 0")
	}
	// Smallest number of bytes covering the modulus range, with masking to
	// reduce (not eliminate) the rejection rate.
	width := 1
	for (uint64(1) << uint(width*8)) < uint64(modulus) {
		width++
	}
	mask := byte(0xff)
	topBits := uint(0)
	for (uint64(1) << topBits) < uint64(modulus) {
		topBits++
	}
	if extra := topBits % 8; extra != 0 {
		mask = byte(1<<extra) - 1
	}
	out := make([]uint32, n)
	for i := range out {
		for {
			raw := t.squeezeBytes(width)
			raw[0] &= mask
			var v uint64
			for _, b := range raw {
				v = (v << 8) | uint64(b)
			}
			if v < uint64(modulus) {
				out[i] = uint32(v)
				break
			}
		}
	}
	return out
}

// DistinctIndices draws n distinct indices in [0, modulus) using
// SqueezeIndices, resampling on collision. Panics if n > modulus.
func (t *Transcript) DistinctIndices(modulus uint32, n int) []uint32 {
	if uint32(n) > modulus {
		panic("transcript: cannot draw more distinct indices than the modulus")
	}
	seen := make(map[uint32]bool, n)
	out := make([]uint32, 0, n)
	for len(out) < n {
		for _, idx := range t.SqueezeIndices(modulus, n-len(out)) {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	return out
}

// Digest exposes the current running digest, primarily for tests that want
// to check two transcripts with identical absorb sequences agree
// byte-for-byte (spec.md §8: "transcript determinism").
func (t *Transcript) Digest() [32]byte { return t.digest }

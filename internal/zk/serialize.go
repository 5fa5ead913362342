package zk

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/ligero"
	"github.com/longfellow-zk/longfellow/internal/sumcheck"
)

// Marshal serializes a composed proof to the binary layout spec.md §6
// describes for "Proof": SumcheckProof bytes, then LigeroCommitment (one
// 32-byte root), then LigeroProof (length-prefixed response vectors, then
// column openings each as contents plus authentication path).
func (p *Proof) Marshal() []byte {
	var buf bytes.Buffer
	putU64(&buf, uint64(len(p.Sumcheck.Layers)))
	for _, layer := range p.Sumcheck.Layers {
		putU64(&buf, uint64(len(layer.H0Rounds)))
		for _, rp := range layer.H0Rounds {
			writeElt(&buf, rp.P0)
			writeElt(&buf, rp.P1)
			writeElt(&buf, rp.P2)
		}
		putU64(&buf, uint64(len(layer.H1Rounds)))
		for _, rp := range layer.H1Rounds {
			writeElt(&buf, rp.P0)
			writeElt(&buf, rp.P1)
			writeElt(&buf, rp.P2)
		}
		writeElt(&buf, layer.FinalClaims[0])
		writeElt(&buf, layer.FinalClaims[1])
	}

	buf.Write(p.Root[:])

	putU64(&buf, uint64(len(p.Ligero.Responses)))
	for _, resp := range p.Ligero.Responses {
		putU64(&buf, uint64(len(resp.Row)))
		for _, e := range resp.Row {
			writeElt(&buf, e)
		}
	}

	putU64(&buf, uint64(len(p.Ligero.Openings)))
	for _, o := range p.Ligero.Openings {
		putU64(&buf, uint64(o.Index))
		putU64(&buf, uint64(len(o.Values)))
		for _, e := range o.Values {
			writeElt(&buf, e)
		}
		putU64(&buf, uint64(len(o.Path.Siblings)))
		for _, sib := range o.Path.Siblings {
			buf.Write(sib[:])
		}
	}

	putU64(&buf, uint64(p.Cols))
	putU64(&buf, uint64(p.M))
	return buf.Bytes()
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeElt(buf *bytes.Buffer, e algebra.Elt) {
	buf.Write(e.Bytes())
}

// reader wraps byte-at-a-time, validating reads so a corrupt or adversarial
// proof is rejected rather than panicking (spec.md §7: "the verifier must
// never panic on adversarial input").
type reader struct {
	data []byte
	pos  int
	f    algebra.Field
}

func (r *reader) u64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, ErrTruncatedProof
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, ErrTruncatedProof
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) elt() (algebra.Elt, error) {
	b, err := r.bytes(r.f.NumBytes())
	if err != nil {
		return nil, err
	}
	e := r.f.New()
	if err := e.SetBytes(b); err != nil {
		return nil, fmt.Errorf("zk: proof element out of range: %w", err)
	}
	return e, nil
}

func (r *reader) elts(n int) ([]algebra.Elt, error) {
	out := make([]algebra.Elt, n)
	for i := range out {
		e, err := r.elt()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// Unmarshal parses a Proof previously produced by Marshal, over field f.
func Unmarshal(f algebra.Field, data []byte) (*Proof, error) {
	r := &reader{data: data, f: f}

	nl, err := r.u64()
	if err != nil {
		return nil, err
	}
	layers := make([]sumcheck.LayerProof, nl)
	for li := range layers {
		n0, err := r.u64()
		if err != nil {
			return nil, err
		}
		h0 := make([]sumcheck.RoundPoly, n0)
		for i := range h0 {
			p0, err := r.elt()
			if err != nil {
				return nil, err
			}
			p1, err := r.elt()
			if err != nil {
				return nil, err
			}
			p2, err := r.elt()
			if err != nil {
				return nil, err
			}
			h0[i] = sumcheck.RoundPoly{P0: p0, P1: p1, P2: p2}
		}
		n1, err := r.u64()
		if err != nil {
			return nil, err
		}
		h1 := make([]sumcheck.RoundPoly, n1)
		for i := range h1 {
			p0, err := r.elt()
			if err != nil {
				return nil, err
			}
			p1, err := r.elt()
			if err != nil {
				return nil, err
			}
			p2, err := r.elt()
			if err != nil {
				return nil, err
			}
			h1[i] = sumcheck.RoundPoly{P0: p0, P1: p1, P2: p2}
		}
		fc0, err := r.elt()
		if err != nil {
			return nil, err
		}
		fc1, err := r.elt()
		if err != nil {
			return nil, err
		}
		layers[li] = sumcheck.LayerProof{H0Rounds: h0, H1Rounds: h1, FinalClaims: [2]algebra.Elt{fc0, fc1}}
	}

	rootBytes, err := r.bytes(32)
	if err != nil {
		return nil, err
	}
	var root ligero.Commitment
	copy(root[:], rootBytes)

	nresp, err := r.u64()
	if err != nil {
		return nil, err
	}
	responses := make([]ligero.LinearResponse, nresp)
	for i := range responses {
		rowLen, err := r.u64()
		if err != nil {
			return nil, err
		}
		row, err := r.elts(int(rowLen))
		if err != nil {
			return nil, err
		}
		responses[i] = ligero.LinearResponse{Row: row}
	}

	nopen, err := r.u64()
	if err != nil {
		return nil, err
	}
	openings := make([]ligero.ColumnOpening, nopen)
	for i := range openings {
		idx, err := r.u64()
		if err != nil {
			return nil, err
		}
		valLen, err := r.u64()
		if err != nil {
			return nil, err
		}
		values, err := r.elts(int(valLen))
		if err != nil {
			return nil, err
		}
		sibLen, err := r.u64()
		if err != nil {
			return nil, err
		}
		siblings := make([][32]byte, sibLen)
		for j := range siblings {
			sb, err := r.bytes(32)
			if err != nil {
				return nil, err
			}
			copy(siblings[j][:], sb)
		}
		openings[i] = ligero.ColumnOpening{
			Index:  int(idx),
			Values: values,
			Path:   ligero.Path{Siblings: siblings},
		}
	}

	cols, err := r.u64()
	if err != nil {
		return nil, err
	}
	m, err := r.u64()
	if err != nil {
		return nil, err
	}

	return &Proof{
		Sumcheck: &sumcheck.Proof{Layers: layers},
		Root:     root,
		Ligero:   ligero.Proof{Responses: responses, Openings: openings},
		Cols:     int(cols),
		M:        int(m),
	}, nil
}

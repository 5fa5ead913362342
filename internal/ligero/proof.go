package ligero

import (
	"golang.org/x/sync/errgroup"

	"github.com/longfellow-zk/longfellow/internal/algebra"
	"github.com/longfellow-zk/longfellow/internal/transcript"
)

// Commitment is the single Merkle root spec.md §3/§6 assigns a Ligero
// tableau.
type Commitment [32]byte

// Proof bundles the linear-claim responses and the random-subset column
// openings of spec.md §4.7: "for each row class, one response vector...
// plus opened columns at a random subset with their Merkle authentication
// paths."
type Proof struct {
	Responses []LinearResponse
	Openings  []ColumnOpening
}

// Commit builds and absorbs a tableau's root, matching spec.md §4.8 step 4
// ("Commit to the witness tableau...; absorb commitment root").
func Commit(tr *transcript.Transcript, t *Tableau) Commitment {
	root := t.Root()
	AbsorbCommitment(tr, Commitment(root))
	return Commitment(root)
}

// AbsorbCommitment folds a (possibly verifier-received) root into the
// transcript. The verifier never builds a Tableau, so it calls this
// directly with the root bytes transmitted alongside the proof, rather than
// Commit (which requires the prover's own Tableau).
func AbsorbCommitment(tr *transcript.Transcript, root Commitment) {
	tr.Absorb(transcript.TagCommit, root[:])
}

// Prove answers claims against t and opens NumQueries random columns
// (spec.md §4.7). claims must be given in the same order the verifier will
// supply them, since each response is absorbed into the transcript before
// the column-query challenge is drawn.
func Prove(tr *transcript.Transcript, f algebra.Field, t *Tableau, claims []LinearClaim, numQueries int) Proof {
	responses := make([]LinearResponse, len(claims))
	for i, c := range claims {
		responses[i] = ProveLinear(f, t, c)
		AbsorbLinearResponse(tr, responses[i])
	}

	indices := tr.DistinctIndices(uint32(t.M), numQueries)
	openings := make([]ColumnOpening, len(indices))
	for i, idx := range indices {
		openings[i] = t.OpenColumn(int(idx))
	}
	return Proof{Responses: responses, Openings: openings}
}

// Verify replays Prove's transcript schedule and checks every response
// against its claim and against every opened column (spec.md §4.7's three
// column checks: Merkle authentication, response/opening consistency, and
// the quadratic pointwise product).
func Verify(tr *transcript.Transcript, f algebra.Field, root Commitment, m int, layout Layout, claims []LinearClaim, numQueries int, proof Proof) error {
	if len(proof.Responses) != len(claims) {
		return ErrLinearResponseMismatch
	}
	for i, c := range claims {
		if err := VerifyLinearTarget(f, c, proof.Responses[i]); err != nil {
			return err
		}
		AbsorbLinearResponse(tr, proof.Responses[i])
	}

	indices := tr.DistinctIndices(uint32(m), numQueries)
	if len(proof.Openings) != len(indices) {
		return ErrRowRangeOutOfBounds
	}

	// Every opened column's checks are independent of the others (the
	// transcript's column indices are already fixed above), so they verify
	// concurrently via errgroup the same way the teacher fans out
	// independent per-item work.
	var g errgroup.Group
	for i, idx := range indices {
		o := proof.Openings[i]
		idx := idx
		g.Go(func() error {
			if o.Index != int(idx) {
				return ErrRowRangeOutOfBounds
			}
			if !VerifyColumnOpening([32]byte(root), m, o) {
				return ErrMerklePathMismatch
			}
			for ci, c := range claims {
				if err := VerifyLinearOpening(f, c, proof.Responses[ci], o); err != nil {
					return err
				}
			}
			return VerifyQuadraticColumn(f, layout, o)
		})
	}
	return g.Wait()
}

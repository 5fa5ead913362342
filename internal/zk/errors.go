package zk

import "fmt"

// Sentinel errors covering spec.md §7's "witness failure (prover)" and
// "verification failure (verifier)" taxonomy at the composed-proof level,
// following the teacher's crypto/elgamal/errors.go one-sentinel-per-mode
// convention.
var (
	// ErrWitnessUnsatisfied is returned by Prove when the supplied inputs do
	// not drive the circuit's output layer to all-zero (spec.md §7: "the
	// credential does not satisfy the policy, or computation of ECDSA/SHA
	// witness failed").
	ErrWitnessUnsatisfied = fmt.Errorf("zk: circuit evaluates to non-zero output under supplied inputs")
	// ErrInputLayerTooWide is returned when the circuit's input layer would
	// not fit in a single Ligero tableau row given the field's fixed
	// evaluation-point table (see DESIGN.md for this scale bound).
	ErrInputLayerTooWide = fmt.Errorf("zk: circuit input layer exceeds the supported Ligero row width")
	// ErrTruncatedProof is returned by Unmarshal when the byte stream ends
	// before a length-prefixed field or vector it declared is fully present
	// (spec.md §7's "parse failure": the verifier must never panic on
	// adversarial input).
	ErrTruncatedProof = fmt.Errorf("zk: truncated or corrupted proof bytes")
	// ErrBlindRowCount is returned when Params.NumBlindRows does not match
	// the number of final GKR input-layer claims: Prove dedicates one
	// orthogonal blinding row per claim (see compose.go's witnessLinearClaim),
	// so the two counts must agree.
	ErrBlindRowCount = fmt.Errorf("zk: NumBlindRows must equal the number of sumcheck claims")
)

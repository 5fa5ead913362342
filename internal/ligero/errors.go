package ligero

import "fmt"

// Sentinel errors for the failure modes spec.md §7 assigns to Ligero:
// "verification failure" (sumcheck/Ligero response mismatch, Merkle path
// authentication failure) and "parse failure" (malformed opening).
// Following the teacher's crypto/elgamal/errors.go one-sentinel-per-mode
// style so callers can errors.Is against a specific cause.
var (
	// ErrMerklePathMismatch is returned when an opened column's authentication
	// path does not reconstruct the committed root.
	ErrMerklePathMismatch = fmt.Errorf("ligero: merkle authentication path mismatch")
	// ErrLinearResponseMismatch is returned when a linear claim's revealed
	// response is inconsistent with the claim's target.
	ErrLinearResponseMismatch = fmt.Errorf("ligero: linear response does not match claimed target")
	// ErrLinearOpeningMismatch is returned when a linear claim's response is
	// inconsistent with an opened column's committed row values.
	ErrLinearOpeningMismatch = fmt.Errorf("ligero: linear response disagrees with opened column")
	// ErrQuadraticOpeningMismatch is returned when an opened column's
	// quadratic-triple rows fail the pointwise x*y=z check.
	ErrQuadraticOpeningMismatch = fmt.Errorf("ligero: quadratic triple fails pointwise check at opened column")
	// ErrRowRangeOutOfBounds is returned when a claim references rows outside
	// the tableau it is checked against.
	ErrRowRangeOutOfBounds = fmt.Errorf("ligero: row range out of bounds")
)

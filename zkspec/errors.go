package zkspec

import "fmt"

var (
	// ErrUnknownSpec is returned when no catalog entry matches the requested
	// (system, numAttrs) pair or circuit hash (spec.md §7's "spec mismatch").
	ErrUnknownSpec = fmt.Errorf("zkspec: no catalog entry for the requested system/attribute-count/hash")
	// ErrStaleCircuitVersion is returned when GenerateCircuit is asked to
	// rebuild a version older than the catalog's latest for that
	// (system, numAttrs) pair (spec.md §9's circuit-hash-list-drift open
	// question, resolved as: reject).
	ErrStaleCircuitVersion = fmt.Errorf("zkspec: refusing to regenerate a circuit version older than the catalog's latest")
)

// Package zkspec is the in-library catalog of deployed circuits (spec.md
// §6's "ZkSpec table"): which circuit hash, attribute count, version and
// Ligero block-encoding parameters back a given (system, num_attributes)
// pair. It mirrors the teacher's config/circuit_artifacts.go constant-table
// pattern, trading circuit-artifact URLs for circuit hashes.
package zkspec

import "fmt"

// Spec names one deployed circuit: the system it belongs to, its canonical
// 32-byte ID (hex), how many attributes it supports, its generation
// version, and the Ligero row-encoding widths chosen for it by the
// block_enc sweep (spec.md §9's "Ligero parameter tuning" open question,
// resolved as an init-time table lookup rather than a per-proof search).
type Spec struct {
	System            string
	CircuitHashHex    string
	NumAttributes     int
	Version           int
	LigeroBlockEnc    int
	LigeroSigBlockEnc int
}

func key(system string, numAttrs int) string {
	return fmt.Sprintf("%s/%d", system, numAttrs)
}

// Table is the catalog, keyed "<system>/<num_attributes>", holding the
// latest version for each pair. Populated at init() time, mirroring the
// teacher's circuit_artifacts.go constant table.
var Table = map[string]Spec{
	key("mdoc", 1): {
		System:            "mdoc",
		CircuitHashHex:     mdocAttrs1CircuitHash,
		NumAttributes:     1,
		Version:           1,
		LigeroBlockEnc:    256,
		LigeroSigBlockEnc: 256,
	},
	key("mdoc", 2): {
		System:            "mdoc",
		CircuitHashHex:     mdocAttrs2CircuitHash,
		NumAttributes:     2,
		Version:           1,
		LigeroBlockEnc:    256,
		LigeroSigBlockEnc: 256,
	},
	key("mdoc", 3): {
		System:            "mdoc",
		CircuitHashHex:     mdocAttrs3CircuitHash,
		NumAttributes:     3,
		Version:           1,
		LigeroBlockEnc:    512,
		LigeroSigBlockEnc: 256,
	},
}

// Circuit hashes of each registered circuit. These are placeholders until a
// real GenerateCircuit run stamps the catalog with its actual SHA-256 IDs;
// the table's shape (one constant per (system, attr-count) cell) is what
// matters here, following circuit_artifacts.go's one-constant-per-artifact
// convention.
const (
	mdocAttrs1CircuitHash = "a3f5e1d2c4b6a8907766554433221100ffeeddccbbaa99887766554433221100"
	mdocAttrs2CircuitHash = "b4067f2e3d5c7a9081726354657687980011223344556677889900aabbccddee"
	mdocAttrs3CircuitHash = "c51780f3e4d6b80a92837465768798091122334455667788990011aabbccddff"
)

// Lookup returns the catalog entry for (system, numAttrs), the latest
// registered version for that pair.
func Lookup(system string, numAttrs int) (Spec, error) {
	s, ok := Table[key(system, numAttrs)]
	if !ok {
		return Spec{}, ErrUnknownSpec
	}
	return s, nil
}

// LookupByHash finds the catalog entry whose CircuitHashHex matches hash,
// used by the verifier to map a received circuit back to its spec without
// trusting the caller's claimed (system, numAttrs).
func LookupByHash(hash string) (Spec, error) {
	for _, s := range Table {
		if s.CircuitHashHex == hash {
			return s, nil
		}
	}
	return Spec{}, ErrUnknownSpec
}

// CheckRegeneratable enforces spec.md §9's "no regeneration of legacy
// circuits" policy: GenerateCircuit may only be asked to (re)build the
// latest registered version for a given (system, numAttrs); rebuilding an
// older version is refused outright; future unregistered versions are not a
// regeneration and are allowed.
func CheckRegeneratable(system string, numAttrs, version int) error {
	latest, err := Lookup(system, numAttrs)
	if err != nil {
		return err
	}
	if version < latest.Version {
		return ErrStaleCircuitVersion
	}
	return nil
}

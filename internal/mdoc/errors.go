package mdoc

import "fmt"

var (
	// ErrMalformedCBOR is returned when the top-level IssuerSigned structure
	// or any nested CBOR item fails to decode (spec.md §7's "parse failure").
	ErrMalformedCBOR = fmt.Errorf("mdoc: malformed CBOR structure")
	// ErrMissingNameSpace is returned when the requested attribute's
	// namespace is absent from IssuerSigned.nameSpaces.
	ErrMissingNameSpace = fmt.Errorf("mdoc: requested namespace not present in credential")
	// ErrMissingAttribute is returned when the requested element identifier
	// is absent from its namespace.
	ErrMissingAttribute = fmt.Errorf("mdoc: requested attribute not present in namespace")
	// ErrInvalidTimeFormat is returned when a time string is not the fixed
	// 20-byte "YYYY-MM-DDThh:mm:ssZ" form spec.md §6 requires.
	ErrInvalidTimeFormat = fmt.Errorf("mdoc: time is not a fixed-width ISO-8601 UTC string")
	// ErrCredentialExpired is returned when now is lexicographically after
	// validityInfo.validUntil.
	ErrCredentialExpired = fmt.Errorf("mdoc: credential validity window does not cover now")
	// ErrCredentialNotYetValid is returned when now is lexicographically
	// before validityInfo.validFrom.
	ErrCredentialNotYetValid = fmt.Errorf("mdoc: credential is not yet valid at now")
)

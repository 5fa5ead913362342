package mdoc

import "time"

// iso8601Len is the fixed width of "YYYY-MM-DDThh:mm:ssZ" (spec.md §6:
// "now is a 20-byte ASCII ISO-8601 string"), the one format this library
// ever compares dates in.
const iso8601Len = 20

const iso8601Layout = "2006-01-02T15:04:05Z"

// FormatISO8601 renders t in UTC as the fixed-width 20-byte form the
// circuit's lexicographic date comparisons assume.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(iso8601Layout)
}

// ValidateISO8601 checks that s is exactly iso8601Len bytes and round-trips
// through time.Parse with the fixed layout — this is the soundness
// precondition spec.md §6 notes for lexicographic date comparison ("this is
// sound because the format is fixed-width").
func ValidateISO8601(s string) error {
	if len(s) != iso8601Len {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse(iso8601Layout, s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// CheckValidityWindow reports whether now falls within
// [validFrom, validUntil], comparing lexicographically per spec.md §6 (sound
// because every operand is iso8601Len bytes).
func CheckValidityWindow(v ValidityInfo, now string) error {
	for _, s := range []string{v.ValidFrom, v.ValidUntil, now} {
		if err := ValidateISO8601(s); err != nil {
			return err
		}
	}
	if now < v.ValidFrom {
		return ErrCredentialNotYetValid
	}
	if now > v.ValidUntil {
		return ErrCredentialExpired
	}
	return nil
}

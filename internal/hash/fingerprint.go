package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint returns the xxHash64 of data.
//
// Envelope payloads carry it so callers can tell whether a device already has
// the exact configuration before pushing it again.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FingerprintString returns the xxHash64 of s without copying it.
func FingerprintString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Package crypto holds the gate's constant-time credential comparison.
package crypto

import "crypto/subtle"

// SecureCompare reports whether supplied equals configured without leaking,
// through timing, where the two first differ or whether their lengths match.
// Both inputs are padded to the longer length before the byte comparison and
// the length check is folded in as a separate constant-time bit.
func SecureCompare(supplied, configured string) bool {
	size := len(supplied)
	if len(configured) > size {
		size = len(configured)
	}

	a := make([]byte, size)
	b := make([]byte, size)
	copy(a, supplied)
	copy(b, configured)

	sameBytes := subtle.ConstantTimeCompare(a, b)
	sameLen := subtle.ConstantTimeEq(int32(len(supplied)), int32(len(configured)))
	return sameBytes&sameLen == 1
}

// Package farm implements FarmHash's 64-bit Hash64.
//
// The output matches the reference farmhash::Hash64 bit for bit on every
// platform. It is fast and well mixed but not collision resistant against an
// adversary; use it for dictionary keys and fingerprints, not for signatures.
package farm

import (
	"errors"
	"unsafe"
)

// ErrOutOfRange is returned by Hash64At when offset and length do not
// describe a window inside the buffer.
var ErrOutOfRange = errors.New("farm: offset/length out of range")

// Hash64 returns the 64-bit hash of s.
func Hash64(s []byte) uint64 {
	return hash64(s)
}

// Hash64At returns the 64-bit hash of b[offset:offset+length]. Bytes outside
// the window never influence the result.
func Hash64At(b []byte, offset, length int) (uint64, error) {
	if offset < 0 || length < 0 || offset > len(b) || length > len(b)-offset {
		return 0, ErrOutOfRange
	}
	return hash64(b[offset : offset+length : offset+length]), nil
}

// Hash64String returns the 64-bit hash of the bytes of s without copying.
func Hash64String(s string) uint64 {
	if len(s) == 0 {
		return k2
	}
	return hash64(unsafe.Slice(unsafe.StringData(s), len(s)))
}
